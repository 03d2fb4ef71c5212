// internal/classify/yaml_classifier.go
package classify

import (
	"strings"

	"jobhunt-contacts/internal/config"
)

// YAMLClassifier labels the local part of an address with the first rule
// that has a term contained in it. Matching is plain substring containment,
// so "chr1s" hits the "hr" rule.
type YAMLClassifier struct {
	Rules    []config.Rule
	Fallback string
}

func FromConfig(cfg config.Config) YAMLClassifier {
	return YAMLClassifier{Rules: cfg.HRNames.Rules, Fallback: cfg.HRNames.Fallback}
}

func (c YAMLClassifier) Classify(localPart string) string {
	text := strings.ToLower(localPart)

	for _, r := range c.Rules {
		for _, needle := range r.Any {
			n := strings.ToLower(needle)
			if n == "" {
				continue
			}
			if strings.Contains(text, n) {
				return r.Label
			}
		}
	}
	return c.Fallback
}
