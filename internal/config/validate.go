package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// Err folds the collected errors into one, or returns nil.
func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return fmt.Errorf("config validation failed:\n- %s", strings.Join(v.Errors, "\n- "))
}

// NormalizeAndValidate returns a normalized copy of cfg together with any problems found.
// Rule order is significant and is kept as written.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.Tiers = append([]Tier(nil), cfg.Tiers...)
	out.Batch.Jobs = append([]Job(nil), cfg.Batch.Jobs...)

	trimList := func(xs []string) []string {
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			ys = append(ys, x)
		}
		return ys
	}

	out.Input = strings.TrimSpace(out.Input)
	out.Output = strings.TrimSpace(out.Output)

	// ---- hr name rules ----

	rules := make([]Rule, 0, len(out.HRNames.Rules))
	for i, r := range out.HRNames.Rules {
		r.Label = strings.TrimSpace(r.Label)
		r.Any = trimList(r.Any)
		if r.Label == "" {
			res.addErr("hr_names.rules[%d].label is required", i)
		}
		if len(r.Any) == 0 {
			res.addErr("hr_names.rules[%d].any must have at least 1 term", i)
		}
		rules = append(rules, r)
	}
	out.HRNames.Rules = rules

	out.HRNames.Fallback = strings.TrimSpace(out.HRNames.Fallback)
	if out.HRNames.Fallback == "" {
		res.addErr("hr_names.fallback is required")
	}

	// ---- constant columns ----

	if strings.TrimSpace(out.Defaults.Position) == "" {
		res.addWarn("defaults.position is empty; every row will have a blank position.")
	}
	if strings.TrimSpace(out.Defaults.Location) == "" {
		res.addWarn("defaults.location is empty; every row will have a blank location.")
	}

	// ---- tiers ----

	seen := map[string]bool{}
	for i, t := range out.Tiers {
		t.Heading = strings.TrimSpace(t.Heading)
		t.Label = strings.TrimSpace(t.Label)
		out.Tiers[i] = t
		if t.Heading == "" {
			res.addErr("tiers[%d].heading is required", i)
			continue
		}
		if t.Label == "" {
			res.addErr("tiers[%d].label is required", i)
		}
		key := strings.ToLower(t.Heading)
		if seen[key] {
			res.addWarn("tier heading appears twice: %q", t.Heading)
		}
		seen[key] = true
	}

	// ---- batch ----

	if out.Batch.Concurrency <= 0 {
		res.addErr("batch.concurrency must be > 0")
	} else if out.Batch.Concurrency > 64 {
		res.addWarn("batch.concurrency is very high (%d); jobs are file bound.", out.Batch.Concurrency)
	}
	outputs := map[string]int{}
	for i, j := range out.Batch.Jobs {
		j.Input = strings.TrimSpace(j.Input)
		j.Output = strings.TrimSpace(j.Output)
		out.Batch.Jobs[i] = j
		if j.Input == "" {
			res.addErr("batch.jobs[%d].input is required", i)
		}
		if j.Output == "" {
			res.addErr("batch.jobs[%d].output is required", i)
			continue
		}
		if prev, ok := outputs[j.Output]; ok {
			res.addWarn("batch.jobs[%d] and batch.jobs[%d] write the same file %q; the last to finish wins.", prev, i, j.Output)
		}
		outputs[j.Output] = i
	}

	// ---- store / log ----

	out.Store.Path = strings.TrimSpace(out.Store.Path)
	out.Store.ListName = strings.TrimSpace(out.Store.ListName)
	if out.Store.Path != "" && out.Store.ListName == "" {
		res.addErr("store.list_name is required when store.path is set")
	}

	switch strings.ToLower(strings.TrimSpace(out.Log.Level)) {
	case "debug", "info", "warn", "error":
	default:
		res.addWarn("log.level %q is unknown; using info.", out.Log.Level)
		out.Log.Level = "info"
	}
	switch out.Log.Format {
	case "console", "json":
	default:
		res.addWarn("log.format %q is unknown; using console.", out.Log.Format)
		out.Log.Format = "console"
	}

	return out, res
}
