// Package contacts turns a document full of HR addresses into contact rows.
package contacts

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"jobhunt-contacts/internal/classify"
	"jobhunt-contacts/internal/config"
	"jobhunt-contacts/internal/csvout"
	"jobhunt-contacts/internal/domain"
	"jobhunt-contacts/internal/markdown"
	"jobhunt-contacts/internal/source"
)

type Result struct {
	Input   string
	Output  string
	Records []domain.ContactRecord
	Tiers   []markdown.TierCount
}

// Unique is the number of rows written.
func (r Result) Unique() int { return len(r.Records) }

// Converter runs read -> extract -> dedupe -> derive -> write for one file at a time.
// It holds no per-run state, so one value can serve several goroutines.
type Converter struct {
	Defaults   domain.Defaults
	Classifier classify.Classifier
	Tiers      []config.Tier

	Log *zap.Logger

	mu     sync.Mutex
	report io.Writer
}

// New builds a Converter from cfg. The two summary lines of every run go to report;
// pass io.Discard to silence them.
func New(cfg config.Config, log *zap.Logger, report io.Writer) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	if report == nil {
		report = io.Discard
	}
	return &Converter{
		Defaults:   cfg.Defaults,
		Classifier: classify.FromConfig(cfg),
		Tiers:      cfg.Tiers,
		Log:        log.Named("convert"),
		report:     report,
	}
}

// ConvertText is the pure part of the pipeline.
func (c *Converter) ConvertText(text string) []domain.ContactRecord {
	return c.records(UniqueMatches(ExtractMatches(text)))
}

func (c *Converter) records(matches []Match) []domain.ContactRecord {
	out := make([]domain.ContactRecord, 0, len(matches))
	for _, m := range matches {
		out = append(out, BuildRecord(m.Email, c.Defaults, c.Classifier))
	}
	return out
}

// Convert reads inPath and replaces outPath with one CSV row per unique address.
// Read failures come back as *InputError, write failures as *OutputError.
// No addresses is not an error: the file then holds only the header.
func (c *Converter) Convert(ctx context.Context, inPath, outPath string) (Result, error) {
	res := Result{Input: inPath, Output: outPath}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	doc, err := source.Read(inPath)
	if err != nil {
		return res, &InputError{Path: inPath, Err: err}
	}

	all := ExtractMatches(doc.Text)
	uniq := UniqueMatches(all)
	c.Log.Debug("extracted",
		zap.String("input", inPath),
		zap.String("format", doc.Format),
		zap.Int("matches", len(all)),
		zap.Int("unique", len(uniq)))

	res.Records = c.records(uniq)

	if err := csvout.WriteFile(outPath, res.Records); err != nil {
		return res, &OutputError{Path: outPath, Err: err}
	}

	if doc.Format == source.FormatMarkdown && len(c.Tiers) > 0 {
		offsets := make([]int, len(uniq))
		for i, m := range uniq {
			offsets[i] = m.Offset
		}
		res.Tiers = markdown.TierCounts(doc.Raw, c.Tiers, offsets)
		for _, tc := range res.Tiers {
			c.Log.Info("tier", zap.String("input", inPath), zap.String("label", tc.Label), zap.Int("emails", tc.Count))
		}
	}

	c.Log.Info("converted", zap.String("input", inPath), zap.String("output", outPath), zap.Int("unique", res.Unique()))
	c.printReport(res)
	return res, nil
}

func (c *Converter) printReport(res Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.report, "✓ Converted %d unique emails to CSV\n", res.Unique())
	fmt.Fprintf(c.report, "✓ Output file: %s\n", res.Output)
}
