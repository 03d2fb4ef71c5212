// Package batch runs several independent conversions with bounded concurrency.
package batch

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jobhunt-contacts/internal/config"
	"jobhunt-contacts/internal/contacts"
)

type Outcome struct {
	Job    config.Job
	Result contacts.Result
	Err    error
}

// Run converts every job, at most concurrency at a time. Every job runs even if an
// earlier one fails; outcomes come back in job order and the first error (in
// completion order) is returned alongside them.
func Run(ctx context.Context, conv *contacts.Converter, jobs []config.Job, concurrency int, log *zap.Logger) ([]Outcome, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("batch")
	if concurrency <= 0 {
		concurrency = 1
	}

	outcomes := make([]Outcome, len(jobs))

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			log.Debug("running", zap.Int("job", i), zap.String("input", j.Input))
			res, err := conv.Convert(ctx, j.Input, j.Output)
			outcomes[i] = Outcome{Job: j, Result: res, Err: err}
			if err != nil {
				log.Error("job failed", zap.Int("job", i), zap.String("input", j.Input), zap.Error(err))
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	log.Info("done", zap.Int("jobs", len(jobs)), zap.Int("failed", failed(outcomes)))
	return outcomes, err
}

func failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
