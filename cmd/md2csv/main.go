package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"jobhunt-contacts/internal/batch"
	"jobhunt-contacts/internal/config"
	"jobhunt-contacts/internal/contacts"
	"jobhunt-contacts/internal/domain"
	"jobhunt-contacts/internal/logging"
	"jobhunt-contacts/internal/store"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run converts <input> <output>. With no arguments it falls back to the config file's
// batch jobs, then to its input/output pair, then to the built-in docs/ paths.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("md2csv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: md2csv [flags] [<input> <output>]\n\nflags:\n")
		fs.PrintDefaults()
	}

	var (
		flagConfig  string
		flagDB      string
		flagList    string
		flagInitDir string
	)
	fs.StringVar(&flagConfig, "config", "", "YAML config file (optional)")
	fs.StringVar(&flagDB, "db", "", "also import the contacts into this SQLite database")
	fs.StringVar(&flagList, "list", "", "contact list name used with -db")
	fs.StringVar(&flagInitDir, "init-config", "", "write a default "+config.FileName+" into this directory and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if dir := strings.TrimSpace(flagInitDir); dir != "" {
		path, created, err := config.EnsureUserConfig(dir)
		if err != nil {
			fmt.Fprintf(stderr, "init config failed: %v\n", err)
			return exitFail
		}
		if created {
			fmt.Fprintf(stdout, "wrote %s\n", path)
		} else {
			fmt.Fprintf(stdout, "%s already exists, left unchanged\n", path)
		}
		return exitOK
	}

	cfg := config.Defaults()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			fmt.Fprintf(stderr, "config load failed (%s): %v\n", flagConfig, err)
			return exitFail
		}
		cfg = loaded
	}
	if flagDB != "" {
		cfg.Store.Path = flagDB
	}
	if flagList != "" {
		cfg.Store.ListName = flagList
	}

	cfg, res := config.NormalizeAndValidate(cfg)
	log := logging.New(cfg.Log.Level, cfg.Log.Format, stderr)
	defer func() { _ = log.Sync() }()

	for _, w := range res.Warnings {
		log.Warn("config", zap.String("warning", w))
	}
	if err := res.Err(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitFail
	}

	var jobs []config.Job
	switch pos := fs.Args(); {
	case len(pos) == 2:
		jobs = []config.Job{{Input: pos[0], Output: pos[1]}}
	case len(pos) == 0 && len(cfg.Batch.Jobs) > 0:
		jobs = cfg.Batch.Jobs
	case len(pos) == 0:
		jobs = []config.Job{{Input: cfg.Input, Output: cfg.Output}}
	default:
		fmt.Fprintf(stderr, "expected <input> <output>, got %d argument(s)\n", len(pos))
		fs.Usage()
		return exitUsage
	}

	conv := contacts.New(cfg, log, stdout)

	var records []domain.ContactRecord
	if len(jobs) == 1 {
		result, err := conv.Convert(ctx, jobs[0].Input, jobs[0].Output)
		if err != nil {
			reportError(stderr, err)
			return exitFail
		}
		records = result.Records
	} else {
		outcomes, err := batch.Run(ctx, conv, jobs, cfg.Batch.Concurrency, log)
		for _, o := range outcomes {
			if o.Err != nil {
				reportError(stderr, o.Err)
				continue
			}
			records = append(records, o.Result.Records...)
		}
		if err != nil {
			return exitFail
		}
	}

	if cfg.Store.Path != "" {
		if err := importContacts(ctx, cfg, records, log); err != nil {
			fmt.Fprintf(stderr, "import into %s failed: %v\n", cfg.Store.Path, err)
			return exitFail
		}
	}

	return exitOK
}

func reportError(w io.Writer, err error) {
	var inErr *contacts.InputError
	var outErr *contacts.OutputError
	switch {
	case errors.As(err, &inErr):
		fmt.Fprintf(w, "cannot read input: %v\n", err)
	case errors.As(err, &outErr):
		fmt.Fprintf(w, "cannot write output: %v\n", err)
	default:
		fmt.Fprintf(w, "conversion failed: %v\n", err)
	}
}

func importContacts(ctx context.Context, cfg config.Config, records []domain.ContactRecord, log *zap.Logger) error {
	log = log.Named("store")

	db, err := store.Open(ctx, cfg.Store.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	listID, err := store.EnsureList(ctx, db.Pool, cfg.Store.ListName)
	if err != nil {
		return err
	}

	added, err := store.ImportContacts(ctx, db.Pool, listID, records)
	if err != nil {
		return err
	}
	log.Info("imported",
		zap.String("db", cfg.Store.Path),
		zap.String("list", cfg.Store.ListName),
		zap.Int("added", added),
		zap.Int("skipped", len(records)-added))
	return nil
}
