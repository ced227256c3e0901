package commands

import (
	"context"

	"github.com/walteh/markpatch/cmd/markpatch/opts"
	"github.com/walteh/markpatch/pkg/config"
	"github.com/walteh/markpatch/pkg/log"
	"github.com/walteh/markpatch/pkg/operation"
	"github.com/walteh/markpatch/pkg/store"
	"gitlab.com/tozd/go/errors"
)

// run executes a validated plan and prints the per-file summary
func run(ctx context.Context, o *opts.RootOpts, cfg *config.Config) error {
	op, err := operation.New(operation.Options{
		Config:  cfg,
		Store:   store.New(cfg.Dir(), cfg.BackupSuffix),
		Console: o.Console,
		DryRun:  o.DryRun,
		Preview: o.Preview,
		Workers: o.Workers,
	})
	if err != nil {
		return errors.Errorf("creating operation: %w", err)
	}

	outcomes, runErr := op.Execute(ctx)

	summarize(o, operation.Changes(outcomes, o.DryRun))

	if runErr != nil {
		return errors.Errorf("applying patches: %w", runErr)
	}
	return nil
}

// summarize prints every failed file and the run totals
func summarize(o *opts.RootOpts, changes []log.Change) {
	for _, c := range changes {
		if c.Type == log.Failed {
			o.UserLogger.LogChange(c)
		}
	}
	if len(changes) > 0 {
		o.UserLogger.Summary(changes)
	}
}
