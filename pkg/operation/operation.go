// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/markpatch/pkg/config"
	"github.com/walteh/markpatch/pkg/log"
	"github.com/walteh/markpatch/pkg/patch"
	"github.com/walteh/markpatch/pkg/store"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation runs a patch plan
type Operation interface {
	// Execute applies every patch and returns one outcome per file
	Execute(ctx context.Context) ([]Outcome, error)
}

// 🔧 Options contains configuration for the operation
type Options struct {
	// Config is the patch plan
	Config *config.Config
	// Store reads and writes documents
	Store store.DocumentStore
	// Console reports per-file results
	Console *log.Logger
	// DryRun computes patches without writing or backing up anything
	DryRun bool
	// Preview receives a diff of each changed file during a dry run
	Preview io.Writer
	// Workers caps parallel files per patch when the plan is async (0 = no cap)
	Workers int
}

// 📋 Job is one patch applied to one file
type Job struct {
	Patch   string
	Path    string
	Backup  bool
	Request patch.Request
}

// 📦 Outcome is the result of one Job
type Outcome struct {
	Job      Job
	Result   *patch.Result
	Changed  bool
	Written  bool
	BackedUp bool
	Err      error
}

// 🏭 New creates a new operation with the given options
func New(opts Options) (Operation, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Store == nil {
		return nil, errors.Errorf("store is required")
	}
	if opts.Console == nil {
		return nil, errors.Errorf("console logger is required")
	}
	return &applyOperation{opts: opts}, nil
}

type applyOperation struct {
	opts Options
}

// stage is the set of jobs for one named patch
type stage struct {
	patch config.Patch
	jobs  []Job
}

// plan expands every patch into jobs before anything is touched
func (op *applyOperation) plan(ctx context.Context) ([]stage, error) {
	cfg := op.opts.Config
	dir := cfg.Dir()
	suffix := cfg.BackupSuffix
	if suffix == "" {
		suffix = store.DefaultBackupSuffix
	}

	stages := make([]stage, 0, len(cfg.Patches))
	for _, p := range cfg.Patches {
		req, err := p.Request(dir)
		if err != nil {
			return nil, errors.Errorf("patch %q: %w", p.Name, err)
		}
		files, err := p.ExpandFiles(dir, suffix, store.TempSuffix)
		if err != nil {
			return nil, errors.Errorf("patch %q: %w", p.Name, err)
		}

		st := stage{patch: p}
		for _, f := range files {
			st.jobs = append(st.jobs, Job{Patch: p.Name, Path: f, Backup: p.Backup, Request: req})
		}
		zerolog.Ctx(ctx).Debug().Str("patch", p.Name).Int("files", len(files)).Msg("planned patch")
		stages = append(stages, st)
	}
	return stages, nil
}

// 🏃 Execute plans the run, then applies each patch in order
func (op *applyOperation) Execute(ctx context.Context) ([]Outcome, error) {
	stages, err := op.plan(ctx)
	if err != nil {
		return nil, errors.Errorf("planning: %w", err)
	}

	runner := NewRunner(zerolog.Ctx(ctx), op.opts.Config.Async, op.opts.Workers)

	var all []Outcome
	failed := 0
	for _, st := range stages {
		op.opts.Console.StartPatchOperation(ctx, log.PatchOperation{
			Name:  st.patch.Name,
			Mode:  st.patch.Mode,
			Files: len(st.jobs),
		})

		outcomes, err := runner.Run(ctx, st.jobs, op.patchFile)
		for _, o := range outcomes {
			op.opts.Console.LogFileOperation(ctx, op.fileOperation(o))
			if o.Err != nil {
				failed++
			}
		}
		op.opts.Console.EndPatchOperation(ctx)
		all = append(all, outcomes...)

		if err != nil {
			return all, errors.Errorf("running patch %q: %w", st.patch.Name, err)
		}
	}

	if failed > 0 {
		return all, errors.Errorf("%d of %d files failed to patch", failed, len(all))
	}
	return all, nil
}

func (op *applyOperation) fileOperation(o Outcome) log.FileOperation {
	fo := log.FileOperation{
		Path:      op.displayPath(o.Job.Path),
		Mode:      string(o.Job.Request.Mode),
		IsChanged: o.Changed,
		IsDryRun:  op.opts.DryRun,
		Err:       o.Err,
	}
	if o.Result != nil {
		fo.Region = o.Result.Region.String()
		fo.Removed = o.Result.Removed
	}
	switch {
	case o.Err != nil:
		fo.Status = "FAILED"
	case o.Changed && op.opts.DryRun:
		fo.Status = "WOULD PATCH"
	case o.Changed:
		fo.Status = "PATCHED"
	default:
		fo.Status = "no change"
	}
	return fo
}

func (op *applyOperation) displayPath(path string) string {
	if rel, err := filepath.Rel(op.opts.Config.Dir(), path); err == nil {
		return rel
	}
	return path
}

// 📊 Changes classifies outcomes for the end-of-run summary
func Changes(outcomes []Outcome, dryRun bool) []log.Change {
	changes := make([]log.Change, 0, len(outcomes))
	for _, o := range outcomes {
		changes = append(changes, log.ChangeFromOperation(o.Job.Patch, log.FileOperation{
			Path:      o.Job.Path,
			IsChanged: o.Changed,
			IsDryRun:  dryRun,
			Err:       o.Err,
		}))
	}
	return changes
}
