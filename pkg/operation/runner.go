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

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner executes the jobs of one patch
type Runner struct {
	logger  *zerolog.Logger
	async   bool
	workers int
}

// 🏗️ NewRunner creates a new runner; workers caps parallelism when async
// (0 means no cap)
func NewRunner(logger *zerolog.Logger, async bool, workers int) *Runner {
	return &Runner{
		logger:  logger,
		async:   async,
		workers: workers,
	}
}

// 🏃 Run applies fn to every job and returns outcomes in job order. Jobs
// share nothing, so a failing job does not stop the others; the returned
// error is only set when ctx ends the run early.
func (r *Runner) Run(ctx context.Context, jobs []Job, fn func(context.Context, Job) Outcome) ([]Outcome, error) {
	if r.async {
		return r.runAsync(ctx, jobs, fn)
	}
	return r.runSync(ctx, jobs, fn)
}

// 🔄 runSync runs jobs one after another
func (r *Runner) runSync(ctx context.Context, jobs []Job, fn func(context.Context, Job) Outcome) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(jobs))
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, fn(ctx, job))
	}
	return outcomes, nil
}

// ⚡ runAsync runs each job in its own goroutine
func (r *Runner) runAsync(ctx context.Context, jobs []Job, fn func(context.Context, Job) Outcome) ([]Outcome, error) {
	outcomes := make([]Outcome, len(jobs))
	done := make([]bool, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	if r.workers > 0 {
		g.SetLimit(r.workers)
	}

	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = fn(gctx, job)
			done[i] = true
			return nil
		})
	}

	err := g.Wait()
	r.logger.Debug().Int("jobs", len(jobs)).Bool("async", true).Msg("jobs finished")
	if err != nil {
		finished := make([]Outcome, 0, len(jobs))
		for i, ok := range done {
			if ok {
				finished = append(finished, outcomes[i])
			}
		}
		return finished, err
	}
	return outcomes, nil
}
