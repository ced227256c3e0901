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
	"github.com/walteh/markpatch/pkg/patch"
	"github.com/walteh/markpatch/pkg/preview"
	"gitlab.com/tozd/go/errors"
)

// 📄 patchFile reads, patches and writes a single file. It never returns a
// half-written file: the write happens only after the patch succeeded.
func (op *applyOperation) patchFile(ctx context.Context, job Job) Outcome {
	out := Outcome{Job: job}
	logger := zerolog.Ctx(ctx).With().Str("patch", job.Patch).Str("path", job.Path).Logger()
	st := op.opts.Store

	if job.Backup && !op.opts.DryRun {
		created, err := st.Backup(ctx, job.Path)
		if err != nil {
			out.Err = errors.Errorf("backing up: %w", err)
			return out
		}
		out.BackedUp = created
	}

	live, err := st.Read(ctx, job.Path)
	if err != nil {
		out.Err = err
		return out
	}

	source := live
	if job.Request.Mode == patch.ModeRebuild {
		source, err = st.ReadBackup(ctx, job.Path)
		if err != nil {
			out.Err = errors.Errorf("rebuild needs a backup: %w", err)
			return out
		}
	}

	res, err := patch.Apply(source, job.Request)
	out.Result = res
	if err != nil {
		out.Err = err
		logger.Debug().Err(err).Msg("patch failed, file left untouched")
		return out
	}

	out.Changed = !res.Document.Equal(live)
	logger.Debug().
		Str("region", res.Region.String()).
		Int("removed", res.Removed).
		Bool("changed", out.Changed).
		Msg("patched document")

	if !out.Changed {
		return out
	}

	if op.opts.DryRun {
		if op.opts.Preview != nil {
			if err := preview.Write(op.opts.Preview, op.displayPath(job.Path), preview.Lines(live, res.Document), 2); err != nil {
				out.Err = errors.Errorf("writing preview: %w", err)
			}
		}
		return out
	}

	if err := st.Write(ctx, job.Path, res.Document); err != nil {
		out.Err = errors.Errorf("writing patched document: %w", err)
		return out
	}
	out.Written = true
	return out
}
