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
	"github.com/walteh/markpatch/pkg/log"
	"github.com/walteh/markpatch/pkg/store"
	"gitlab.com/tozd/go/errors"
)

// ⏪ Restore puts each file's backup back in place, undoing every patch
// applied since the backup was taken. Files already matching their backup
// are left alone, and backups are never removed.
func Restore(ctx context.Context, st store.DocumentStore, console *log.Logger, paths []string, dryRun bool) ([]Outcome, error) {
	console.StartPatchOperation(ctx, log.PatchOperation{Name: "restore", Mode: "restore", Files: len(paths)})

	outcomes := make([]Outcome, 0, len(paths))
	failed := 0
	for _, path := range paths {
		out := restoreFile(ctx, st, path, dryRun)
		outcomes = append(outcomes, out)

		fo := log.FileOperation{Path: path, Mode: "restore", IsChanged: out.Changed, IsDryRun: dryRun, Err: out.Err}
		switch {
		case out.Err != nil:
			fo.Status = "FAILED"
			failed++
		case out.Changed && dryRun:
			fo.Status = "WOULD RESTORE"
		case out.Changed:
			fo.Status = "RESTORED"
		default:
			fo.Status = "no change"
		}
		console.LogFileOperation(ctx, fo)
	}
	console.EndPatchOperation(ctx)

	if failed > 0 {
		return outcomes, errors.Errorf("%d of %d files failed to restore", failed, len(outcomes))
	}
	return outcomes, nil
}

func restoreFile(ctx context.Context, st store.DocumentStore, path string, dryRun bool) Outcome {
	out := Outcome{Job: Job{Patch: "restore", Path: path}}

	backup, err := st.ReadBackup(ctx, path)
	if err != nil {
		out.Err = errors.Errorf("restore needs a backup: %w", err)
		return out
	}

	live, err := st.Read(ctx, path)
	out.Changed = err != nil || !live.Equal(backup)
	if !out.Changed || dryRun {
		return out
	}

	if err := st.Restore(ctx, path); err != nil {
		out.Err = err
		return out
	}
	out.Written = true
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("restored from backup")
	return out
}
