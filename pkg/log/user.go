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

package log

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger prints the end-of-run summary for humans
type UserLogger struct {
	log zerolog.Logger
	out io.Writer
}

// 🎨 ChangeType is the kind of outcome a file had
type ChangeType int

const (
	Patched ChangeType = iota
	Unchanged
	Previewed
	Failed
)

// 🖼️ Change is one file's outcome in the summary
type Change struct {
	Type  ChangeType
	Path  string
	Patch string
	Error error
}

// 🎯 NewUserLogger creates a user logger printing to out
func NewUserLogger(ctx context.Context, out io.Writer) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

// ChangeFromOperation classifies a logged file operation
func ChangeFromOperation(patch string, op FileOperation) Change {
	c := Change{Path: op.Path, Patch: patch, Error: op.Err}
	switch {
	case op.Err != nil:
		c.Type = Failed
	case op.IsChanged && op.IsDryRun:
		c.Type = Previewed
	case op.IsChanged:
		c.Type = Patched
	default:
		c.Type = Unchanged
	}
	return c
}

// 📝 LogChange prints one file outcome with a prefix matching its type
func (u *UserLogger) LogChange(change Change) {
	relPath := filepath.Base(change.Path)

	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case Patched:
		prefix, action = "✨", "Patched"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case Previewed:
		prefix, action = "👀", "Would patch"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	case Unchanged:
		prefix, action = "⏭️", "Unchanged"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	default:
		prefix, action = "❌", "Failed"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: prefix})
	}

	msg := fmt.Sprintf("%s %s (%s)", action, relPath, change.Patch)
	if change.Error != nil {
		msg = fmt.Sprintf("%s: %v", msg, change.Error)
		u.log.Error().Err(change.Error).Str("path", change.Path).Str("patch", change.Patch).Msg("patch failed")
	} else {
		u.log.Debug().Str("path", change.Path).Str("patch", change.Patch).Str("action", action).Msg("file outcome")
	}

	printer.WithWriter(u.out).Println(msg)
}

// 📊 Summary prints totals for a run
func (u *UserLogger) Summary(changes []Change) {
	counts := map[ChangeType]int{}
	for _, c := range changes {
		counts[c.Type]++
	}

	msg := fmt.Sprintf("%d patched, %d unchanged, %d previewed, %d failed",
		counts[Patched], counts[Unchanged], counts[Previewed], counts[Failed])

	printer := pterm.Success
	if counts[Failed] > 0 {
		printer = pterm.Error
	}
	printer.WithWriter(u.out).Println(msg)
}
