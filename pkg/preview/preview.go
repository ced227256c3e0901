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

// Package preview renders what a patch would change, for dry runs.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/markpatch/pkg/document"
)

// 🔀 Op is the kind of a diff line
type Op int

const (
	OpEqual Op = iota
	OpInsert
	OpDelete
)

// Line is one line of a line-level diff, terminator stripped
type Line struct {
	Op   Op
	Text string
}

// Lines computes a line-level diff from before to after
func Lines(before, after document.Document) []Line {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before.String(), after.String())
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []Line
	for _, d := range diffs {
		op := OpEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		}
		for _, l := range document.FromString(d.Text).Texts() {
			out = append(out, Line{Op: op, Text: l})
		}
	}
	return out
}

// Stats counts inserted and deleted lines
func Stats(diff []Line) (inserted, deleted int) {
	for _, l := range diff {
		switch l.Op {
		case OpInsert:
			inserted++
		case OpDelete:
			deleted++
		}
	}
	return inserted, deleted
}

// 📝 Write prints the changed lines of a diff with context lines of
// surrounding text around each change
func Write(w io.Writer, name string, diff []Line, context int) error {
	keep := make([]bool, len(diff))
	for i, l := range diff {
		if l.Op == OpEqual {
			continue
		}
		for j := max(0, i-context); j <= min(len(diff)-1, i+context); j++ {
			keep[j] = true
		}
	}

	ins, del := Stats(diff)
	if _, err := fmt.Fprintf(w, "%s %s\n", color.New(color.Bold).Sprint(name),
		color.New(color.Faint).Sprintf("(+%d -%d)", ins, del)); err != nil {
		return err
	}

	gap := false
	for i, l := range diff {
		if !keep[i] {
			gap = true
			continue
		}
		if gap {
			fmt.Fprintln(w, color.New(color.Faint).Sprint("  ..."))
			gap = false
		}
		var line string
		switch l.Op {
		case OpInsert:
			line = color.GreenString("+ %s", l.Text)
		case OpDelete:
			line = color.RedString("- %s", l.Text)
		default:
			line = "  " + l.Text
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
