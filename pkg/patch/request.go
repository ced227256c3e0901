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

package patch

import (
	"strings"

	"github.com/walteh/markpatch/pkg/document"
	"github.com/walteh/markpatch/pkg/strip"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ Mode selects one of the patch operations
type Mode string

const (
	ModeTail    Mode = "tail"
	ModeBounded Mode = "bounded"
	ModeRebuild Mode = "rebuild"
)

// ParseMode parses a mode name
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeTail, ModeBounded, ModeRebuild:
		return m, nil
	case "":
		return "", errors.Errorf("%w: no mode given", ErrAmbiguousMode)
	default:
		return "", errors.Errorf("%w: unknown mode %q", ErrAmbiguousMode, s)
	}
}

// 📋 Request describes one patch in data form, as read from a plan file
type Request struct {
	Mode        Mode
	Start       string
	End         string
	Replacement string
	Terminator  string
	Anchor      Anchor
	Statements  []strip.Pattern
}

// Validate rejects requests whose inputs do not fit their mode
func (r Request) Validate() error {
	if r.Start == "" {
		return errors.Errorf("%w: %s mode needs a start marker", ErrAmbiguousMode, r.Mode)
	}
	switch r.Mode {
	case ModeTail:
		if r.End != "" {
			return errors.Errorf("%w: tail mode takes no end marker", ErrAmbiguousMode)
		}
		if len(r.Statements) > 0 {
			return errors.Errorf("%w: tail mode takes no statement patterns", ErrAmbiguousMode)
		}
	case ModeBounded, ModeRebuild:
		if r.End == "" {
			return errors.Errorf("%w: %s mode needs an end marker", ErrAmbiguousMode, r.Mode)
		}
		if r.Terminator != "" {
			return errors.Errorf("%w: terminator only applies to tail mode", ErrAmbiguousMode)
		}
		if r.Mode == ModeBounded && len(r.Statements) > 0 {
			return errors.Errorf("%w: statement patterns need rebuild mode", ErrAmbiguousMode)
		}
	default:
		if _, err := ParseMode(string(r.Mode)); err != nil {
			return err
		}
	}
	return nil
}

// 🎯 Apply runs the operation r.Mode names against doc. For ModeRebuild doc
// is the backup snapshot.
func Apply(doc document.Document, r Request) (*Result, error) {
	if err := r.Validate(); err != nil {
		return failed(doc, err)
	}

	opts := []Option{WithAnchor(r.Anchor)}
	switch r.Mode {
	case ModeTail:
		return ReplaceTail(doc, r.Start, r.Replacement, append(opts, WithTerminator(r.Terminator))...)
	case ModeBounded:
		return ReplaceBounded(doc, r.Start, r.End, r.Replacement, opts...)
	default:
		return RebuildFromBackup(doc, r.Statements, r.Start, r.End, r.Replacement, opts...)
	}
}
