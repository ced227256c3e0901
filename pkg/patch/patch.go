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
	"github.com/walteh/markpatch/pkg/region"
	"github.com/walteh/markpatch/pkg/strip"
	"gitlab.com/tozd/go/errors"
)

// ⚓ Anchor decides what happens to the start marker line
type Anchor int

const (
	// AnchorDefault keeps the marker line in bounded mode and replaces it in tail mode
	AnchorDefault Anchor = iota
	// AnchorKeep re-emits the start marker line ahead of the replacement
	AnchorKeep
	// AnchorReplace drops the start marker line; the replacement supplies it
	AnchorReplace
)

// String returns a string representation of Anchor
func (a Anchor) String() string {
	switch a {
	case AnchorKeep:
		return "keep"
	case AnchorReplace:
		return "replace"
	default:
		return "default"
	}
}

// ParseAnchor parses "keep", "replace" or "" (default)
func ParseAnchor(s string) (Anchor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return AnchorDefault, nil
	case "keep":
		return AnchorKeep, nil
	case "replace":
		return AnchorReplace, nil
	default:
		return AnchorDefault, errors.Errorf("unknown anchor %q", s)
	}
}

func (a Anchor) resolve(fallback Anchor) Anchor {
	if a == AnchorDefault {
		return fallback
	}
	return a
}

// 🔧 Options tune how a replacement is spliced in
type Options struct {
	Anchor Anchor

	// Terminator is appended after the replacement in tail mode, to restore
	// closing syntax the tail region removed
	Terminator string
}

// Option configures Options
type Option func(*Options)

// WithAnchor sets the start marker policy
func WithAnchor(a Anchor) Option {
	return func(o *Options) { o.Anchor = a }
}

// WithTerminator sets the closing text appended in tail mode
func WithTerminator(s string) Option {
	return func(o *Options) { o.Terminator = s }
}

func buildOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// 📦 Result is the outcome of a patch operation
type Result struct {
	// Document is the patched document, or Original when the patch failed
	Document document.Document
	// Original is the input document
	Original document.Document
	// Region is the span that was replaced
	Region region.Region
	// Regions counts replaced regions (0 or 1)
	Regions int
	// Removed counts statement lines stripped before splicing
	Removed int
}

// Changed reports whether the patched bytes differ from the input
func (r *Result) Changed() bool {
	return !r.Document.Equal(r.Original)
}

func failed(doc document.Document, err error) (*Result, error) {
	return &Result{Document: doc, Original: doc}, err
}

// ✂️ ReplaceTail replaces everything from the line holding the first start
// marker to the end of doc with text, followed by the optional terminator.
func ReplaceTail(doc document.Document, start, text string, opts ...Option) (*Result, error) {
	o := buildOptions(opts)

	r, err := region.Tail(doc, start)
	if err != nil {
		return failed(doc, errors.Errorf("locating tail region: %w", err))
	}

	var b document.Builder
	b.WriteLines(doc, 0, r.Start)
	if o.Anchor.resolve(AnchorReplace) == AnchorKeep {
		writeAnchor(&b, doc, r.Start, text+o.Terminator)
	}
	b.WriteString(text)
	b.WriteString(o.Terminator)

	return &Result{Document: b.Document(), Original: doc, Region: r, Regions: 1}, nil
}

// ✂️ ReplaceBounded replaces the lines between the first start marker and
// the first end marker after it. The end marker line and everything after
// it stay as they are.
func ReplaceBounded(doc document.Document, start, end, text string, opts ...Option) (*Result, error) {
	o := buildOptions(opts)
	if o.Terminator != "" {
		return failed(doc, errors.Errorf("%w: terminator only applies to tail mode", ErrAmbiguousMode))
	}

	r, err := region.Bounded(doc, start, end)
	if err != nil {
		return failed(doc, errors.Errorf("locating bounded region: %w", err))
	}

	var b document.Builder
	b.WriteLines(doc, 0, r.Start)
	if o.Anchor.resolve(AnchorKeep) == AnchorKeep {
		b.WriteLines(doc, r.Start, r.Start+1)
	}
	b.WriteString(text)
	if text != "" && !strings.HasSuffix(text, "\n") {
		b.WriteString(doc.Terminator(r.Start))
	}
	b.WriteLines(doc, r.End, doc.Len())

	return &Result{Document: b.Document(), Original: doc, Region: r, Regions: 1}, nil
}

// 🔄 RebuildFromBackup strips every line matching patterns from a known-good
// backup and then replaces the bounded region between start and end.
func RebuildFromBackup(backup document.Document, patterns []strip.Pattern, start, end, text string, opts ...Option) (*Result, error) {
	stripped, removed := strip.All(backup, patterns...)

	res, err := ReplaceBounded(stripped, start, end, text, opts...)
	if err != nil {
		return failed(backup, err)
	}

	res.Original = backup
	res.Removed = removed
	return res, nil
}

// writeAnchor re-emits the marker line, giving it a line break when it was
// the unterminated last line and more text follows
func writeAnchor(b *document.Builder, doc document.Document, line int, following string) {
	b.WriteLines(doc, line, line+1)
	if doc.Terminator(line) == "" && following != "" {
		b.WriteString("\n")
	}
}
