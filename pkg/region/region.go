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

package region

import (
	"fmt"

	"github.com/walteh/markpatch/pkg/document"
	"github.com/walteh/markpatch/pkg/marker"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrInvalidRegion is returned when the end boundary is not after the start
	ErrInvalidRegion = errors.Base("invalid region")

	// ErrAmbiguousMode is returned when a mode's required inputs are missing
	ErrAmbiguousMode = errors.Base("ambiguous mode")
)

// 🏷️ Kind names the rule that produced a Region
type Kind int

const (
	KindTail Kind = iota
	KindBounded
	KindStatement
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindTail:
		return "tail"
	case KindBounded:
		return "bounded"
	case KindStatement:
		return "statement"
	default:
		return "unknown"
	}
}

// 📐 Region is a half-open span of lines [Start, End)
type Region struct {
	Kind  Kind
	Start int
	End   int

	// Lines lists the individual lines to delete for KindStatement regions
	Lines []int

	// Anchor is the start marker for tail and bounded regions
	Anchor marker.Marker
}

// Len returns the number of lines the region spans
func (r Region) Len() int {
	return r.End - r.Start
}

// String returns a string representation of the region
func (r Region) String() string {
	return fmt.Sprintf("%s[%d,%d)", r.Kind, r.Start, r.End)
}

// Matcher decides whether a line (without its terminator) belongs to a
// statement-scan region
type Matcher interface {
	Match(text string) bool
}

// 🎯 Tail spans from the line holding the first occurrence of start to the
// end of the document.
func Tail(doc document.Document, start string) (Region, error) {
	if start == "" {
		return Region{}, errors.Errorf("%w: tail mode needs a start marker", ErrAmbiguousMode)
	}
	m, ok := marker.First(doc, start)
	if !ok {
		return Region{}, errors.Errorf("%w: %q", marker.ErrNotFound, start)
	}
	return Region{Kind: KindTail, Start: m.Line, End: doc.Len(), Anchor: m}, nil
}

// 🎯 Bounded spans from the line holding the first occurrence of start up
// to, but excluding, the line holding the first occurrence of end after it.
// start and end may be the same token: the next occurrence closes the region.
func Bounded(doc document.Document, start, end string) (Region, error) {
	if start == "" || end == "" {
		return Region{}, errors.Errorf("%w: bounded mode needs a start and an end marker", ErrAmbiguousMode)
	}

	s, ok := marker.First(doc, start)
	if !ok {
		return Region{}, errors.Errorf("%w: %q", marker.ErrNotFound, start)
	}

	ends, err := marker.Require(doc, end)
	if err != nil {
		return Region{}, err
	}

	e, ok := ends.After(s.Line)
	if !ok {
		first, _ := ends.First()
		return Region{}, errors.Errorf("%w: end marker %q at line %d is not after start marker %q at line %d",
			ErrInvalidRegion, end, first.Line+1, start, s.Line+1)
	}

	return Region{Kind: KindBounded, Start: s.Line, End: e.Line, Anchor: s}, nil
}

// 🎯 Statements collects every line matched by m. It never fails; no match
// yields an empty region.
func Statements(doc document.Document, m Matcher) Region {
	r := Region{Kind: KindStatement}
	if m == nil {
		return r
	}
	for i := 0; i < doc.Len(); i++ {
		if m.Match(doc.Text(i)) {
			r.Lines = append(r.Lines, i)
		}
	}
	if len(r.Lines) > 0 {
		r.Start = r.Lines[0]
		r.End = r.Lines[len(r.Lines)-1] + 1
	}
	return r
}
