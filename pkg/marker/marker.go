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

// Package marker finds delimiter comments in a document.
//
// Matching is purely lexical: any line containing the marker token as a
// substring is an occurrence, including lines where the token sits inside
// a string literal.
package marker

import (
	"iter"
	"strings"

	"github.com/walteh/markpatch/pkg/document"
	"gitlab.com/tozd/go/errors"
)

// ErrNotFound is returned when a required marker has no occurrence
var ErrNotFound = errors.Base("marker not found")

// 📍 Marker is one occurrence of a named delimiter
type Marker struct {
	Name       string // literal token, punctuation included
	Line       int    // 0-based line index
	Offset     int    // byte offset of the line start
	Column     int    // byte index of the token within the line
	Occurrence int    // 0-based count of earlier occurrences of Name
}

// 🔍 Scan lazily yields every occurrence of name in line order. The
// sequence can be ranged over any number of times and restarts each time.
func Scan(doc document.Document, name string) iter.Seq[Marker] {
	return func(yield func(Marker) bool) {
		if name == "" {
			return
		}
		offset, occurrence := 0, 0
		for i := 0; i < doc.Len(); i++ {
			line := doc.Line(i)
			if col := strings.Index(doc.Text(i), name); col >= 0 {
				m := Marker{
					Name:       name,
					Line:       i,
					Offset:     offset,
					Column:     col,
					Occurrence: occurrence,
				}
				if !yield(m) {
					return
				}
				occurrence++
			}
			offset += len(line)
		}
	}
}

// Index is a materialized scan result
type Index struct {
	Name    string
	markers []Marker
}

// 🏭 Build scans doc once and keeps every occurrence of name
func Build(doc document.Document, name string) *Index {
	idx := &Index{Name: name}
	for m := range Scan(doc, name) {
		idx.markers = append(idx.markers, m)
	}
	return idx
}

// Require is Build for callers that need at least one occurrence
func Require(doc document.Document, name string) (*Index, error) {
	idx := Build(doc, name)
	if idx.Len() == 0 {
		return nil, errors.Errorf("%w: %q", ErrNotFound, name)
	}
	return idx, nil
}

// Len returns the number of occurrences
func (idx *Index) Len() int {
	return len(idx.markers)
}

// First returns the first occurrence
func (idx *Index) First() (Marker, bool) {
	return idx.Nth(0)
}

// Nth returns the occurrence with the given 0-based index
func (idx *Index) Nth(n int) (Marker, bool) {
	if n < 0 || n >= len(idx.markers) {
		return Marker{}, false
	}
	return idx.markers[n], true
}

// After returns the first occurrence on a line strictly after line
func (idx *Index) After(line int) (Marker, bool) {
	for _, m := range idx.markers {
		if m.Line > line {
			return m, true
		}
	}
	return Marker{}, false
}

// First returns the first occurrence of name in doc without building an index
func First(doc document.Document, name string) (Marker, bool) {
	for m := range Scan(doc, name) {
		return m, true
	}
	return Marker{}, false
}

// FirstAfter returns the first occurrence of name on a line after line
func FirstAfter(doc document.Document, name string, line int) (Marker, bool) {
	for m := range Scan(doc, name) {
		if m.Line > line {
			return m, true
		}
	}
	return Marker{}, false
}
