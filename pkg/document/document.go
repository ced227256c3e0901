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

// Package document holds the immutable line buffer every patch operates on.
//
// A Document is split after each '\n' and every line keeps its own
// terminator, so joining the lines back reproduces the input byte for byte.
package document

import (
	"strings"
)

// 📄 Document is an ordered, immutable sequence of lines
type Document struct {
	lines []string
}

// 🏭 Parse splits content into a Document without losing any bytes
func Parse(content []byte) Document {
	return FromString(string(content))
}

// FromString is Parse for string content
func FromString(content string) Document {
	if content == "" {
		return Document{}
	}
	lines := make([]string, 0, strings.Count(content, "\n")+1)
	for len(content) > 0 {
		i := strings.IndexByte(content, '\n')
		if i < 0 {
			lines = append(lines, content)
			break
		}
		lines = append(lines, content[:i+1])
		content = content[i+1:]
	}
	return Document{lines: lines}
}

// Len returns the number of lines
func (d Document) Len() int {
	return len(d.lines)
}

// Line returns line i including its terminator
func (d Document) Line(i int) string {
	return d.lines[i]
}

// Text returns line i without its terminator
func (d Document) Text(i int) string {
	return strings.TrimSuffix(strings.TrimSuffix(d.lines[i], "\n"), "\r")
}

// Terminator returns the line ending of line i ("\n", "\r\n" or "")
func (d Document) Terminator(i int) string {
	return d.lines[i][len(d.Text(i)):]
}

// Lines returns a copy of the lines, terminators included
func (d Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// Texts returns a copy of the lines without terminators
func (d Document) Texts() []string {
	out := make([]string, len(d.lines))
	for i := range d.lines {
		out[i] = d.Text(i)
	}
	return out
}

// Slice returns the text of lines [start, end)
func (d Document) Slice(start, end int) string {
	return strings.Join(d.lines[start:end], "")
}

// String joins the lines back into the original text
func (d Document) String() string {
	return strings.Join(d.lines, "")
}

// Bytes is String as a byte slice
func (d Document) Bytes() []byte {
	return []byte(d.String())
}

// Equal reports whether both documents hold the same bytes
func (d Document) Equal(o Document) bool {
	if len(d.lines) != len(o.lines) {
		return false
	}
	for i := range d.lines {
		if d.lines[i] != o.lines[i] {
			return false
		}
	}
	return true
}

// 🔧 Builder assembles a new Document from pieces of existing ones
type Builder struct {
	sb strings.Builder
}

// WriteLines appends lines [start, end) of d
func (b *Builder) WriteLines(d Document, start, end int) {
	for _, l := range d.lines[start:end] {
		b.sb.WriteString(l)
	}
}

// WriteString appends raw text
func (b *Builder) WriteString(s string) {
	b.sb.WriteString(s)
}

// Document returns the assembled Document
func (b *Builder) Document() Document {
	return FromString(b.sb.String())
}
