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

package strip

import (
	"github.com/walteh/markpatch/pkg/document"
	"github.com/walteh/markpatch/pkg/region"
)

// ✂️ Statements returns doc without the lines matched by p, along with the
// number of lines removed. Remaining lines keep their order and bytes.
func Statements(doc document.Document, p Pattern) (document.Document, int) {
	r := region.Statements(doc, p)
	if len(r.Lines) == 0 {
		return doc, 0
	}

	var b document.Builder
	next := 0
	for _, i := range r.Lines {
		b.WriteLines(doc, next, i)
		next = i + 1
	}
	b.WriteLines(doc, next, doc.Len())

	return b.Document(), len(r.Lines)
}

// All applies every pattern in turn and returns the total removed
func All(doc document.Document, patterns ...Pattern) (document.Document, int) {
	total := 0
	for _, p := range patterns {
		var n int
		doc, n = Statements(doc, p)
		total += n
	}
	return doc, total
}
