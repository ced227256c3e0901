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

package preview

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/markpatch/pkg/document"
)

func TestLines(t *testing.T) {
	before := document.FromString("a\n/* S */\nold\n/* E */\nz\n")
	after := document.FromString("a\n/* S */\nnew\n/* E */\nz\n")

	diff := Lines(before, after)

	assert.Equal(t, []Line{
		{OpEqual, "a"},
		{OpEqual, "/* S */"},
		{OpDelete, "old"},
		{OpInsert, "new"},
		{OpEqual, "/* E */"},
		{OpEqual, "z"},
	}, diff)

	ins, del := Stats(diff)
	assert.Equal(t, 1, ins)
	assert.Equal(t, 1, del)
}

func TestLinesIdentical(t *testing.T) {
	doc := document.FromString("a\nb\n")
	ins, del := Stats(Lines(doc, doc))
	assert.Zero(t, ins)
	assert.Zero(t, del)
}

func TestWrite(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	before := document.FromString("1\n2\n3\n4\n5\n6\n7")
	after := document.FromString("1\n2\n3\nfour\n5\n6\n7")

	buf := &bytes.Buffer{}
	require.NoError(t, Write(buf, "x.sol", Lines(before, after), 1))

	assert.Equal(t, "x.sol (+1 -1)\n  ...\n  3\n- 4\n+ four\n  5\n", buf.String())
}
