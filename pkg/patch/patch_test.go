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
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/markpatch/pkg/document"
	"github.com/walteh/markpatch/pkg/strip"
	"gitlab.com/tozd/go/errors"
)

const contract = `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.19;

import {LiquidationTierLib} from "./libraries/LiquidationTierLib.sol";
import {HealthFactorLib} from "./libraries/HealthFactorLib.sol";

contract TieredLiquidationMorpho {
    using LiquidationTierLib for uint256;

    /* LIQUIDATION FUNCTIONS */

    function liquidate() external {
        old();
    }

    /* VIEW FUNCTIONS */

    function getHealthFactor() external view returns (uint256) {
        return 0;
    }

    /* INTERNAL FUNCTIONS */

    function _old() internal {}
}
`

func TestReplaceBoundedScenario(t *testing.T) {
	doc := fromLines("A", "/* START */", "old", "/* END */", "Z")

	res, err := ReplaceBounded(doc, "/* START */", "/* END */", "new")
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "/* START */", "new", "/* END */", "Z"}, res.Document.Texts())
	assert.Equal(t, 1, res.Regions)
	assert.True(t, res.Changed())
	assert.Equal(t, "A\n/* START */\nold\n/* END */\nZ", doc.String(), "input must not change")
}

func TestReplaceBounded(t *testing.T) {
	tests := []struct {
		name    string
		content string
		start   string
		end     string
		text    string
		opts    []Option
		want    string
		wantErr error
	}{
		{
			name:    "keeps_marker_line_by_default",
			content: "a\n// S\nx\ny\n// E\nz\n",
			start:   "// S",
			end:     "// E",
			text:    "new\n",
			want:    "a\n// S\nnew\n// E\nz\n",
		},
		{
			name:    "replace_anchor",
			content: "a\n// S\nx\n// E\nz\n",
			start:   "// S",
			end:     "// E",
			text:    "// S v2\nnew\n",
			opts:    []Option{WithAnchor(AnchorReplace)},
			want:    "a\n// S v2\nnew\n// E\nz\n",
		},
		{
			name:    "empty_replacement_clears_region",
			content: "// S\nx\n// E\n",
			start:   "// S",
			end:     "// E",
			text:    "",
			want:    "// S\n// E\n",
		},
		{
			name:    "crlf_terminator_reused",
			content: "// S\r\nx\r\n// E\r\n",
			start:   "// S",
			end:     "// E",
			text:    "y",
			want:    "// S\r\ny\r\n// E\r\n",
		},
		{
			name:    "adjacent_markers_insert",
			content: "// S\n// E\n",
			start:   "// S",
			end:     "// E",
			text:    "mid\n",
			want:    "// S\nmid\n// E\n",
		},
		{
			name:    "same_start_and_end_marker",
			content: "a\n// ---\nold\n// ---\nz\n",
			start:   "// ---",
			end:     "// ---",
			text:    "new",
			want:    "a\n// ---\nnew\n// ---\nz\n",
		},
		{
			name:    "end_before_start",
			content: "// E\n// S\nx\n",
			start:   "// S",
			end:     "// E",
			text:    "new",
			wantErr: ErrInvalidRegion,
		},
		{
			name:    "missing_start",
			content: "x\n// E\n",
			start:   "// S",
			end:     "// E",
			text:    "new",
			wantErr: ErrMarkerNotFound,
		},
		{
			name:    "missing_end",
			content: "// S\nx\n",
			start:   "// S",
			end:     "// E",
			text:    "new",
			wantErr: ErrMarkerNotFound,
		},
		{
			name:    "no_end_marker",
			content: "// S\nx\n",
			start:   "// S",
			text:    "new",
			wantErr: ErrAmbiguousMode,
		},
		{
			name:    "terminator_not_allowed",
			content: "// S\n// E\n",
			start:   "// S",
			end:     "// E",
			text:    "new",
			opts:    []Option{WithTerminator("}\n")},
			wantErr: ErrAmbiguousMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := document.FromString(tt.content)
			res, err := ReplaceBounded(doc, tt.start, tt.end, tt.text, tt.opts...)
			require.NotNil(t, res, "result is returned even on failure")

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Equal(t, tt.content, res.Document.String(), "failed patch must return input unchanged")
				assert.Equal(t, 0, res.Regions)
				assert.False(t, res.Changed())
				return
			}

			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, res.Document.String()); diff != "" {
				t.Errorf("patched document mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReplaceTail(t *testing.T) {
	tests := []struct {
		name    string
		content string
		start   string
		text    string
		opts    []Option
		want    string
		wantErr error
	}{
		{
			name:    "drops_closing_brace",
			content: "contract C {\n    /* INTERNAL */\n    function f() {}\n}\n",
			start:   "/* INTERNAL */",
			text:    "    /* INTERNAL */\n    function g() {}\n",
			want:    "contract C {\n    /* INTERNAL */\n    function g() {}\n",
		},
		{
			name:    "terminator_restores_closing_brace",
			content: "contract C {\n    /* INTERNAL */\n    function f() {}\n}\n",
			start:   "/* INTERNAL */",
			text:    "    /* INTERNAL */\n    function g() {}\n",
			opts:    []Option{WithTerminator("}\n")},
			want:    "contract C {\n    /* INTERNAL */\n    function g() {}\n}\n",
		},
		{
			name:    "keep_anchor",
			content: "a\n// T\nb\n",
			start:   "// T",
			text:    "c\n",
			opts:    []Option{WithAnchor(AnchorKeep)},
			want:    "a\n// T\nc\n",
		},
		{
			name:    "keep_anchor_on_unterminated_last_line",
			content: "a\n// T",
			start:   "// T",
			text:    "c",
			opts:    []Option{WithAnchor(AnchorKeep)},
			want:    "a\n// T\nc",
		},
		{
			name:    "first_occurrence_wins",
			content: "// T\nx\n// T\ny\n",
			start:   "// T",
			text:    "z",
			want:    "z",
		},
		{
			name:    "missing_marker",
			content: "a\nb\n",
			start:   "// T",
			text:    "z",
			wantErr: ErrMarkerNotFound,
		},
		{
			name:    "empty_marker",
			content: "a\n",
			start:   "",
			text:    "z",
			wantErr: ErrAmbiguousMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := document.FromString(tt.content)
			res, err := ReplaceTail(doc, tt.start, tt.text, tt.opts...)
			require.NotNil(t, res)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Equal(t, tt.content, res.Document.String())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Document.String())
			assert.Equal(t, 1, res.Regions)
		})
	}
}

func TestRebuildFromBackup(t *testing.T) {
	backup := document.FromString(contract)
	patterns := []strip.Pattern{strip.Import("LiquidationTierLib"), strip.Using("LiquidationTierLib")}
	body := "    function liquidate() external {\n        fresh();\n    }\n\n"

	res, err := RebuildFromBackup(backup, patterns, "/* LIQUIDATION FUNCTIONS */", "/* VIEW FUNCTIONS */", body)
	require.NoError(t, err)

	got := res.Document.String()
	assert.NotContains(t, got, "LiquidationTierLib")
	assert.Contains(t, got, "import {HealthFactorLib}")
	assert.Contains(t, got, "    /* LIQUIDATION FUNCTIONS */\n    function liquidate() external {\n        fresh();\n    }\n\n    /* VIEW FUNCTIONS */\n")
	assert.NotContains(t, got, "old();")
	assert.True(t, strings.HasSuffix(got, "    function _old() internal {}\n}\n"))
	assert.Equal(t, 2, res.Removed)
	assert.Equal(t, 1, res.Regions)
	assert.True(t, res.Original.Equal(backup))
}

func TestRebuildFromBackupFailureReturnsBackup(t *testing.T) {
	backup := document.FromString(contract)
	patterns := []strip.Pattern{strip.Import("LiquidationTierLib")}

	res, err := RebuildFromBackup(backup, patterns, "/* LIQUIDATION FUNCTIONS */", "/* MISSING */", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMarkerNotFound))
	assert.True(t, res.Document.Equal(backup), "nothing stripped when the splice fails")
	assert.Equal(t, 0, res.Removed)
}

func TestApply(t *testing.T) {
	doc := document.FromString(contract)

	tests := []struct {
		name    string
		req     Request
		check   func(t *testing.T, res *Result)
		wantErr error
	}{
		{
			name: "tail",
			req: Request{
				Mode:        ModeTail,
				Start:       "/* INTERNAL FUNCTIONS */",
				Replacement: "    /* INTERNAL FUNCTIONS */\n",
				Terminator:  "}\n",
			},
			check: func(t *testing.T, res *Result) {
				assert.True(t, strings.HasSuffix(res.Document.String(), "        return 0;\n    }\n\n    /* INTERNAL FUNCTIONS */\n}\n"))
			},
		},
		{
			name: "bounded",
			req: Request{
				Mode:        ModeBounded,
				Start:       "/* VIEW FUNCTIONS */",
				End:         "/* INTERNAL FUNCTIONS */",
				Replacement: "\n",
			},
			check: func(t *testing.T, res *Result) {
				assert.Contains(t, res.Document.String(), "    /* VIEW FUNCTIONS */\n\n    /* INTERNAL FUNCTIONS */\n")
			},
		},
		{
			name: "rebuild",
			req: Request{
				Mode:       ModeRebuild,
				Start:      "/* LIQUIDATION FUNCTIONS */",
				End:        "/* VIEW FUNCTIONS */",
				Statements: []strip.Pattern{strip.Using("LiquidationTierLib")},
			},
			check: func(t *testing.T, res *Result) {
				assert.Equal(t, 1, res.Removed)
			},
		},
		{
			name:    "tail_with_end_marker",
			req:     Request{Mode: ModeTail, Start: "/* VIEW FUNCTIONS */", End: "/* INTERNAL FUNCTIONS */"},
			wantErr: ErrAmbiguousMode,
		},
		{
			name:    "bounded_without_end",
			req:     Request{Mode: ModeBounded, Start: "/* VIEW FUNCTIONS */"},
			wantErr: ErrAmbiguousMode,
		},
		{
			name:    "bounded_with_statements",
			req:     Request{Mode: ModeBounded, Start: "a", End: "b", Statements: []strip.Pattern{strip.Import("X")}},
			wantErr: ErrAmbiguousMode,
		},
		{
			name:    "rebuild_with_terminator",
			req:     Request{Mode: ModeRebuild, Start: "a", End: "b", Terminator: "}"},
			wantErr: ErrAmbiguousMode,
		},
		{
			name:    "unknown_mode",
			req:     Request{Mode: "splice", Start: "a"},
			wantErr: ErrAmbiguousMode,
		},
		{
			name:    "no_start",
			req:     Request{Mode: ModeTail},
			wantErr: ErrAmbiguousMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Apply(doc, tt.req)
			require.NotNil(t, res)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.True(t, res.Document.Equal(doc))
				return
			}
			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestParseModeAndAnchor(t *testing.T) {
	m, err := ParseMode(" Bounded ")
	require.NoError(t, err)
	assert.Equal(t, ModeBounded, m)

	_, err = ParseMode("")
	assert.True(t, errors.Is(err, ErrAmbiguousMode))

	a, err := ParseAnchor("replace")
	require.NoError(t, err)
	assert.Equal(t, AnchorReplace, a)
	assert.Equal(t, "replace", a.String())

	a, err = ParseAnchor("")
	require.NoError(t, err)
	assert.Equal(t, AnchorDefault, a)

	_, err = ParseAnchor("sideways")
	assert.Error(t, err)
}

// randomDoc builds a document with S and E each present exactly once, S first
func randomDoc(rng *rand.Rand) (document.Document, string, string) {
	var lines []string
	filler := func(prefix string, max int) {
		n := rng.Intn(max)
		for i := 0; i < n; i++ {
			lines = append(lines, fmt.Sprintf("%s %d", prefix, rng.Intn(100)))
		}
	}
	filler("pre", 6)
	lines = append(lines, "  /* S */")
	filler("mid", 4)
	lines = append(lines, "  /* E */")
	filler("post", 4)
	return fromLines(lines...), "/* S */", "/* E */"
}

func TestBoundedPrefixSuffixProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		doc, s, e := randomDoc(rng)
		repl := fmt.Sprintf("r%d\n", i)

		res, err := ReplaceBounded(doc, s, e, repl)
		require.NoError(t, err)

		sLine := indexOf(doc, s)
		eLine := indexOf(doc, e)
		want := doc.Slice(0, sLine+1) + repl + doc.Slice(eLine, doc.Len())
		require.Equal(t, want, res.Document.String(), "case %d", i)

		again, err := ReplaceBounded(doc, s, e, repl)
		require.NoError(t, err)
		require.Equal(t, res.Document.Bytes(), again.Document.Bytes(), "patches must be deterministic")
	}
}

func TestTailPrefixSuffixProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		doc, s, _ := randomDoc(rng)
		repl := fmt.Sprintf("tail %d\n}", i)

		res, err := ReplaceTail(doc, s, repl)
		require.NoError(t, err)

		prefix := doc.Slice(0, indexOf(doc, s))
		got := res.Document.String()
		require.True(t, strings.HasPrefix(got, prefix), "case %d", i)
		require.Equal(t, repl, strings.TrimPrefix(got, prefix), "case %d", i)
	}
}

func indexOf(doc document.Document, token string) int {
	for i := 0; i < doc.Len(); i++ {
		if strings.Contains(doc.Text(i), token) {
			return i
		}
	}
	return -1
}

// fromLines joins unterminated lines with '\n'; the last line has no terminator
func fromLines(lines ...string) document.Document {
	return document.FromString(strings.Join(lines, "\n"))
}
