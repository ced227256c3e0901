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

// Package strip removes declaration lines such as imports from a document.
package strip

import (
	"regexp"
	"strings"
	"unicode"

	"gitlab.com/tozd/go/errors"
)

// 🔌 Pattern decides whether a line (without its terminator) is a statement
// to remove
type Pattern interface {
	Match(text string) bool
}

// 📜 Statement matches lines that start with Keyword and mention Symbol as
// a whole identifier, e.g. `import {Lib} from "./Lib.sol";` for
// Statement{Keyword: "import", Symbol: "Lib"}.
type Statement struct {
	Keyword string
	Symbol  string
}

// Import matches import declarations of sym
func Import(sym string) Statement {
	return Statement{Keyword: "import", Symbol: sym}
}

// Using matches `using sym for ...` declarations
func Using(sym string) Statement {
	return Statement{Keyword: "using", Symbol: sym}
}

// Match implements Pattern
func (s Statement) Match(text string) bool {
	if s.Keyword == "" {
		return false
	}
	line := strings.TrimSpace(text)
	rest, ok := strings.CutPrefix(line, s.Keyword)
	if !ok {
		return false
	}
	// keyword must end at a word boundary
	if rest != "" && isIdent(rune(rest[0])) {
		return false
	}
	if s.Symbol == "" {
		return true
	}
	return containsIdent(rest, s.Symbol)
}

// String returns a string representation of the statement pattern
func (s Statement) String() string {
	if s.Symbol == "" {
		return s.Keyword + " *"
	}
	return s.Keyword + " " + s.Symbol
}

func isIdent(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// containsIdent reports whether sym appears in s with no identifier
// characters on either side
func containsIdent(s, sym string) bool {
	for i := 0; ; {
		j := strings.Index(s[i:], sym)
		if j < 0 {
			return false
		}
		j += i
		before := j == 0 || !isIdent(rune(s[j-1]))
		after := j+len(sym) == len(s) || !isIdent(rune(s[j+len(sym)]))
		if before && after {
			return true
		}
		i = j + 1
	}
}

// 🧩 Expr matches lines whose trimmed text matches a regular expression in
// full
type Expr struct {
	re *regexp.Regexp
}

// Regexp compiles expr into a full-line Pattern
func Regexp(expr string) (*Expr, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, errors.Errorf("compiling statement pattern %q: %w", expr, err)
	}
	return &Expr{re: re}, nil
}

// Match implements Pattern
func (e *Expr) Match(text string) bool {
	return e.re.MatchString(strings.TrimSpace(text))
}

// String returns the compiled expression
func (e *Expr) String() string {
	return e.re.String()
}

// anyOf matches when any of its patterns does
type anyOf []Pattern

// Any combines patterns into one that matches when any of them matches
func Any(patterns ...Pattern) Pattern {
	return anyOf(patterns)
}

// Match implements Pattern
func (a anyOf) Match(text string) bool {
	for _, p := range a {
		if p != nil && p.Match(text) {
			return true
		}
	}
	return false
}
