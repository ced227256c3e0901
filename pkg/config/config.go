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

package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/markpatch/pkg/patch"
	"github.com/walteh/markpatch/pkg/strip"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📜 Statement is a declarative line pattern: either a keyword with an
// optional symbol, or a full-line regular expression
type Statement struct {
	Keyword string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Symbol  string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Regex   string `json:"regex,omitempty" yaml:"regex,omitempty"`
}

// Pattern compiles the statement into a strip.Pattern
func (s Statement) Pattern() (strip.Pattern, error) {
	switch {
	case s.Regex != "" && s.Keyword != "":
		return nil, errors.Errorf("statement sets both keyword and regex")
	case s.Regex != "":
		return strip.Regexp(s.Regex)
	case s.Keyword != "":
		return strip.Statement{Keyword: s.Keyword, Symbol: s.Symbol}, nil
	default:
		return nil, errors.Errorf("statement needs a keyword or a regex")
	}
}

// 🩹 Patch is one named region replacement applied to every matching file
type Patch struct {
	Name            string      `json:"name" yaml:"name"`
	Files           []string    `json:"files" yaml:"files"`
	Mode            string      `json:"mode" yaml:"mode"`
	Start           string      `json:"start" yaml:"start"`
	End             string      `json:"end,omitempty" yaml:"end,omitempty"`
	Replacement     string      `json:"replacement,omitempty" yaml:"replacement,omitempty"`
	ReplacementFile string      `json:"replacement_file,omitempty" yaml:"replacement_file,omitempty"`
	Terminator      string      `json:"terminator,omitempty" yaml:"terminator,omitempty"`
	Anchor          string      `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	Backup          bool        `json:"backup,omitempty" yaml:"backup,omitempty"`
	Statements      []Statement `json:"statements,omitempty" yaml:"statements,omitempty"`
}

// 📚 Config is a patch plan
type Config struct {
	BackupSuffix string  `json:"backup_suffix,omitempty" yaml:"backup_suffix,omitempty"`
	Async        bool    `json:"async,omitempty" yaml:"async,omitempty"`
	Patches      []Patch `json:"patches" yaml:"patches"`

	location string
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Errorf("resolving config path: %w", err)
	}
	cfg.location = abs

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Int("patches", len(cfg.Patches)).Msg("configuration loaded")
	return cfg, nil
}

// Dir is the directory relative paths in the plan resolve against
func (cfg *Config) Dir() string {
	if cfg.location == "" {
		return "."
	}
	return filepath.Dir(cfg.location)
}

// SetLocation records where the plan came from
func (cfg *Config) SetLocation(path string) {
	cfg.location = path
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if len(cfg.Patches) == 0 {
		return errors.Errorf("at least one patch is required")
	}

	seen := map[string]bool{}
	for i, p := range cfg.Patches {
		if p.Name == "" {
			return errors.Errorf("patch %d: name is required", i)
		}
		if seen[p.Name] {
			return errors.Errorf("patch %q: duplicate name", p.Name)
		}
		seen[p.Name] = true

		if err := p.Validate(); err != nil {
			return errors.Errorf("patch %q: %w", p.Name, err)
		}
	}
	return nil
}

// Validate checks one patch without touching the filesystem
func (p Patch) Validate() error {
	if len(p.Files) == 0 {
		return errors.Errorf("files is required")
	}
	for _, f := range p.Files {
		if !doublestar.ValidatePattern(filepath.ToSlash(f)) {
			return errors.Errorf("invalid file pattern %q", f)
		}
	}
	if p.Replacement != "" && p.ReplacementFile != "" {
		return errors.Errorf("%w: replacement and replacement_file are both set", patch.ErrAmbiguousMode)
	}

	req, err := p.request()
	if err != nil {
		return err
	}
	return req.Validate()
}

// request builds the patch request with inline replacement text only
func (p Patch) request() (patch.Request, error) {
	mode, err := patch.ParseMode(p.Mode)
	if err != nil {
		return patch.Request{}, err
	}
	anchor, err := patch.ParseAnchor(p.Anchor)
	if err != nil {
		return patch.Request{}, err
	}

	req := patch.Request{
		Mode:        mode,
		Start:       p.Start,
		End:         p.End,
		Replacement: p.Replacement,
		Terminator:  p.Terminator,
		Anchor:      anchor,
	}
	for i, s := range p.Statements {
		pat, err := s.Pattern()
		if err != nil {
			return patch.Request{}, errors.Errorf("statement %d: %w", i, err)
		}
		req.Statements = append(req.Statements, pat)
	}
	return req, nil
}

// Request builds the patch request, reading replacement_file relative to dir
func (p Patch) Request(dir string) (patch.Request, error) {
	req, err := p.request()
	if err != nil {
		return patch.Request{}, err
	}
	if p.ReplacementFile != "" {
		path := p.ReplacementFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return patch.Request{}, errors.Errorf("reading replacement file: %w", err)
		}
		req.Replacement = string(data)
	}
	return req, nil
}

// 📂 ExpandFiles resolves the patch's file patterns against dir. Every
// pattern has to match at least one file; the result is sorted and free of
// duplicates. Files ending in one of skip are left out so backups are never
// patched themselves; a pattern matching only skipped files is an error.
func (p Patch) ExpandFiles(dir string, skip ...string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, pattern := range p.Files {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(dir, pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", pattern, err)
		}
		kept := 0
		for _, m := range matches {
			if hasAnySuffix(m, skip) {
				continue
			}
			kept++
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
		if kept == 0 {
			return nil, errors.Errorf("no files match %q", pattern)
		}
	}
	sort.Strings(files)
	return files, nil
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
