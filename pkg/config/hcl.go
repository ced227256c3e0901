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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// envObject exposes the process environment to HCL as env.NAME
func envObject() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !hclsyntax.ValidIdentifier(k) {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(vars)
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "markpatch.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(),
		},
	}

	// Define HCL schema
	type hclStatement struct {
		Keyword string `hcl:"keyword,optional"`
		Symbol  string `hcl:"symbol,optional"`
		Regex   string `hcl:"regex,optional"`
	}
	type hclPatch struct {
		Name            string         `hcl:"name,label"`
		Files           []string       `hcl:"files"`
		Mode            string         `hcl:"mode"`
		Start           string         `hcl:"start"`
		End             string         `hcl:"end,optional"`
		Replacement     string         `hcl:"replacement,optional"`
		ReplacementFile string         `hcl:"replacement_file,optional"`
		Terminator      string         `hcl:"terminator,optional"`
		Anchor          string         `hcl:"anchor,optional"`
		Backup          bool           `hcl:"backup,optional"`
		Statements      []hclStatement `hcl:"statement,block"`
	}
	type hclConfig struct {
		BackupSuffix string     `hcl:"backup_suffix,optional"`
		Async        bool       `hcl:"async,optional"`
		Patches      []hclPatch `hcl:"patch,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		BackupSuffix: hclCfg.BackupSuffix,
		Async:        hclCfg.Async,
	}
	for _, hp := range hclCfg.Patches {
		pt := Patch{
			Name:            hp.Name,
			Files:           hp.Files,
			Mode:            hp.Mode,
			Start:           hp.Start,
			End:             hp.End,
			Replacement:     hp.Replacement,
			ReplacementFile: hp.ReplacementFile,
			Terminator:      hp.Terminator,
			Anchor:          hp.Anchor,
			Backup:          hp.Backup,
		}
		for _, s := range hp.Statements {
			pt.Statements = append(pt.Statements, Statement(s))
		}
		cfg.Patches = append(cfg.Patches, pt)
	}

	return cfg, nil
}
