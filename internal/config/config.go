// Package config resolves the driver settings: input and output paths, the
// optional translation cache and the API mapping table.
//
// Values are layered: command-line flags over environment over the HCL
// file over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentic-research/cclua/api"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

const (
	DefaultInput  = "transpiler_in.py"
	DefaultOutput = "transpiler_out.lua"
	// DefaultFile is read from the working directory when no --config is given.
	DefaultFile = "cclua.hcl"

	EnvInput  = "in_file"
	EnvOutput = "out_file"
)

// File is the on-disk configuration.
//
//	input  = "transpiler_in.py"
//	output = "transpiler_out.lua"
//	cache  = ".cclua/cache.db"
//
//	api "cc_lib" {
//	  rule    = "camel"
//	  members = { get_names = "getNames" }
//	}
type File struct {
	Input  string `hcl:"input,optional"`
	Output string `hcl:"output,optional"`
	Cache  string `hcl:"cache,optional"`
	Format string `hcl:"format,optional"`
	APIs   []API  `hcl:"api,block"`
}

// API declares one mapped import origin.
type API struct {
	Origin  string            `hcl:"origin,label"`
	Rule    string            `hcl:"rule,optional"`
	Members map[string]string `hcl:"members,optional"`
}

// Config is the resolved driver configuration.
type Config struct {
	Input  string
	Output string
	Cache  string
	Format string
	Table  api.Table
	// Source is the file the configuration was read from, if any.
	Source string
}

// LoadFile decodes an HCL (or HCL JSON, by .json extension) configuration file.
func LoadFile(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	var (
		f     *hcl.File
		diags hcl.Diagnostics
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		f, diags = parser.ParseJSON(src, path)
	} else {
		f, diags = parser.ParseHCL(src, path)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse config: %w", diags)
	}

	var out File
	if diags := gohcl.DecodeBody(f.Body, nil, &out); diags.HasErrors() {
		return nil, fmt.Errorf("decode config: %w", diags)
	}
	return &out, nil
}

// Load resolves configuration from path, the environment and defaults.
// An empty path reads DefaultFile if it exists; a named file must exist.
// lookupEnv is usually os.LookupEnv.
func Load(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	file := &File{}
	source := ""
	loaded, err := LoadFile(path)
	switch {
	case err == nil:
		file, source = loaded, path
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	table, err := file.Table()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Input:  first(env(lookupEnv, EnvInput), file.Input, DefaultInput),
		Output: first(env(lookupEnv, EnvOutput), file.Output, DefaultOutput),
		Cache:  file.Cache,
		Format: file.Format,
		Table:  table,
		Source: source,
	}
	return cfg, nil
}

// Override applies non-empty flag values over the resolved settings.
func (c *Config) Override(input, output, cache, format string) {
	c.Input = first(input, c.Input)
	c.Output = first(output, c.Output)
	c.Cache = first(cache, c.Cache)
	c.Format = first(format, c.Format)
}

// Table builds the mapping table. Without api blocks it is the default
// table; declaring any block replaces it. An omitted rule means camelCase.
func (f *File) Table() (api.Table, error) {
	if len(f.APIs) == 0 {
		return api.DefaultTable(), nil
	}
	table := make(api.Table, len(f.APIs))
	for _, a := range f.APIs {
		if a.Origin == "" {
			return nil, errors.New("api block with empty origin")
		}
		if _, dup := table[a.Origin]; dup {
			return nil, fmt.Errorf("api %q declared more than once", a.Origin)
		}
		rule := api.RuleCamelCase
		if a.Rule != "" {
			r, err := api.ParseNamingRule(a.Rule)
			if err != nil {
				return nil, fmt.Errorf("api %q: %w", a.Origin, err)
			}
			rule = r
		}
		table[a.Origin] = api.Mapping{Origin: a.Origin, Rule: rule, Members: maps.Clone(a.Members)}
	}
	return table, nil
}

func env(lookupEnv func(string) (string, bool), key string) string {
	if lookupEnv == nil {
		return ""
	}
	v, _ := lookupEnv(key)
	return v
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
