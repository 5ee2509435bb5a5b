package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentic-research/cclua/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envOf(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("", noEnv)
	require.NoError(t, err)
	assert.Equal(t, DefaultInput, cfg.Input)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Empty(t, cfg.Cache)
	assert.Empty(t, cfg.Source)
	assert.Equal(t, api.DefaultTable(), cfg.Table)
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte(`input = "boot.py"`), 0o644))
	chdir(t, dir)

	cfg, err := Load("", noEnv)
	require.NoError(t, err)
	assert.Equal(t, "boot.py", cfg.Input)
	assert.Equal(t, DefaultFile, cfg.Source)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, "cclua.hcl", `
input  = "src/main.py"
output = "out/startup.lua"
cache  = ".cclua/cache.db"

api "cc_lib" {
  rule    = "camel"
  members = { get_names = "names" }
}

api "term" {
  rule = "verbatim"
}
`)
	cfg, err := Load(path, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "src/main.py", cfg.Input)
	assert.Equal(t, "out/startup.lua", cfg.Output)
	assert.Equal(t, ".cclua/cache.db", cfg.Cache)
	assert.Equal(t, path, cfg.Source)

	require.Len(t, cfg.Table, 2)
	cc, ok := cfg.Table.Lookup("cc_lib")
	require.True(t, ok)
	assert.Equal(t, "names", cc.Member("get_names"))
	assert.Equal(t, "isPresent", cc.Member("is_present"))
	term, ok := cfg.Table.Lookup("term")
	require.True(t, ok)
	assert.Equal(t, "set_cursor_pos", term.Member("set_cursor_pos"))
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeConfig(t, "cclua.json", `{"input": "a.py", "api": {"robot": {"rule": "camel"}}}`)
	cfg, err := Load(path, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "a.py", cfg.Input)
	_, ok := cfg.Table.Lookup("robot")
	assert.True(t, ok)
	_, ok = cfg.Table.Lookup(api.DesignatedOrigin)
	assert.False(t, ok)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "cclua.hcl", "input = \"file.py\"\noutput = \"file.lua\"\n")
	cfg, err := Load(path, envOf(map[string]string{EnvInput: "env.py"}))
	require.NoError(t, err)
	assert.Equal(t, "env.py", cfg.Input)
	assert.Equal(t, "file.lua", cfg.Output)
}

func TestConfig_OverrideFlagsWin(t *testing.T) {
	cfg := &Config{Input: "env.py", Output: "file.lua", Cache: "c.db"}
	cfg.Override("flag.py", "", "", "json")
	assert.Equal(t, "flag.py", cfg.Input)
	assert.Equal(t, "file.lua", cfg.Output)
	assert.Equal(t, "c.db", cfg.Cache)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.hcl"), noEnv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.hcl")
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeConfig(t, "bad.hcl", "input = \n")
	_, err := Load(path, noEnv)
	require.Error(t, err)

	path = writeConfig(t, "unknown.hcl", "colour = \"red\"\n")
	_, err = Load(path, noEnv)
	require.Error(t, err)
}

func TestFile_Table(t *testing.T) {
	table, err := (&File{APIs: []API{{Origin: "cc_lib"}}}).Table()
	require.NoError(t, err)
	assert.Equal(t, api.RuleCamelCase, table["cc_lib"].Rule)

	_, err = (&File{APIs: []API{{Origin: "cc_lib", Rule: "kebab"}}}).Table()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kebab")

	_, err = (&File{APIs: []API{{Origin: "a"}, {Origin: "a"}}}).Table()
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test, matching
// testing.T.Chdir (unavailable before Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
