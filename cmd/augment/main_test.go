package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productions = "../../compiler/load/testdata/productions.graphql"

const shows = `
interface Show { actors: [Actor!]! @declareRelationship }
type Actor { name: String! }
`

// run executes the command line with an isolated home directory and
// returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(context.Background(), append([]string{"augment"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCompileStdout(t *testing.T) {
	out, err := run(t, "compile", productions)
	require.NoError(t, err)
	assert.Contains(t, out, "union ProductionActorsRelationshipProperties = ActedIn | StarredIn\n")
	assert.Contains(t, out, "type Mutation {\n")
}

func TestCompileFlags(t *testing.T) {
	dir := t.TempDir()
	schema := filepath.Join(dir, "schema.graphql")
	bindings := filepath.Join(dir, "model", "bindings.go")
	_, err := run(t, "compile",
		"--out", schema,
		"--go-out", bindings,
		"--go-package", "model",
		"--disable", "mutations",
		"--header", "generated",
		productions,
	)
	require.NoError(t, err)

	sdl, err := os.ReadFile(schema)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(sdl), "# generated\n\n"))
	assert.NotContains(t, string(sdl), "type Mutation")

	code, err := os.ReadFile(bindings)
	require.NoError(t, err)
	assert.Contains(t, string(code), "package model\n")
	assert.Contains(t, string(code), "type ProductionActorsRelationshipProperties interface")
}

func TestCompileMultipleJSON(t *testing.T) {
	var (
		dir = t.TempDir()
		out = filepath.Join(dir, "out")
		a   = writeFile(t, dir, "shows.graphql", shows)
		b   = writeFile(t, dir, "actors.graphql", "type Actor { name: String! }\n")
	)
	_, err := run(t, "compile", "--format", "json", "--jobs", "2", "--out", out, a, b)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(out, "shows.json"))
	require.NoError(t, err)
	var r report
	require.NoError(t, json.Unmarshal(raw, &r))
	assert.Contains(t, r.Schema, "interface Show")
	assert.Contains(t, r.Definitions, "ShowWhere")
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "Show.actors")
	assert.NotEmpty(t, r.Fingerprint)

	_, err = os.Stat(filepath.Join(out, "actors.json"))
	assert.NoError(t, err)
}

func TestCompileErrors(t *testing.T) {
	t.Run("NoInputs", func(t *testing.T) {
		_, err := run(t, "compile")
		assert.ErrorIs(t, err, ErrNoInputs)
	})
	t.Run("Format", func(t *testing.T) {
		_, err := run(t, "compile", "--format", "xml", productions)
		assert.ErrorContains(t, err, `unknown format "xml"`)
	})
	t.Run("Model", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "bad.graphql", `
interface Production { actors: [Actor!]! @declareRelationship }
type Movie implements Production { actors: Actor @relationship(type: "ACTED_IN", direction: IN) }
type Actor { name: String! }
`)
		_, err := run(t, "compile", path)
		assert.ErrorContains(t, err, "realization mismatch")
	})
}

func TestCheck(t *testing.T) {
	path := writeFile(t, t.TempDir(), "shows.graphql", shows)
	out, err := run(t, "check", "--print-model", path)
	require.NoError(t, err)
	assert.Contains(t, out, path+": warning: augment: abstract field Show.actors")
	assert.Contains(t, out, `"name": "Show"`)
	assert.Contains(t, out, path+": ok\n")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "augment.yaml", `
format: json
header: from config
disable:
  - aggregations
`)
	out, err := run(t, "--config", cfg, "compile", productions)
	require.NoError(t, err)
	var r report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.True(t, strings.HasPrefix(r.Schema, "# from config\n"))
	assert.NotContains(t, r.Schema, "AggregateSelection")

	_, err = run(t, "--config", filepath.Join(dir, "missing.yaml"), "compile", productions)
	assert.ErrorContains(t, err, "read config")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AUGMENT_FORMAT", "json")
	t.Setenv("AUGMENT_GO_PACKAGE", "model")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, "model", cfg.GoPackage)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "  ", cfg.Indent)
	assert.Positive(t, cfg.Jobs)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "augment "))
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger("debug")
	require.NoError(t, err)
	_, err = newLogger("loud")
	assert.ErrorContains(t, err, `invalid log level "loud"`)
}
