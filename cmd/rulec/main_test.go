package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRule = `rule Example {
	description: "example";
	priority: Info;
	all { c in container : true }
}`

func TestRunCompile_JSONToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "rule.txt")
	out := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(in, []byte(sampleRule), 0o644))

	cfg := &compileConfig{target: "json", input: in, output: out}
	require.NoError(t, runCompile(nil, cfg))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"type":"rule"`)
}

func TestRunCompile_CypherToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "rule.txt")
	out := filepath.Join(dir, "out.cql")
	require.NoError(t, os.WriteFile(in, []byte(sampleRule), 0o644))

	cfg := &compileConfig{target: "cypher", input: in, output: out}
	require.NoError(t, runCompile(nil, cfg))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "// [RULE]: Example")
}

func TestRunCompile_UnknownTarget(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "rule.txt")
	require.NoError(t, os.WriteFile(in, []byte(sampleRule), 0o644))

	cfg := &compileConfig{target: "xml", input: in}
	err := runCompile(nil, cfg)
	require.Error(t, err)
}

func TestRunCompile_ParseFailurePropagates(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(in, []byte("not a rule"), 0o644))

	cfg := &compileConfig{target: "json", input: in}
	err := runCompile(nil, cfg)
	require.Error(t, err)
}

func TestReadSource_MissingFile(t *testing.T) {
	_, err := readSource(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestWriteOutput_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "nested.txt")
	require.NoError(t, writeOutput(out, "hello"))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(content))
}

func TestNewRootCmd_HasExpectedFlags(t *testing.T) {
	cmd := newRootCmd()
	assert.NotNil(t, cmd.Flags().Lookup("target"))
	assert.NotNil(t, cmd.Flags().Lookup("input"))
	assert.NotNil(t, cmd.Flags().Lookup("output"))

	var buf bytes.Buffer
	cmd.SetOut(&buf)
}
