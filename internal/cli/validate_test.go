package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaultConfig(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "config.cue", `{}`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "valid")
}

func TestValidateOverriddenConfigJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "config.cue", `{
		const_budget: 5000
		host_catalog_path: "/var/lib/quillc/hosts.db"
	}`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	dataMap, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(5000), dataMap["const_budget"])
	assert.Equal(t, "/var/lib/quillc/hosts.db", dataMap["host_catalog_path"])
}

func TestValidateNonExistentFile(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/config.cue"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E005") // ErrCodeNotFound
}

func TestValidateNonPositiveBudget(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "config.cue", `{ const_budget: 0 }`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, buf.String(), "const_budget")
}

func TestValidateInvalidCUESyntax(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "config.cue", `{ this is not valid cue`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status) // invalid config is still valid=false payload, not a CLIError
	dataMap, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, dataMap["valid"])
}

func TestValidateVerboseOutput(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "config.cue", `{}`)

	stdoutBuf := &bytes.Buffer{}
	stderrBuf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Verbose: true}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(stdoutBuf)
	cmd.SetErr(stderrBuf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, stderrBuf.String(), "read config")
}

func TestValidateEmptyPath(t *testing.T) {
	_, err := os.Stat(filepath.Join(t.TempDir(), "missing.cue"))
	assert.Error(t, err)
}
