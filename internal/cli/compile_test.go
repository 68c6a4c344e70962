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

const bareClosureFixture = `
name: bare_closure
entry: main
functions:
  - name: main
    body:
      lets:
        - name: f
          value:
            closure: "main::closure$0"
      tail:
        call:
          callee:
            ident: f
          args: []
closures:
  - parent: main
    name: closure$0
    params: []
    captures: []
    body:
      tail:
        int: 0
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCompileBareClosure(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "bare_closure.yaml", bareClosureFixture)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "compiled 2 function(s)")
	assert.Contains(t, output, "main")
}

func TestCompileBareClosureJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "bare_closure.yaml", bareClosureFixture)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.NotEmpty(t, resp.TraceID)
}

func TestCompileDisassembly(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "bare_closure.yaml", bareClosureFixture)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "--disasm"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "fn main")
	assert.Contains(t, output, "LoadFn main::closure$0")
	assert.Contains(t, output, "Return")
}

func TestCompileOutputToFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "bare_closure.yaml", bareClosureFixture)
	outputFile := filepath.Join(tmpDir, "compiled.json")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "--output", outputFile})

	err := cmd.Execute()
	require.NoError(t, err)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var result CompilationResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Len(t, result.Functions, 2)
}

func TestCompileNonExistentFixture(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/fixture.yaml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E005") // ErrCodeNotFound
}

func TestCompileUnresolvedEntry(t *testing.T) {
	tmpDir := t.TempDir()
	badFixture := `
name: missing_entry
entry: nope
functions: []
`
	path := writeFixture(t, tmpDir, "bad.yaml", badFixture)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
}

func TestCompileWithInvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	fixturePath := writeFixture(t, tmpDir, "bare_closure.yaml", bareClosureFixture)
	configPath := writeFixture(t, tmpDir, "bad.cue", `{ const_budget: 0 }`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{fixturePath, "--config", configPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E004") // ErrCodeLoadFailed
}

func TestCompileVerboseOutput(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "bare_closure.yaml", bareClosureFixture)

	stdoutBuf := &bytes.Buffer{}
	stderrBuf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Verbose: true}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(stdoutBuf)
	cmd.SetErr(stderrBuf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	verboseOutput := stderrBuf.String()
	assert.Contains(t, verboseOutput, "const budget")
	assert.Contains(t, verboseOutput, "indexed fixture")
}
