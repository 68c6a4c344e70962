package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillscript/quillc/internal/codegen"
	"github.com/quillscript/quillc/internal/diagnostics"
	"github.com/quillscript/quillc/internal/quilltest"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // fixture filter (glob pattern, matched against file base name)
}

// ScenarioResult holds the result of compiling a single fixture.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <fixtures-dir>",
		Short: "Compile every program fixture and check it against its golden disassembly",
		Long: `Walk a directory of quilltest program fixtures, compile each one, and
compare the disassembled Unit against a golden file next to it
(golden/<name>.golden). A fixture with no golden file yet passes as long
as it compiles cleanly.

Exit codes:
  0 - All fixtures passed
  1 - One or more fixtures failed
  2 - Command error (invalid paths, etc.)

Examples:
  quillc test ./testdata/scenarios
  quillc test ./testdata/scenarios --filter "closure*"
  quillc test ./testdata/scenarios --update
  quillc test ./testdata/scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter fixtures by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, fixturesDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(fixturesDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("fixtures directory not found: %s", fixturesDir))
	}

	fixtureFiles, err := findScenarioFiles(fixturesDir, opts.Filter)
	if err != nil {
		return fmt.Errorf("failed to find fixtures: %w", err)
	}

	if len(fixtureFiles) == 0 {
		if opts.Format == "json" {
			return outputTestJSON(cmd, TestResult{Scenarios: []ScenarioResult{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No fixtures found.")
		return nil
	}

	result := TestResult{
		Scenarios: make([]ScenarioResult, 0, len(fixtureFiles)),
		Total:     len(fixtureFiles),
	}

	for _, fixtureFile := range fixtureFiles {
		scenResult := runFixture(fixtureFile, opts, cmd)
		result.Scenarios = append(result.Scenarios, scenResult)
		if scenResult.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		return outputTestJSON(cmd, result)
	}
	return outputTestText(cmd, result)
}

// findScenarioFiles finds all fixture files in a directory (via
// FindFixtureFiles) and applies an optional glob filter against each
// file's base name.
func findScenarioFiles(dir string, filter string) ([]string, error) {
	all, err := FindFixtureFiles(dir)
	if err != nil {
		return nil, err
	}
	if filter == "" {
		return all, nil
	}

	var files []string
	for _, path := range all {
		name := fixtureName(path)
		matched, err := filepath.Match(filter, name)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern: %w", err)
		}
		if matched {
			files = append(files, path)
		}
	}
	return files, nil
}

// runFixture compiles a single fixture and checks the result against its
// golden disassembly, returning a pass/fail verdict for the summary.
func runFixture(fixtureFile string, opts *TestOptions, cmd *cobra.Command) ScenarioResult {
	w := cmd.OutOrStdout()
	name := fixtureName(fixtureFile)

	disasm, err := compileFixture(fixtureFile)
	if err != nil {
		if opts.Format != "json" {
			fmt.Fprintf(w, "✗ %s\n  %v\n", name, err)
		}
		return ScenarioResult{Name: name, Pass: false, Errors: []string{err.Error()}}
	}

	goldenPath := goldenFilePath(fixtureFile)

	if opts.Update {
		if err := writeGoldenFile(goldenPath, disasm); err != nil {
			if opts.Format != "json" {
				fmt.Fprintf(w, "✗ %s\n  golden update error: %v\n", name, err)
			}
			return ScenarioResult{Name: name, Pass: false, Errors: []string{err.Error()}}
		}
		if opts.Format != "json" {
			fmt.Fprintf(w, "✓ %s (golden updated)\n", name)
		}
		return ScenarioResult{Name: name, Pass: true}
	}

	if _, err := os.Stat(goldenPath); os.IsNotExist(err) {
		if opts.Format != "json" {
			fmt.Fprintf(w, "✓ %s (no golden file, compiled cleanly)\n", name)
		}
		return ScenarioResult{Name: name, Pass: true}
	}

	goldenData, err := os.ReadFile(goldenPath)
	if err != nil {
		if opts.Format != "json" {
			fmt.Fprintf(w, "✗ %s\n  golden read error: %v\n", name, err)
		}
		return ScenarioResult{Name: name, Pass: false, Errors: []string{err.Error()}}
	}

	if string(goldenData) != disasm {
		if opts.Format != "json" {
			fmt.Fprintf(w, "✗ %s\n  golden file mismatch (run with --update to regenerate)\n", name)
		}
		return ScenarioResult{Name: name, Pass: false, Errors: []string{"disassembly does not match golden file"}}
	}

	if opts.Format != "json" {
		fmt.Fprintf(w, "✓ %s\n", name)
	}
	return ScenarioResult{Name: name, Pass: true}
}

// compileFixture runs the full load/build/drive/emit pipeline against one
// fixture file and returns its disassembled Unit text.
func compileFixture(fixtureFile string) (string, error) {
	fixture, err := quilltest.Load(fixtureFile)
	if err != nil {
		return "", fmt.Errorf("loading fixture: %w", err)
	}

	built, err := quilltest.Build(fixture)
	if err != nil {
		return "", fmt.Errorf("indexing fixture: %w", err)
	}

	if _, err := built.Engine.QueryMeta(built.Entry); err != nil {
		return "", fmt.Errorf("resolving entry: %w", err)
	}

	unit, err := codegen.New(built.Engine, nil, diagnostics.NewCollector(), nil).EmitAll()
	if err != nil {
		return "", fmt.Errorf("emitting code: %w", err)
	}

	return codegen.Disassemble(unit), nil
}

// fixtureName derives a human-facing scenario name from its file path.
func fixtureName(fixtureFile string) string {
	base := filepath.Base(fixtureFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// goldenFilePath returns the path to the golden file for a fixture.
func goldenFilePath(fixtureFile string) string {
	dir := filepath.Dir(fixtureFile)
	base := filepath.Base(fixtureFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

// writeGoldenFile writes disasm as the golden file for a fixture, creating
// the golden/ subdirectory if needed.
func writeGoldenFile(goldenPath, disasm string) error {
	goldenDir := filepath.Dir(goldenPath)
	if err := os.MkdirAll(goldenDir, 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(goldenPath, []byte(disasm), 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// outputTestJSON outputs the test result as JSON.
func outputTestJSON(cmd *cobra.Command, result TestResult) error {
	status := "ok"
	if result.Failed > 0 {
		status = "error"
	}

	response := CLIResponse{
		Status: status,
		Data:   result,
	}

	if result.Failed > 0 {
		response.Error = &CLIError{
			Code:    "E_TEST_FAILED",
			Message: fmt.Sprintf("%d scenario(s) failed", result.Failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}

// outputTestText outputs the test result as text.
func outputTestText(cmd *cobra.Command, result TestResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}
