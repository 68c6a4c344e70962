package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillscript/quillc/internal/codegen"
	"github.com/quillscript/quillc/internal/config"
	"github.com/quillscript/quillc/internal/diagnostics"
	"github.com/quillscript/quillc/internal/hostcatalog"
	"github.com/quillscript/quillc/internal/quilltest"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path for the assembled Unit (JSON)
	Config string // path to a CUE config file (const budget, host catalog path)
	Disasm bool   // print a text disassembly instead of the JSON summary
}

// CompilationResult is the json-format summary of a compile run: the
// assembled functions plus whatever the unused-entries drain surfaced.
type CompilationResult struct {
	Functions    []FunctionSummary         `json:"functions"`
	Declarations []diagnostics.Declaration `json:"declarations,omitempty"`
}

// FunctionSummary is one FunctionUnit, flattened for JSON output.
type FunctionSummary struct {
	Item         string   `json:"item"`
	ParamCount   int      `json:"param_count"`
	Call         string   `json:"call"`
	Instructions []string `json:"instructions"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <fixture.yaml>",
		Short: "Compile a program fixture to an assembled Unit",
		Long: `Index a quilltest program fixture, drive it through the query engine to a
fixed point, and emit a Unit of assembled instructions.

The compiler resolves every reachable function and closure, folds consts
through the const interpreter, and reports anything the program declared
but never used.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the assembled Unit as JSON to this path")
	cmd.Flags().StringVar(&opts.Config, "config", "", "path to a CUE config file (const_budget, host_catalog_path)")
	cmd.Flags().BoolVar(&opts.Disasm, "disasm", false, "print a text disassembly instead of a JSON summary")

	return cmd
}

func runCompile(opts *CompileOptions, fixturePath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, hosts, closeHosts, err := loadCompileConfig(opts.Config)
	if err != nil {
		return outputCompileError(formatter, ErrCodeLoadFailed, err.Error())
	}
	if closeHosts != nil {
		defer closeHosts()
	}
	formatter.VerboseLog("const budget: %d", cfg.ConstBudget)

	fixture, err := quilltest.Load(fixturePath)
	if err != nil {
		return outputCompileError(formatter, ErrCodeNotFound, err.Error())
	}

	built, err := quilltest.Build(fixture)
	if err != nil {
		return outputCompileError(formatter, ErrCodeGeneric, err.Error())
	}
	formatter.VerboseLog("indexed fixture %q, entry %s", fixture.Name, built.Entry)

	if _, err := built.Engine.QueryMeta(built.Entry); err != nil {
		return outputCompileError(formatter, ErrCodeGeneric, err.Error())
	}

	collector := diagnostics.NewCollector()
	unit, err := codegen.New(built.Engine, hosts, collector, nil).EmitAll()
	if err != nil {
		return outputCompileError(formatter, ErrCodeGeneric, err.Error())
	}

	if opts.Output != "" {
		if err := writeUnitToFile(unit, opts.Output); err != nil {
			return outputCompileError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
		}
	}

	if opts.Disasm {
		fmt.Fprint(formatter.Writer, codegen.Disassemble(unit))
		return nil
	}

	result := toCompilationResult(unit, collector)
	return outputCompileSuccess(formatter, result, opts.Output)
}

// loadCompileConfig loads an optional CUE config and, when it names a
// host catalog, opens a real sqlite-backed hostcatalog.Catalog. With no
// --config flag, compilation proceeds with config.defaults() and no host
// catalog (NopHostCatalog inside codegen.New).
func loadCompileConfig(path string) (*config.Config, codegen.HostCatalog, func(), error) {
	src := "{}"
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		src = string(raw)
	}
	cfg, err := config.Load(src)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.HostCatalogPath == "" {
		return cfg, nil, nil, nil
	}
	catalog, err := hostcatalog.Open(cfg.HostCatalogPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening host catalog %s: %w", cfg.HostCatalogPath, err)
	}
	return cfg, catalog, func() { _ = catalog.Close() }, nil
}

// toCompilationResult disassembles unit once, with every function's hash
// visible to the LoadFn/Closure renderer, then splits the listing back
// into per-function instruction slices for the JSON summary.
func toCompilationResult(unit *codegen.Unit, collector *diagnostics.Collector) *CompilationResult {
	result := &CompilationResult{Declarations: collector.Declarations()}
	blocks := splitDisassembly(codegen.Disassemble(unit))
	for i, fn := range unit.Functions {
		summary := FunctionSummary{
			Item:       fn.Item.String(),
			ParamCount: fn.ParamCount,
			Call:       fn.Call.String(),
		}
		if i < len(blocks) {
			summary.Instructions = blocks[i]
		}
		result.Functions = append(result.Functions, summary)
	}
	return result
}

// splitDisassembly breaks Disassemble's output back into one
// instruction-line slice per "fn ..." header it printed.
func splitDisassembly(text string) [][]string {
	var blocks [][]string
	var current []string
	started := false
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "  ") {
			if started {
				blocks = append(blocks, current)
			}
			current = nil
			started = true
			continue
		}
		current = append(current, strings.TrimPrefix(line, "  "))
	}
	if started {
		blocks = append(blocks, current)
	}
	return blocks
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, result *CompilationResult, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "compiled %d function(s)\n", len(result.Functions))
	for _, fn := range result.Functions {
		fmt.Fprintf(formatter.Writer, "  %s (params=%d, call=%s, %d instruction(s))\n",
			fn.Item, fn.ParamCount, fn.Call, len(fn.Instructions))
	}
	if len(result.Declarations) > 0 {
		fmt.Fprintf(formatter.Writer, "\n%d unused declaration(s):\n", len(result.Declarations))
		for _, d := range result.Declarations {
			fmt.Fprintf(formatter.Writer, "  %s (%s)\n", d.Item, d.Kind)
		}
	}
	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "\nwrote Unit to %s\n", outputFile)
	}
	return nil
}

// outputCompileError outputs a single compilation error.
func outputCompileError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}

// writeUnitToFile writes the compilation result to a file in indented JSON.
func writeUnitToFile(unit *codegen.Unit, filename string) error {
	result := toCompilationResult(unit, diagnostics.NewCollector())
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling unit: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
