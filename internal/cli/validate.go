package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillscript/quillc/internal/config"
)

// ValidationResult holds validation results for a config file.
type ValidationResult struct {
	Valid       bool   `json:"valid"`
	Error       string `json:"error,omitempty"`
	ConstBudget int64  `json:"const_budget,omitempty"`
	HostCatalog string `json:"host_catalog_path,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config.cue>",
		Short: "Validate a compiler config without compiling anything",
		Long: `Parse and validate a CUE config file (const_budget, host_catalog_path)
without running a compile. Faster than compile for catching config
mistakes during development.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, configPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	src, err := os.ReadFile(configPath)
	if err != nil {
		return outputValidateError(formatter, ErrCodeNotFound, err.Error())
	}
	formatter.VerboseLog("read config %s (%d bytes)", configPath, len(src))

	cfg, err := config.Load(string(src))
	if err != nil {
		return outputValidateError(formatter, ErrCodeGeneric, err.Error())
	}

	return outputValidateSuccess(formatter, cfg)
}

// outputValidateSuccess outputs a valid config's resolved values.
func outputValidateSuccess(formatter *OutputFormatter, cfg *config.Config) error {
	result := ValidationResult{
		Valid:       true,
		ConstBudget: cfg.ConstBudget,
		HostCatalog: cfg.HostCatalogPath,
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, "valid")
	fmt.Fprintf(formatter.Writer, "  const_budget: %d\n", result.ConstBudget)
	if result.HostCatalog != "" {
		fmt.Fprintf(formatter.Writer, "  host_catalog_path: %s\n", result.HostCatalog)
	}
	return nil
}

// outputValidateError outputs a config validation failure.
func outputValidateError(formatter *OutputFormatter, code, message string) error {
	result := ValidationResult{Valid: false, Error: message}
	if formatter.Format == "json" {
		_ = formatter.Success(result)
	} else {
		_ = formatter.Error(code, message, nil)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%s: %s", code, message))
}
