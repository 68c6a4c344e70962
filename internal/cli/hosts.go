package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillscript/quillc/internal/hostcatalog"
)

// HostsOptions holds flags for the hosts command.
type HostsOptions struct {
	*RootOptions
	Database string
}

// HostEntry is one registered host function, as reported by the hosts
// command.
type HostEntry struct {
	QualifiedName string `json:"qualified_name"`
	Hash          uint64 `json:"hash"`
}

// HostsResult holds the full listing of a catalog's registered functions.
type HostsResult struct {
	Entries []HostEntry `json:"entries"`
	Total   int         `json:"total"`
}

// NewHostsCommand creates the hosts command.
func NewHostsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HostsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "hosts",
		Short: "List the host functions registered in a host catalog",
		Long: `List every host function registered in a SQLite-backed host
catalog: its qualified name and the hash the emitter resolves LoadHost
instructions against.

Examples:
  quillc hosts --db ./hosts.db
  quillc hosts --db ./hosts.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHosts(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the host catalog SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHosts(opts *HostsOptions, cmd *cobra.Command) error {
	catalog, err := hostcatalog.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open host catalog", err)
	}
	defer catalog.Close()

	entries, err := catalog.List()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list host catalog", err)
	}

	result := HostsResult{Total: len(entries)}
	for _, e := range entries {
		result.Entries = append(result.Entries, HostEntry{
			QualifiedName: e.QualifiedName,
			Hash:          uint64(e.Hash),
		})
	}

	if opts.Format == "json" {
		return outputHostsJSON(cmd, result)
	}
	return outputHostsText(cmd, result)
}

func outputHostsJSON(cmd *cobra.Command, result HostsResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

func outputHostsText(cmd *cobra.Command, result HostsResult) error {
	w := cmd.OutOrStdout()
	if result.Total == 0 {
		fmt.Fprintln(w, "(no registered host functions)")
		return nil
	}
	for _, e := range result.Entries {
		fmt.Fprintf(w, "  %s -> %d\n", e.QualifiedName, e.Hash)
	}
	fmt.Fprintf(w, "\n%d host function(s)\n", result.Total)
	return nil
}
