// Package cli implements the casetrace command-line interface: one-shot
// analysis of texts and files using the same pipeline the API server runs.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/casetrace/casetrace/internal/application/analysis"
	"github.com/casetrace/casetrace/internal/config"
	"github.com/casetrace/casetrace/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds global CLI flags.
type rootOptions struct {
	configPath string
	logLevel   string
	jsonOutput bool
}

// NewRootCommand creates the root cobra command with global flags and
// subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "casetrace",
		Short:         "casetrace text forensics from the command line",
		Long:          "casetrace extracts structured evidence from free text, classifies the\nthreat category, and computes a triage priority, without a running server.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file path (optional)")
	pf.StringVar(&opts.logLevel, "log-level", "error", "log level (debug, info, warn, error)")
	pf.BoolVar(&opts.jsonOutput, "json", false, "emit the full result as JSON")

	cmd.AddCommand(newAnalyzeCmd(opts))
	cmd.AddCommand(newAnalyzeFileCmd(opts))

	return cmd
}

// buildService loads configuration and assembles the local pipeline.
func buildService(opts *rootOptions) (*analysis.Service, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:  opts.logLevel,
		Format: "console",
	})
	if err != nil {
		return nil, err
	}

	return analysis.BuildService(cfg, logger, nil), nil
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	return 0
}
