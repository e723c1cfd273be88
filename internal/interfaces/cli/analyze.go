package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/casetrace/casetrace/internal/application/analysis"
	"github.com/casetrace/casetrace/internal/domain/evidence"
)

// newAnalyzeCmd builds the "analyze" subcommand: run the pipeline over text
// given as arguments or piped on stdin.
func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Analyze free text",
		Long:  "Analyzes the given text (or stdin when no arguments are provided) and\nprints the extracted evidence, threat classification, and priority score.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if text == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				text = string(data)
			}

			service, err := buildService(opts)
			if err != nil {
				return err
			}

			result, err := service.AnalyzeText(cmd.Context(), text)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result, opts.jsonOutput)
		},
	}
}

// newAnalyzeFileCmd builds the "analyze-file" subcommand: route a file
// through content sniffing exactly like an API upload.
func newAnalyzeFileCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze-file <path>",
		Short: "Analyze a file",
		Long:  "Routes the file by sniffed content type (text decoded directly, images\nthrough OCR when available) and analyzes the recovered text.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			service, err := buildService(opts)
			if err != nil {
				return err
			}

			result, err := service.AnalyzeFile(cmd.Context(), filepath.Base(args[0]), data)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result, opts.jsonOutput)
		},
	}
}

func printResult(w io.Writer, result *analysis.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(w, "Classification: %s (%.2f, %s)\n",
		result.Classification.Label, result.Classification.Confidence, result.Classification.Mode)
	fmt.Fprintf(w, "Priority score: %d\n", result.PriorityScore)
	fmt.Fprintf(w, "Summary:        %s\n", result.Summary)

	b := result.Evidence
	printHits(w, "Emails", b.Emails)
	printHits(w, "Phones", b.Phones)
	printHits(w, "IPs", b.IPs)
	printHits(w, "URLs", b.URLs)
	printHits(w, "Money", b.Money)
	printHits(w, "Dates", b.Dates)
	for _, kind := range evidence.EntityKinds() {
		name := string(kind)
		printHits(w, strings.ToUpper(name[:1])+name[1:]+"s", b.Entities[kind])
	}
	return nil
}

func printHits(w io.Writer, label string, hits []string) {
	if len(hits) == 0 {
		return
	}
	fmt.Fprintf(w, "%-8s %s\n", label+":", strings.Join(hits, ", "))
}
