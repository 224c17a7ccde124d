// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-hub/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a saved result set as BibTeX, CSV, Markdown, or JSON",
	Long: `Export reads a YAML result file written by search --save and renders
the records in the requested format. By default the output file name is
derived from the original query; use --output to override, or "-" to
write to stdout.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		return fmt.Errorf("input file required: use --input with a file written by search --save")
	}

	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(format)

	rf, err := export.ReadResultFile(input)
	if err != nil {
		return err
	}
	if len(rf.Records) == 0 {
		return fmt.Errorf("result file %s holds no records", input)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "-" {
		return export.Write(os.Stdout, format, rf.Records)
	}
	if output == "" {
		output = export.Filename(rf.Query, format)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := export.Write(f, format, rf.Records); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Exported %d records to %s\n", len(rf.Records), output)
	return nil
}

func init() {
	exportCmd.Flags().String("input", "", "YAML result file written by search --save")
	exportCmd.Flags().String("format", "bibtex", "output format: bibtex, csv, markdown, or json")
	exportCmd.Flags().String("output", "", "output file (default derived from the query; \"-\" for stdout)")

	rootCmd.AddCommand(exportCmd)
}
