// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-hub/internal/aggregate"
	"github.com/pdiddy/scholar-hub/internal/cite"
	"github.com/pdiddy/scholar-hub/internal/export"
	"github.com/pdiddy/scholar-hub/internal/library"
	"github.com/pdiddy/scholar-hub/internal/observability"
	"github.com/pdiddy/scholar-hub/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search scholarly sources, deduplicate, score, and rank",
	Long: `Search fans a query out to every enabled source adapter in parallel,
collapses duplicate titles, attaches a reliability score to each record,
and prints the ranked survivors.

Use --save to write the result set to a YAML file for later export, or
--keep to store it in the local library database.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Errorf("query required: pass it as an argument or with --query")
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")

	cfg := loadConfig()
	logger := observability.NewLogger(cfg.Logging)
	pipeline := buildPipeline(cfg, logger, nil)

	records, stats := pipeline.Aggregate(context.Background(), query, maxResults)

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := export.WriteResultFile(savePath, query, maxResults, records, stats.DuplicatesRemoved); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %d records to %s\n", len(records), savePath)
	}

	if keep, _ := cmd.Flags().GetBool("keep"); keep {
		store, err := library.NewStore(cfg.Library)
		if err != nil {
			return err
		}
		defer store.Close()
		n, err := store.Save(context.Background(), query, records)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Kept %d records in %s\n", n, cfg.Library.Path)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	printSearchTable(records, stats)

	if withCitations, _ := cmd.Flags().GetBool("citations"); withCitations {
		printCitations(records)
	}
	return nil
}

func printSearchTable(records []types.Record, stats aggregate.Stats) {
	if len(records) == 0 {
		fmt.Println("No results found.")
		return
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-12s  %-5s  %-6s  %-16s  %-8s  %s\n",
		"Rank", "ID", "Score", "Year", "Source", "Cites", "Title")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for i, r := range records {
		title := r.Title
		if len(title) > 44 {
			title = title[:41] + "..."
		}
		year := "-"
		if r.Year > 0 {
			year = fmt.Sprintf("%d", r.Year)
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-12s  %.2f   %-6s  %-16s  %-8d  %s\n",
			i+1, r.ID, r.DisplayScore(), year, r.Source, r.Citations, title)
	}

	fmt.Fprintf(os.Stdout, "\n%d results", stats.Total)
	if stats.DuplicatesRemoved > 0 {
		fmt.Fprintf(os.Stdout, ", %d duplicates removed", stats.DuplicatesRemoved)
	}
	fmt.Fprintln(os.Stdout)
}

func printCitations(records []types.Record) {
	var gen cite.Generator
	for _, r := range records {
		citations := gen.Generate(r)
		fmt.Fprintf(os.Stdout, "\n%s\n", r.Title)
		for _, style := range cite.Styles {
			fmt.Fprintf(os.Stdout, "  %-9s %s\n", style+":", citations[style])
		}
	}
}

func init() {
	searchCmd.Flags().String("query", "", "free-text search query")
	searchCmd.Flags().Int("max-results", 0, "maximum ranked results (0 = configured default)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("citations", false, "print citation strings for each result")
	searchCmd.Flags().String("save", "", "write the result set to a YAML file")
	searchCmd.Flags().Bool("keep", false, "store the result set in the library database")

	rootCmd.AddCommand(searchCmd)
}
