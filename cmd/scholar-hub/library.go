// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-hub/internal/cite"
	"github.com/pdiddy/scholar-hub/internal/library"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage saved records (list, show, rm)",
	Long: `Library manages the local SQLite database of saved records. Records
enter the library through search --keep; use subcommands to list them
with full-text search, inspect one, or remove it.`,
}

// --- list subcommand ---

var libraryListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List saved records with optional full-text search and filters",
	RunE:  runLibraryList,
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	store, err := library.NewStore(loadConfig().Library)
	if err != nil {
		return err
	}
	defer store.Close()

	source, _ := cmd.Flags().GetString("source")
	minScore, _ := cmd.Flags().GetFloat64("min-score")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := library.ListOptions{
		Query:      strings.Join(args, " "),
		Source:     source,
		MinScore:   minScore,
		MaxResults: limit,
	}

	results, err := store.List(context.Background(), opts)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No saved records found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-12s  %-5s  %-6s  %-16s  %-44s  %s\n",
		"ID", "Score", "Year", "Source", "Title", "Saved from")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, r := range results {
		title := r.Title
		if len(title) > 44 {
			title = title[:41] + "..."
		}
		year := "-"
		if r.Year > 0 {
			year = fmt.Sprintf("%d", r.Year)
		}
		fmt.Fprintf(os.Stdout, "%-12s  %.2f   %-6s  %-16s  %-44s  %s\n",
			r.ID, r.DisplayScore(), year, r.Source, title, r.SavedQuery)
	}

	fmt.Fprintf(os.Stdout, "\n%d records\n", len(results))
	return nil
}

// --- show subcommand ---

var libraryShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one saved record with its citation strings",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryShow,
}

func runLibraryShow(cmd *cobra.Command, args []string) error {
	store, err := library.NewStore(loadConfig().Library)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	fmt.Printf("Title:    %s\n", rec.Title)
	fmt.Printf("Authors:  %s\n", strings.Join(rec.Authors, ", "))
	fmt.Printf("Source:   %s\n", rec.Source)
	if rec.Year > 0 {
		fmt.Printf("Year:     %d\n", rec.Year)
	}
	if rec.Journal != "" {
		fmt.Printf("Journal:  %s\n", rec.Journal)
	}
	if rec.DOI != "" {
		fmt.Printf("DOI:      %s\n", rec.DOI)
	}
	fmt.Printf("URL:      %s\n", rec.URL)
	fmt.Printf("Score:    %.2f (%s)\n", rec.DisplayScore(), rec.ReliabilityLevel)
	fmt.Printf("Saved:    %s (query %q)\n", rec.SavedAt.Format("2006-01-02"), rec.SavedQuery)
	if rec.Abstract != "" {
		fmt.Printf("\n%s\n", rec.Abstract)
	}

	var gen cite.Generator
	citations := gen.Generate(rec.Record)
	fmt.Println("\nCitations:")
	for _, style := range cite.Styles {
		fmt.Printf("  %-9s %s\n", style+":", citations[style])
	}
	return nil
}

// --- rm subcommand ---

var libraryRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Remove a saved record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := library.NewStore(loadConfig().Library)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

func init() {
	libraryListCmd.Flags().String("source", "", "filter by source identifier")
	libraryListCmd.Flags().Float64("min-score", 0, "minimum reliability score")
	libraryListCmd.Flags().Int("limit", 0, "maximum records (0 = default)")
	libraryListCmd.Flags().Bool("json", false, "output as JSON")

	libraryShowCmd.Flags().Bool("json", false, "output as JSON")

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryShowCmd)
	libraryCmd.AddCommand(libraryRmCmd)

	rootCmd.AddCommand(libraryCmd)
}
