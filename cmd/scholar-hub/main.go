// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholar-hub CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-hub/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the scholar-hub CLI.
var rootCmd = &cobra.Command{
	Use:   "scholar-hub",
	Short: "Aggregate, score, and rank academic metadata across open scholarly APIs",
	Long: `scholar-hub queries open scholarly APIs (arXiv, Semantic Scholar, Crossref,
DOAJ, Wikipedia, PubMed, institutional catalogs) in parallel, collapses
duplicate records, attaches a reliability score to each survivor, and ranks
what remains.

Each surface is a subcommand: search runs the pipeline from the terminal,
serve exposes it as an HTTP API, export renders a saved result set as
BibTeX, CSV, Markdown, or JSON, and library manages saved records.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env before secrets so either can supply keys. A missing file
		// is not an error.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scholar-hub.yaml or ~/.config/scholar-hub/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholar-hub")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholar-hub"))
		}
	}

	viper.SetEnvPrefix("SCHOLAR_HUB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
