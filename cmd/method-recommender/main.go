// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the method-recommender CLI.
// The recommender maps a structured ML problem description to ranked
// candidate methods backed by a SPARQL knowledge graph; subcommands
// cover the HTTP API (serve), one-shot lookups (recommend, details,
// meta), and a raw query passthrough (query).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/method-recommender/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the method-recommender CLI.
var rootCmd = &cobra.Command{
	Use:   "method-recommender",
	Short: "Recommend ML methods from a knowledge graph of articles and approaches",
	Long: `method-recommender maps a described machine-learning problem (lifecycle
phase, application cluster, learning paradigm, optional task, dataset type,
conditions, and performance preferences) to ranked candidate methods. Rankings
are backed by a SPARQL knowledge graph of articles, methods, and curated
approaches; user accounts and saved searches live in a local SQLite store.

Run 'serve' for the HTTP API, or 'recommend', 'details', and 'meta' for
one-shot lookups from the terminal.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
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

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./method-recommender.yaml or ~/.config/method-recommender/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("method-recommender")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "method-recommender"))
		}
	}

	viper.SetEnvPrefix("METHOD_RECOMMENDER")
	viper.AutomaticEnv()

	viper.SetDefault("graphdb.base_url", "http://127.0.0.1:7200")
	viper.SetDefault("graphdb.repository", "ML-Ontology")
	viper.SetDefault("graphdb.timeout", "30s")
	viper.SetDefault("graphdb.user_agent", "method-recommender/"+version)
	viper.SetDefault("users.data_dir", "data")
	viper.SetDefault("server.addr", ":8000")
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
