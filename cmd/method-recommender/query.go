// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/method-recommender/internal/graphdb"
)

var queryCmd = &cobra.Command{
	Use:   "query [sparql]",
	Short: "Run a raw SPARQL query against the repository",
	Long: `Query sends a SPARQL SELECT (or, with --update, a SPARQL UPDATE) straight
to the configured repository and prints the raw result. The query is taken
from the argument, or from stdin when no argument is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	var query string
	if len(args) == 1 {
		query = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading query from stdin: %w", err)
		}
		query = string(data)
	}
	if query == "" {
		return fmt.Errorf("no query given")
	}

	db := graphdb.NewClient(appConfig().GraphDB)

	if isUpdate, _ := cmd.Flags().GetBool("update"); isUpdate {
		if err := db.Update(cmd.Context(), query); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Update applied.")
		return nil
	}

	raw, err := db.Select(cmd.Context(), query)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(raw)
}

func init() {
	queryCmd.Flags().Bool("update", false, "send the text as a SPARQL UPDATE instead of a SELECT")

	rootCmd.AddCommand(queryCmd)
}
