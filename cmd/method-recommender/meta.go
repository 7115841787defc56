// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/method-recommender/internal/graphdb"
	"github.com/pdiddy/method-recommender/internal/meta"
)

var metaCmd = &cobra.Command{
	Use:   "meta <dimension>",
	Short: "List the selectable options for an ontology dimension",
	Long: `Meta lists the {iri, label} options for one ontology dimension, sorted
case-insensitively by label. Dimensions: ` + strings.Join(meta.Dimensions, ", ") + `.`,
	Args: cobra.ExactArgs(1),
	RunE: runMeta,
}

func runMeta(cmd *cobra.Command, args []string) error {
	svc := meta.NewService(graphdb.NewClient(appConfig().GraphDB))

	options, err := svc.Options(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(options)
	}

	for _, o := range options {
		fmt.Printf("%-48s  %s\n", o.Label, o.IRI)
	}
	fmt.Printf("\n%d option(s)\n", len(options))
	return nil
}

func init() {
	metaCmd.Flags().Bool("json", false, "output options as JSON")

	rootCmd.AddCommand(metaCmd)
}
