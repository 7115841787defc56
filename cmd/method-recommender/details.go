// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/method-recommender/internal/graphdb"
	"github.com/pdiddy/method-recommender/internal/recommend"
)

var detailsCmd = &cobra.Command{
	Use:   "details <approach-iri>",
	Short: "Show the evidence behind one recommended approach",
	Long: `Details fetches the supporting articles (DOI-bearing only) and the
deduplicated condition, performance, and task matches for one approach,
evaluated against the same request context that produced the ranking.
Pass the same filter flags you used with recommend.`,
	Args: cobra.ExactArgs(1),
	RunE: runDetails,
}

func runDetails(cmd *cobra.Command, args []string) error {
	approachIRI := args[0]

	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("request-file"); path != "" {
		rf, err := recommend.ReadRequestFile(path)
		if err != nil {
			return err
		}
		req = rf.Request
	}

	svc := recommend.NewService(graphdb.NewClient(appConfig().GraphDB))

	details, err := svc.Details(cmd.Context(), req, approachIRI)
	if err != nil {
		return fmt.Errorf("fetching details: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return recommend.FormatDetailsJSON(details, os.Stdout)
	}
	recommend.FormatDetails(details, os.Stdout)
	return nil
}

func init() {
	addRequestFlags(detailsCmd)
	detailsCmd.Flags().Bool("json", false, "output details as JSON")
	detailsCmd.Flags().String("request-file", "", "load the request context from a saved YAML file")

	rootCmd.AddCommand(detailsCmd)
}
