// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/method-recommender/internal/graphdb"
	"github.com/pdiddy/method-recommender/internal/recommend"
	"github.com/pdiddy/method-recommender/pkg/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank candidate ML methods for a described problem",
	Long: `Recommend builds a ranked candidate list from the knowledge graph. Phase,
at least one cluster, and paradigm are required; task, dataset type,
conditions, and performance preferences narrow the evidence when given.

A previously saved request file (--request-file) replaces the flags; --save
writes the request and its results to a YAML file for replay.`,
	RunE: runRecommend,
}

func runRecommend(cmd *cobra.Command, args []string) error {
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

	items, err := svc.Recommend(cmd.Context(), req)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := recommend.WriteRequestFile(path, req, items); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Saved request to", path)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return recommend.FormatJSON(items, os.Stdout)
	}
	recommend.FormatTable(items, os.Stdout)
	return nil
}

// requestFromFlags assembles a RecommendationRequest from the shared
// request flags. Validation happens in the service, not here.
func requestFromFlags(cmd *cobra.Command) (types.RecommendationRequest, error) {
	var req types.RecommendationRequest
	var err error

	if req.PhaseIRI, err = cmd.Flags().GetString("phase"); err != nil {
		return req, err
	}
	if req.ClusterIRIs, err = cmd.Flags().GetStringSlice("cluster"); err != nil {
		return req, err
	}
	if req.ParadigmIRI, err = cmd.Flags().GetString("paradigm"); err != nil {
		return req, err
	}
	if req.TaskIRI, err = cmd.Flags().GetString("task"); err != nil {
		return req, err
	}
	if req.DatasetTypeIRI, err = cmd.Flags().GetString("dataset-type"); err != nil {
		return req, err
	}
	if req.Conditions, err = cmd.Flags().GetStringSlice("condition"); err != nil {
		return req, err
	}
	if req.PerformancePrefs, err = cmd.Flags().GetStringSlice("performance"); err != nil {
		return req, err
	}
	if req.MaxResults, err = cmd.Flags().GetInt("max-results"); err != nil {
		return req, err
	}
	req.ProblemText, _ = cmd.Flags().GetString("problem")
	return req, nil
}

// addRequestFlags registers the flags shared by recommend and details.
func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().String("problem", "", "free-text problem description (stored, not queried)")
	cmd.Flags().String("phase", "", "lifecycle phase IRI (required)")
	cmd.Flags().StringSlice("cluster", nil, "application cluster IRI (repeatable, at least one required)")
	cmd.Flags().String("paradigm", "", "learning paradigm IRI (required)")
	cmd.Flags().String("task", "", "ML task IRI")
	cmd.Flags().String("dataset-type", "", "dataset type IRI")
	cmd.Flags().StringSlice("condition", nil, "condition IRI the data satisfies (repeatable)")
	cmd.Flags().StringSlice("performance", nil, "preferred performance characteristic IRI (repeatable)")
	cmd.Flags().Int("max-results", 0, "cap on returned methods (0 uses the server maximum)")
}

func init() {
	addRequestFlags(recommendCmd)
	recommendCmd.Flags().Bool("json", false, "output results as JSON")
	recommendCmd.Flags().String("request-file", "", "load the request from a saved YAML file instead of flags")
	recommendCmd.Flags().String("save", "", "save the request and results to a YAML file")

	rootCmd.AddCommand(recommendCmd)
}
