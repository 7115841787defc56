// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/method-recommender/pkg/types"
)

// FormatTable writes the ranked list as a human-readable table to w.
func FormatTable(items []types.RecommendationItem, w io.Writer) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No recommendations found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-36s  %-36s  %-8s  %-5s  %-5s  %-4s\n",
		"Rank", "Method", "Approach", "Articles", "Cond", "Perf", "Task")
	fmt.Fprintln(w, strings.Repeat("-", 108))

	for i, item := range items {
		fmt.Fprintf(w, "%-4d  %-36s  %-36s  %-8d  %-5d  %-5d  %-4d\n",
			i+1,
			labelOrIRI(item.MethodLabel, item.Method),
			labelOrIRI(item.ApproachLabel, item.Approach),
			item.SupportingArticles,
			item.PossibleIfMatches,
			item.PerformanceMatches,
			item.TaskMatch)
	}

	fmt.Fprintf(w, "\n%d recommendation(s)\n", len(items))
}

// FormatJSON writes the ranked list as indented JSON to w.
func FormatJSON(items []types.RecommendationItem, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// FormatDetails writes an approach's evidence view to w.
func FormatDetails(d *types.RecommendationDetails, w io.Writer) {
	fmt.Fprintf(w, "Approach: %s\n\n", d.ApproachIRI)

	fmt.Fprintf(w, "Supporting articles (%d):\n", len(d.Articles))
	for _, a := range d.Articles {
		title := a.Label
		if title == "" {
			title = a.Article
		}
		fmt.Fprintf(w, "  %-30s  %s\n", a.DOI, title)
	}

	printGroup := func(name string, options []types.Option) {
		fmt.Fprintf(w, "\n%s (%d):\n", name, len(options))
		for _, o := range options {
			fmt.Fprintf(w, "  %s\n", o.Label)
		}
	}
	printGroup("Condition matches", d.Matches.Conditions)
	printGroup("Performance matches", d.Matches.Performance)
	printGroup("Task matches", d.Matches.Tasks)
}

// FormatDetailsJSON writes the evidence view as indented JSON to w.
func FormatDetailsJSON(d *types.RecommendationDetails, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func labelOrIRI(label, iri string) string {
	s := label
	if s == "" {
		s = iri
	}
	return truncate(s, 36)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
