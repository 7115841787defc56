// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid marks request-shape failures detected before any outbound
// call. Callers map it to a bad-request response.
var ErrInvalid = errors.New("invalid request")

// Option is one selectable ontology term: an IRI plus its human label.
// It is the universal unit for every dimension the UI can offer
// (phase, cluster, paradigm, task, dataset type, condition, performance).
type Option struct {
	IRI   string `json:"iri" yaml:"iri"`
	Label string `json:"label" yaml:"label"`
}

// RecommendationRequest describes the user's ML problem. Phase, at least
// one cluster, and paradigm are required ontology IRIs; everything else
// narrows the result set when present. ProblemText never reaches a query;
// it is carried for saved searches and future semantic matching.
type RecommendationRequest struct {
	ProblemText      string   `json:"problem_text,omitempty" yaml:"problem_text,omitempty"`
	PhaseIRI         string   `json:"phase_iri" yaml:"phase_iri"`
	ClusterIRIs      []string `json:"cluster_iris" yaml:"cluster_iris"`
	ParadigmIRI      string   `json:"paradigm_iri" yaml:"paradigm_iri"`
	MaxResults       int      `json:"max_results,omitempty" yaml:"max_results,omitempty"`
	TaskIRI          string   `json:"task_iri,omitempty" yaml:"task_iri,omitempty"`
	DatasetTypeIRI   string   `json:"dataset_type_iri,omitempty" yaml:"dataset_type_iri,omitempty"`
	Conditions       []string `json:"conditions" yaml:"conditions,omitempty"`
	PerformancePrefs []string `json:"performance_prefs" yaml:"performance_prefs,omitempty"`
}

// Validate checks the required identifiers and the IRI shape of every
// identifier on the request. Errors wrap ErrInvalid.
func (r RecommendationRequest) Validate() error {
	if r.PhaseIRI == "" {
		return fmt.Errorf("%w: phase_iri is required", ErrInvalid)
	}
	if len(r.ClusterIRIs) == 0 {
		return fmt.Errorf("%w: at least one cluster_iri is required", ErrInvalid)
	}
	if r.ParadigmIRI == "" {
		return fmt.Errorf("%w: paradigm_iri is required", ErrInvalid)
	}

	check := func(field, iri string) error {
		if iri != "" && !ValidIRI(iri) {
			return fmt.Errorf("%w: %s is not a valid IRI: %q", ErrInvalid, field, iri)
		}
		return nil
	}

	if err := check("phase_iri", r.PhaseIRI); err != nil {
		return err
	}
	if err := check("paradigm_iri", r.ParadigmIRI); err != nil {
		return err
	}
	if err := check("task_iri", r.TaskIRI); err != nil {
		return err
	}
	if err := check("dataset_type_iri", r.DatasetTypeIRI); err != nil {
		return err
	}
	for _, c := range r.ClusterIRIs {
		if !ValidIRI(c) {
			return fmt.Errorf("%w: cluster_iris entry is not a valid IRI: %q", ErrInvalid, c)
		}
	}
	for _, c := range r.Conditions {
		if !ValidIRI(c) {
			return fmt.Errorf("%w: conditions entry is not a valid IRI: %q", ErrInvalid, c)
		}
	}
	for _, p := range r.PerformancePrefs {
		if !ValidIRI(p) {
			return fmt.Errorf("%w: performance_prefs entry is not a valid IRI: %q", ErrInvalid, p)
		}
	}
	return nil
}

// HasMatchDimensions reports whether any of the detail-match dimensions
// (conditions, performance preferences, task) is present. When it is
// false the matches query must not be executed at all.
func (r RecommendationRequest) HasMatchDimensions() bool {
	return len(r.Conditions) > 0 || len(r.PerformancePrefs) > 0 || r.TaskIRI != ""
}

// ValidIRI reports whether s can be spliced into a SPARQL IRI reference.
// It requires a scheme separator and rejects whitespace, control
// characters, and the delimiters an IRIREF forbids. Queries interpolate
// IRIs only, never free text.
func ValidIRI(s string) bool {
	if s == "" || !strings.Contains(s, ":") {
		return false
	}
	for _, r := range s {
		if r <= ' ' || strings.ContainsRune("<>\"{}|^`\\", r) {
			return false
		}
	}
	return true
}

// RecommendationItem is one ranked candidate: a method, its curated
// approach, and the evidence counts the ranking is built on. Items are
// query projections; they are never persisted.
type RecommendationItem struct {
	Method             string `json:"method,omitempty" yaml:"method,omitempty"`
	MethodLabel        string `json:"methodLabel,omitempty" yaml:"method_label,omitempty"`
	Approach           string `json:"approach,omitempty" yaml:"approach,omitempty"`
	ApproachLabel      string `json:"approachLabel,omitempty" yaml:"approach_label,omitempty"`
	SupportingArticles int    `json:"supportingArticles" yaml:"supporting_articles"`
	PossibleIfMatches  int    `json:"possibleIfMatches" yaml:"possible_if_matches"`
	PerformanceMatches int    `json:"performanceMatches" yaml:"performance_matches"`
	TaskMatch          int    `json:"taskMatch" yaml:"task_match"`
}

// ArticleItem is one supporting article for an approach. A DOI is
// mandatory; articles without one are excluded at the query level.
type ArticleItem struct {
	Article string `json:"article,omitempty" yaml:"article,omitempty"`
	DOI     string `json:"doi" yaml:"doi"`
	Label   string `json:"label,omitempty" yaml:"label,omitempty"`
}

// MatchGroups holds the deduplicated, labeled match evidence for one
// approach, grouped by dimension. Lists keep first-occurrence order and
// serialize as [] rather than null.
type MatchGroups struct {
	Conditions  []Option `json:"conditions" yaml:"conditions"`
	Performance []Option `json:"performance" yaml:"performance"`
	Tasks       []Option `json:"tasks" yaml:"tasks"`
}

// RecommendationDetails is the evidence view for one selected approach.
type RecommendationDetails struct {
	ApproachIRI string        `json:"approachIri" yaml:"approach_iri"`
	Articles    []ArticleItem `json:"articles" yaml:"articles"`
	Matches     MatchGroups   `json:"matches" yaml:"matches"`
}
