// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package meta serves the selectable ontology dimensions as {iri, label}
// option lists. Each dimension is one fixed query ordered
// case-insensitively by label; sorting lives in the query, not here.
package meta

import (
	"context"
	"fmt"

	"github.com/pdiddy/method-recommender/internal/graphdb"
	"github.com/pdiddy/method-recommender/internal/recommend"
	"github.com/pdiddy/method-recommender/pkg/types"
)

// Selector executes SPARQL read queries. *graphdb.Client implements it.
type Selector interface {
	Select(ctx context.Context, query string) (graphdb.BindingSet, error)
}

// Service answers option-list lookups for every ontology dimension.
type Service struct {
	db Selector
}

// NewService returns a Service backed by db.
func NewService(db Selector) *Service {
	return &Service{db: db}
}

const (
	phasesQuery = `SELECT ?iri ?label WHERE {
  ?iri a mla:LifecyclePhase ;
       rdfs:label ?label .
} ORDER BY LCASE(STR(?label))
`
	clustersQuery = `SELECT ?iri ?label WHERE {
  ?iri a mla:ApplicationCluster ;
       rdfs:label ?label .
} ORDER BY LCASE(STR(?label))
`
	paradigmsQuery = `SELECT ?iri ?label WHERE {
  ?iri a mla:LearningParadigm ;
       rdfs:label ?label .
} ORDER BY LCASE(STR(?label))
`
	tasksQuery = `SELECT ?iri ?label WHERE {
  ?iri a :ML_task ;
       skos:prefLabel ?label .
} ORDER BY LCASE(STR(?label))
`
	datasetTypesQuery = `SELECT DISTINCT ?iri ?label WHERE {
  ?task a :ML_task ;
        :has_dataset_type ?iri .
  ?iri a :Enum ;
       skos:prefLabel ?label .
} ORDER BY LCASE(STR(?label))
`
	conditionsQuery = `SELECT DISTINCT ?iri ?label WHERE {
  { ?a :possible_if ?iri . }
  UNION
  { ?a :not_possible_if ?iri . }
  ?iri a :Enum ;
       skos:prefLabel ?label .
} ORDER BY LCASE(STR(?label))
`
	performanceQuery = `SELECT DISTINCT ?iri ?label WHERE {
  ?a :performance ?iri .
  ?iri a :Enum ;
       skos:prefLabel ?label .
} ORDER BY LCASE(STR(?label))
`
)

// Dimensions maps dimension names to their option queries, in the order
// the CLI lists them.
var Dimensions = []string{
	"phases", "clusters", "paradigms", "tasks",
	"dataset-types", "conditions", "performance",
}

var dimensionQueries = map[string]string{
	"phases":        phasesQuery,
	"clusters":      clustersQuery,
	"paradigms":     paradigmsQuery,
	"tasks":         tasksQuery,
	"dataset-types": datasetTypesQuery,
	"conditions":    conditionsQuery,
	"performance":   performanceQuery,
}

// Options returns the option list for the named dimension.
func (s *Service) Options(ctx context.Context, dimension string) ([]types.Option, error) {
	query, ok := dimensionQueries[dimension]
	if !ok {
		return nil, fmt.Errorf("%w: unknown meta dimension %q", types.ErrInvalid, dimension)
	}
	return s.options(ctx, query)
}

// Phases lists lifecycle phases.
func (s *Service) Phases(ctx context.Context) ([]types.Option, error) {
	return s.options(ctx, phasesQuery)
}

// Clusters lists application clusters.
func (s *Service) Clusters(ctx context.Context) ([]types.Option, error) {
	return s.options(ctx, clustersQuery)
}

// Paradigms lists learning paradigms.
func (s *Service) Paradigms(ctx context.Context) ([]types.Option, error) {
	return s.options(ctx, paradigmsQuery)
}

// Tasks lists ML tasks.
func (s *Service) Tasks(ctx context.Context) ([]types.Option, error) {
	return s.options(ctx, tasksQuery)
}

// DatasetTypes lists the dataset-type enum values reachable from tasks.
func (s *Service) DatasetTypes(ctx context.Context) ([]types.Option, error) {
	return s.options(ctx, datasetTypesQuery)
}

// Conditions lists every enum used as a possible_if or not_possible_if
// condition on some approach.
func (s *Service) Conditions(ctx context.Context) ([]types.Option, error) {
	return s.options(ctx, conditionsQuery)
}

// Performance lists the declared performance characteristic values.
func (s *Service) Performance(ctx context.Context) ([]types.Option, error) {
	return s.options(ctx, performanceQuery)
}

func (s *Service) options(ctx context.Context, query string) ([]types.Option, error) {
	raw, err := s.db.Select(ctx, recommend.Prefixes+query)
	if err != nil {
		return nil, err
	}
	return graphdb.RowsToOptions(graphdb.BindingsToRows(raw)), nil
}
