// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"context"
	"fmt"
	"sync"

	"github.com/pdiddy/method-recommender/internal/graphdb"
	"github.com/pdiddy/method-recommender/pkg/types"
)

// Selector executes SPARQL read queries. *graphdb.Client implements it.
type Selector interface {
	Select(ctx context.Context, query string) (graphdb.BindingSet, error)
}

// Service orchestrates query construction, execution, and result
// shaping. It performs no retries; execution failures propagate to the
// caller with their upstream class intact.
type Service struct {
	db Selector
}

// NewService returns a Service backed by db.
func NewService(db Selector) *Service {
	return &Service{db: db}
}

// Recommend returns the ranked candidate list for req. Rows map onto
// items exactly as the query produced them; the ORDER BY is the ranking.
func (s *Service) Recommend(ctx context.Context, req types.RecommendationRequest) ([]types.RecommendationItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query, err := BuildRecommendationQuery(req)
	if err != nil {
		return nil, err
	}

	raw, err := s.db.Select(ctx, query)
	if err != nil {
		return nil, err
	}

	rows := graphdb.BindingsToRows(raw)
	items := make([]types.RecommendationItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, types.RecommendationItem{
			Method:             row.Str("method"),
			MethodLabel:        row.Str("methodLabel"),
			Approach:           row.Str("approach"),
			ApproachLabel:      row.Str("approachLabel"),
			SupportingArticles: row.Int("supportingArticles"),
			PossibleIfMatches:  row.Int("possibleIfMatches"),
			PerformanceMatches: row.Int("performanceMatches"),
			TaskMatch:          row.Int("taskMatches"),
		})
	}
	return items, nil
}

// Details returns the supporting articles and match groups for one
// approach. The articles query always runs; the matches query runs only
// when the request carries at least one match dimension — otherwise the
// groups are empty by construction, with no query issued. The two
// queries are independent and issued concurrently; either failure fails
// the whole operation, never a partial result.
func (s *Service) Details(ctx context.Context, req types.RecommendationRequest, approachIRI string) (*types.RecommendationDetails, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !types.ValidIRI(approachIRI) {
		return nil, fmt.Errorf("%w: approach_iri is not a valid IRI: %q", types.ErrInvalid, approachIRI)
	}

	articlesQuery, err := BuildDetailsArticlesQuery(req, approachIRI)
	if err != nil {
		return nil, err
	}

	var matchesQuery string
	if req.HasMatchDimensions() {
		matchesQuery, err = BuildDetailsMatchesQuery(req, approachIRI)
		if err != nil {
			return nil, err
		}
	}

	type queryResult struct {
		rows []graphdb.Row
		err  error
	}
	run := func(query string, out *queryResult) {
		raw, err := s.db.Select(ctx, query)
		if err != nil {
			out.err = err
			return
		}
		out.rows = graphdb.BindingsToRows(raw)
	}

	var articles, matches queryResult
	if matchesQuery == "" {
		run(articlesQuery, &articles)
	} else {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			run(articlesQuery, &articles)
		}()
		go func() {
			defer wg.Done()
			run(matchesQuery, &matches)
		}()
		wg.Wait()
	}
	if articles.err != nil {
		return nil, articles.err
	}
	if matches.err != nil {
		return nil, matches.err
	}

	details := &types.RecommendationDetails{
		ApproachIRI: approachIRI,
		Articles:    make([]types.ArticleItem, 0, len(articles.rows)),
	}

	for _, row := range articles.rows {
		doi := row.Str("doi")
		if doi == "" {
			continue
		}
		details.Articles = append(details.Articles, types.ArticleItem{
			Article: row.Str("article"),
			DOI:     doi,
			Label:   row.Str("label"),
		})
	}

	var conditions, performance, tasks optionSet
	for _, row := range matches.rows {
		conditions.add(row.Str("cond"), row.Str("condLabel"))
		performance.add(row.Str("perf"), row.Str("perfLabel"))
		tasks.add(row.Str("task"), row.Str("taskLabel"))
	}
	details.Matches = types.MatchGroups{
		Conditions:  conditions.options(),
		Performance: performance.options(),
		Tasks:       tasks.options(),
	}

	return details, nil
}

// optionSet accumulates {iri, label} pairs keyed by IRI in first-seen
// order. The first label wins on repeats; a missing label falls back to
// the IRI itself.
type optionSet struct {
	labels map[string]string
	order  []string
}

func (s *optionSet) add(iri, label string) {
	if iri == "" {
		return
	}
	if _, ok := s.labels[iri]; ok {
		return
	}
	if s.labels == nil {
		s.labels = make(map[string]string)
	}
	if label == "" {
		label = iri
	}
	s.labels[iri] = label
	s.order = append(s.order, iri)
}

// options flattens the set into insertion order.
func (s *optionSet) options() []types.Option {
	out := make([]types.Option, 0, len(s.order))
	for _, iri := range s.order {
		out = append(out, types.Option{IRI: iri, Label: s.labels[iri]})
	}
	return out
}
