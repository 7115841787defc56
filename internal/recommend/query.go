// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recommend builds the recommendation SPARQL queries and shapes
// their results. Query construction is deterministic: conditional
// fragments are switched in and out by which filters are present on the
// request, and only validated IRIs are ever interpolated.
package recommend

import (
	"fmt"
	"strings"

	"github.com/pdiddy/method-recommender/pkg/types"
)

// Prefixes is prepended to every query against the ontology.
const Prefixes = `PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
PREFIX skos: <http://www.w3.org/2004/02/skos/core#>
PREFIX mla: <http://w3id.org/mla#>
PREFIX : <http://w3id.org/ml-ontology#>
`

// MaxRecommendations is the hard upper bound on the ranked list. A
// request's max_results may lower the query limit but never raise it.
const MaxRecommendations = 15

// queryLimit resolves the LIMIT clause value from the request bound.
func queryLimit(maxResults int) int {
	if maxResults > 0 && maxResults < MaxRecommendations {
		return maxResults
	}
	return MaxRecommendations
}

// iriRef renders iri as a SPARQL IRI reference, rejecting anything that
// is not a plain absolute IRI. This is the only interpolation point.
func iriRef(iri string) (string, error) {
	if !types.ValidIRI(iri) {
		return "", fmt.Errorf("%w: not a valid IRI: %q", types.ErrInvalid, iri)
	}
	return "<" + iri + ">", nil
}

// iriList renders a deduplicated VALUES list, preserving first-seen
// order so each requested IRI is referenced exactly once.
func iriList(iris []string) (string, error) {
	seen := make(map[string]bool, len(iris))
	refs := make([]string, 0, len(iris))
	for _, iri := range iris {
		if seen[iri] {
			continue
		}
		seen[iri] = true
		ref, err := iriRef(iri)
		if err != nil {
			return "", err
		}
		refs = append(refs, ref)
	}
	return strings.Join(refs, " "), nil
}

// contextValues renders the fixed (phase, cluster, paradigm) VALUES
// clause, one row per requested cluster.
func contextValues(req types.RecommendationRequest) (string, error) {
	phase, err := iriRef(req.PhaseIRI)
	if err != nil {
		return "", err
	}
	paradigm, err := iriRef(req.ParadigmIRI)
	if err != nil {
		return "", err
	}

	var qb strings.Builder
	qb.WriteString("  VALUES (?phase ?cluster ?paradigm) {\n")
	seen := make(map[string]bool, len(req.ClusterIRIs))
	for _, c := range req.ClusterIRIs {
		if seen[c] {
			continue
		}
		seen[c] = true
		cluster, err := iriRef(c)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&qb, "    (%s %s %s)\n", phase, cluster, paradigm)
	}
	qb.WriteString("  }\n")
	return qb.String(), nil
}

// articleDiscovery is the shared pattern binding articles tagged with
// the requested phase/cluster/paradigm to the methods they mention.
const articleDiscovery = `
  ?article a mla:Article ;
          mla:hasPhase ?phase ;
          mla:hasCluster ?cluster ;
          mla:hasParadigm ?paradigm ;
          mla:mentionsMethod ?method .
`

// BuildRecommendationQuery assembles the ranked-list query. Methods
// join to their curated approach via skos:exactMatch; methods without an
// approach link contribute no rows. That inner join is a product
// decision (only citable, curated approaches surface), not an oversight.
//
// Conditions, performance preferences, and the task each contribute a
// fragment only when present on the request; an empty list omits its
// clause entirely rather than emitting an empty VALUES block.
func BuildRecommendationQuery(req types.RecommendationRequest) (string, error) {
	values, err := contextValues(req)
	if err != nil {
		return "", err
	}

	var qb strings.Builder
	qb.WriteString(Prefixes)
	qb.WriteString(`SELECT
  ?method ?methodLabel
  ?approach ?approachLabel
  (COUNT(DISTINCT ?article) AS ?supportingArticles)
  (COUNT(DISTINCT ?posMatch) AS ?possibleIfMatches)
  (COUNT(DISTINCT ?perfMatch) AS ?performanceMatches)
  (COUNT(DISTINCT ?taskMatch) AS ?taskMatches)
WHERE {
`)
	qb.WriteString(values)
	qb.WriteString(articleDiscovery)
	qb.WriteString(`
  OPTIONAL { ?method rdfs:label ?methodLabel }

  ?method skos:exactMatch ?approach .
  OPTIONAL { ?approach skos:prefLabel ?approachLabel }
`)

	if len(req.Conditions) > 0 {
		condVals, err := iriList(req.Conditions)
		if err != nil {
			return "", err
		}
		// Exclusion and match counting are emitted together or not at all.
		fmt.Fprintf(&qb, `
  FILTER NOT EXISTS {
    ?approach :not_possible_if ?blockedCond .
    VALUES ?blockedCond { %s }
  }

  OPTIONAL {
    ?approach :possible_if ?posMatch .
    VALUES ?posMatch { %s }
  }
`, condVals, condVals)
	}

	if len(req.PerformancePrefs) > 0 {
		perfVals, err := iriList(req.PerformancePrefs)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&qb, `
  OPTIONAL {
    ?approach :performance ?perfMatch .
    VALUES ?perfMatch { %s }
  }
`, perfVals)
	}

	if req.TaskIRI != "" {
		task, err := iriRef(req.TaskIRI)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&qb, `
  OPTIONAL {
    ?approach :used_for ?taskMatch .
    FILTER(?taskMatch = %s)
  }
`, task)
	}

	// The tie-break order is a ranking contract: article volume first,
	// explicit task fit as the strongest secondary signal.
	fmt.Fprintf(&qb, `}
GROUP BY ?method ?methodLabel ?approach ?approachLabel
ORDER BY
  DESC(?supportingArticles)
  DESC(?taskMatches)
  DESC(?possibleIfMatches)
  DESC(?performanceMatches)
LIMIT %d
`, queryLimit(req.MaxResults))

	return qb.String(), nil
}

// BuildDetailsArticlesQuery assembles the supporting-evidence lookup for
// one approach: the distinct articles (with mandatory DOI and optional
// title) behind the methods exact-matching that approach, within the
// request's phase/cluster/paradigm context.
func BuildDetailsArticlesQuery(req types.RecommendationRequest, approachIRI string) (string, error) {
	values, err := contextValues(req)
	if err != nil {
		return "", err
	}
	approach, err := iriRef(approachIRI)
	if err != nil {
		return "", err
	}

	var qb strings.Builder
	qb.WriteString(Prefixes)
	qb.WriteString("SELECT DISTINCT ?article ?doi ?label\nWHERE {\n")
	qb.WriteString(values)
	qb.WriteString(articleDiscovery)
	fmt.Fprintf(&qb, `
  ?method skos:exactMatch %s .

  ?article mla:doi ?doi .
  OPTIONAL { ?article rdfs:label ?label }
}
ORDER BY LCASE(STR(?doi))
`, approach)

	return qb.String(), nil
}

// BuildDetailsMatchesQuery assembles the match-detail lookup for one
// approach. It is independent of the phase/cluster/paradigm context and
// restricts each dimension to the requested set. Callers must not build
// or execute it when no dimension is present; an unconstrained query
// would return an unbounded cross-product.
func BuildDetailsMatchesQuery(req types.RecommendationRequest, approachIRI string) (string, error) {
	if !req.HasMatchDimensions() {
		return "", fmt.Errorf("%w: no match dimensions on request", types.ErrInvalid)
	}
	approach, err := iriRef(approachIRI)
	if err != nil {
		return "", err
	}

	var qb strings.Builder
	qb.WriteString(Prefixes)
	qb.WriteString("SELECT ?cond ?condLabel ?perf ?perfLabel ?task ?taskLabel\nWHERE {\n")

	if len(req.Conditions) > 0 {
		condVals, err := iriList(req.Conditions)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&qb, `
  OPTIONAL {
    %s :possible_if ?cond .
    VALUES ?cond { %s }
    OPTIONAL { ?cond skos:prefLabel ?condLabel }
  }
`, approach, condVals)
	}

	if len(req.PerformancePrefs) > 0 {
		perfVals, err := iriList(req.PerformancePrefs)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&qb, `
  OPTIONAL {
    %s :performance ?perf .
    VALUES ?perf { %s }
    OPTIONAL { ?perf skos:prefLabel ?perfLabel }
  }
`, approach, perfVals)
	}

	if req.TaskIRI != "" {
		task, err := iriRef(req.TaskIRI)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&qb, `
  OPTIONAL {
    %s :used_for ?task .
    FILTER(?task = %s)
    OPTIONAL { ?task skos:prefLabel ?taskLabel }
  }
`, approach, task)
	}

	qb.WriteString("}\n")
	return qb.String(), nil
}
