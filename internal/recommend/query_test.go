package recommend

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/method-recommender/pkg/types"
)

func baseRequest() types.RecommendationRequest {
	return types.RecommendationRequest{
		PhaseIRI:    "http://w3id.org/mla#DataPreparation",
		ClusterIRIs: []string{"http://w3id.org/mla#Vision"},
		ParadigmIRI: "http://w3id.org/mla#Supervised",
	}
}

func TestQueryLimit(t *testing.T) {
	tests := []struct {
		maxResults int
		want       int
	}{
		{0, 15},
		{-1, 15},
		{1, 1},
		{10, 10},
		{15, 15},
		{16, 15},
		{1000, 15},
	}
	for _, tt := range tests {
		if got := queryLimit(tt.maxResults); got != tt.want {
			t.Errorf("queryLimit(%d) = %d, want %d", tt.maxResults, got, tt.want)
		}
	}
}

func TestBuildRecommendationQueryMinimal(t *testing.T) {
	query, err := BuildRecommendationQuery(baseRequest())
	if err != nil {
		t.Fatal(err)
	}

	// Required context appears as a single VALUES row.
	if !strings.Contains(query, "VALUES (?phase ?cluster ?paradigm)") {
		t.Error("missing context VALUES clause")
	}
	if !strings.Contains(query, "(<http://w3id.org/mla#DataPreparation> <http://w3id.org/mla#Vision> <http://w3id.org/mla#Supervised>)") {
		t.Error("missing context VALUES row")
	}

	// No filter dimensions given: none of the optional fragments appear.
	for _, fragment := range []string{
		"FILTER NOT EXISTS",
		":possible_if",
		":performance",
		":used_for",
	} {
		if strings.Contains(query, fragment) {
			t.Errorf("unfiltered query must not contain %q", fragment)
		}
	}

	// The aggregate projection still carries every count.
	for _, agg := range []string{
		"(COUNT(DISTINCT ?article) AS ?supportingArticles)",
		"(COUNT(DISTINCT ?posMatch) AS ?possibleIfMatches)",
		"(COUNT(DISTINCT ?perfMatch) AS ?performanceMatches)",
		"(COUNT(DISTINCT ?taskMatch) AS ?taskMatches)",
	} {
		if !strings.Contains(query, agg) {
			t.Errorf("missing aggregate %q", agg)
		}
	}

	if !strings.Contains(query, "?method skos:exactMatch ?approach .") {
		t.Error("missing method-to-approach join")
	}
	if !strings.HasSuffix(strings.TrimSpace(query), "LIMIT 15") {
		t.Errorf("query must end with the default LIMIT, got tail %q",
			query[len(query)-30:])
	}
}

func TestBuildRecommendationQueryConditions(t *testing.T) {
	req := baseRequest()
	req.Conditions = []string{
		"http://w3id.org/ml-ontology#SmallData",
		"http://w3id.org/ml-ontology#NoisyLabels",
	}

	query, err := BuildRecommendationQuery(req)
	if err != nil {
		t.Fatal(err)
	}

	// Exclusion and positive-match clauses both present.
	if !strings.Contains(query, "FILTER NOT EXISTS") {
		t.Error("missing FILTER NOT EXISTS exclusion")
	}
	if !strings.Contains(query, ":not_possible_if ?blockedCond") {
		t.Error("missing not_possible_if pattern")
	}
	if !strings.Contains(query, ":possible_if ?posMatch") {
		t.Error("missing possible_if pattern")
	}

	// Each condition IRI appears exactly once in each of the two clauses.
	for _, iri := range req.Conditions {
		ref := "<" + iri + ">"
		if got := strings.Count(query, ref); got != 2 {
			t.Errorf("condition %s appears %d times, want 2 (once per clause)", iri, got)
		}
	}
}

func TestBuildRecommendationQueryConditionsDeduplicated(t *testing.T) {
	req := baseRequest()
	req.Conditions = []string{
		"http://w3id.org/ml-ontology#SmallData",
		"http://w3id.org/ml-ontology#SmallData",
	}

	query, err := BuildRecommendationQuery(req)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(query, "<http://w3id.org/ml-ontology#SmallData>"); got != 2 {
		t.Errorf("duplicated condition appears %d times, want 2 (once per clause)", got)
	}
}

func TestBuildRecommendationQueryPerformance(t *testing.T) {
	req := baseRequest()
	req.PerformancePrefs = []string{"http://w3id.org/ml-ontology#LowLatency"}

	query, err := BuildRecommendationQuery(req)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(query, ":performance ?perfMatch") {
		t.Error("missing performance pattern")
	}
	if strings.Contains(query, "FILTER NOT EXISTS") {
		t.Error("performance prefs must not introduce an exclusion clause")
	}
}

func TestBuildRecommendationQueryTask(t *testing.T) {
	req := baseRequest()
	req.TaskIRI = "http://w3id.org/ml-ontology#Classification"

	query, err := BuildRecommendationQuery(req)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(query, ":used_for ?taskMatch") {
		t.Error("missing used_for pattern")
	}
	if !strings.Contains(query, "FILTER(?taskMatch = <http://w3id.org/ml-ontology#Classification>)") {
		t.Error("missing task equality filter")
	}
}

func TestBuildRecommendationQueryMultiCluster(t *testing.T) {
	req := baseRequest()
	req.ClusterIRIs = []string{
		"http://w3id.org/mla#Vision",
		"http://w3id.org/mla#NLP",
		"http://w3id.org/mla#Vision", // duplicate collapses
	}

	query, err := BuildRecommendationQuery(req)
	if err != nil {
		t.Fatal(err)
	}

	if got := strings.Count(query, "<http://w3id.org/mla#Vision>"); got != 1 {
		t.Errorf("Vision cluster appears %d times, want 1", got)
	}
	if got := strings.Count(query, "<http://w3id.org/mla#NLP>"); got != 1 {
		t.Errorf("NLP cluster appears %d times, want 1", got)
	}
	// One VALUES row per distinct cluster shares the phase and paradigm.
	if got := strings.Count(query, "<http://w3id.org/mla#DataPreparation>"); got != 2 {
		t.Errorf("phase appears %d times, want 2 (one per cluster row)", got)
	}
}

func TestBuildRecommendationQueryOrderContract(t *testing.T) {
	query, err := BuildRecommendationQuery(baseRequest())
	if err != nil {
		t.Fatal(err)
	}

	keys := []string{
		"DESC(?supportingArticles)",
		"DESC(?taskMatches)",
		"DESC(?possibleIfMatches)",
		"DESC(?performanceMatches)",
	}
	last := -1
	for _, key := range keys {
		idx := strings.Index(query, key)
		if idx < 0 {
			t.Fatalf("missing ORDER BY key %q", key)
		}
		if idx < last {
			t.Errorf("ORDER BY key %q out of position", key)
		}
		last = idx
	}
}

func TestBuildRecommendationQueryMaxResults(t *testing.T) {
	req := baseRequest()
	req.MaxResults = 5

	query, err := BuildRecommendationQuery(req)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(query, "LIMIT 5") {
		t.Error("max_results below the cap must lower the LIMIT")
	}

	req.MaxResults = 100
	query, err = BuildRecommendationQuery(req)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(query, fmt.Sprintf("LIMIT %d", MaxRecommendations)) {
		t.Error("max_results above the cap must clamp to the maximum")
	}
}

func TestBuildRecommendationQueryRejectsInvalidIRI(t *testing.T) {
	bad := []types.RecommendationRequest{
		func() types.RecommendationRequest {
			r := baseRequest()
			r.PhaseIRI = "not an iri"
			return r
		}(),
		func() types.RecommendationRequest {
			r := baseRequest()
			r.ClusterIRIs = []string{"http://ok.example/c", "inject> } FILTER"}
			return r
		}(),
		func() types.RecommendationRequest {
			r := baseRequest()
			r.Conditions = []string{"http://bad.example/a\"b"}
			return r
		}(),
		func() types.RecommendationRequest {
			r := baseRequest()
			r.TaskIRI = "http://bad.example/<t>"
			return r
		}(),
	}

	for i, req := range bad {
		if _, err := BuildRecommendationQuery(req); !errors.Is(err, types.ErrInvalid) {
			t.Errorf("case %d: got err %v, want ErrInvalid", i, err)
		}
	}
}

func TestBuildDetailsArticlesQuery(t *testing.T) {
	query, err := BuildDetailsArticlesQuery(baseRequest(), "http://w3id.org/ml-ontology#RandomForest")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(query, "?method skos:exactMatch <http://w3id.org/ml-ontology#RandomForest> .") {
		t.Error("missing approach join")
	}
	// DOI is a required pattern; only the title is optional.
	if !strings.Contains(query, "?article mla:doi ?doi .") {
		t.Error("missing mandatory DOI pattern")
	}
	if strings.Contains(query, "OPTIONAL { ?article mla:doi") {
		t.Error("DOI must not be optional")
	}
	if !strings.Contains(query, "OPTIONAL { ?article rdfs:label ?label }") {
		t.Error("missing optional article label")
	}
	if !strings.Contains(query, "ORDER BY LCASE(STR(?doi))") {
		t.Error("missing DOI ordering")
	}
	// Context still scopes article discovery.
	if !strings.Contains(query, "VALUES (?phase ?cluster ?paradigm)") {
		t.Error("missing context VALUES clause")
	}
}

func TestBuildDetailsMatchesQuery(t *testing.T) {
	req := baseRequest()
	req.Conditions = []string{"http://w3id.org/ml-ontology#SmallData"}
	req.PerformancePrefs = []string{"http://w3id.org/ml-ontology#LowLatency"}
	req.TaskIRI = "http://w3id.org/ml-ontology#Classification"

	query, err := BuildDetailsMatchesQuery(req, "http://w3id.org/ml-ontology#RandomForest")
	if err != nil {
		t.Fatal(err)
	}

	approach := "<http://w3id.org/ml-ontology#RandomForest>"
	if !strings.Contains(query, approach+" :possible_if ?cond") {
		t.Error("missing condition block")
	}
	if !strings.Contains(query, approach+" :performance ?perf") {
		t.Error("missing performance block")
	}
	if !strings.Contains(query, approach+" :used_for ?task") {
		t.Error("missing task block")
	}
	if !strings.Contains(query, "VALUES ?cond { <http://w3id.org/ml-ontology#SmallData> }") {
		t.Error("condition block must restrict to the requested set")
	}
	if !strings.Contains(query, "FILTER(?task = <http://w3id.org/ml-ontology#Classification>)") {
		t.Error("task block must restrict to the requested task")
	}
}

func TestBuildDetailsMatchesQuerySingleDimension(t *testing.T) {
	req := baseRequest()
	req.PerformancePrefs = []string{"http://w3id.org/ml-ontology#LowLatency"}

	query, err := BuildDetailsMatchesQuery(req, "http://w3id.org/ml-ontology#RandomForest")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(query, ":possible_if") {
		t.Error("no conditions requested; condition block must be absent")
	}
	if strings.Contains(query, ":used_for") {
		t.Error("no task requested; task block must be absent")
	}
	if !strings.Contains(query, ":performance ?perf") {
		t.Error("missing performance block")
	}
}

func TestBuildDetailsMatchesQueryRequiresDimensions(t *testing.T) {
	_, err := BuildDetailsMatchesQuery(baseRequest(), "http://w3id.org/ml-ontology#RandomForest")
	if !errors.Is(err, types.ErrInvalid) {
		t.Errorf("got err %v, want ErrInvalid", err)
	}
}

func TestBuildDetailsQueriesRejectInvalidApproach(t *testing.T) {
	req := baseRequest()
	req.TaskIRI = "http://w3id.org/ml-ontology#Classification"

	if _, err := BuildDetailsArticlesQuery(req, "no spaces allowed here"); !errors.Is(err, types.ErrInvalid) {
		t.Errorf("articles query: got err %v, want ErrInvalid", err)
	}
	if _, err := BuildDetailsMatchesQuery(req, "no spaces allowed here"); !errors.Is(err, types.ErrInvalid) {
		t.Errorf("matches query: got err %v, want ErrInvalid", err)
	}
}
