package recommend

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pdiddy/method-recommender/pkg/types"
)

func TestRequestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.yaml")

	req := types.RecommendationRequest{
		ProblemText:      "detect defects on a production line",
		PhaseIRI:         "http://w3id.org/mla#DataPreparation",
		ClusterIRIs:      []string{"http://w3id.org/mla#Vision"},
		ParadigmIRI:      "http://w3id.org/mla#Supervised",
		TaskIRI:          "http://w3id.org/ml-ontology#Classification",
		Conditions:       []string{"http://w3id.org/ml-ontology#SmallData"},
		PerformancePrefs: []string{"http://w3id.org/ml-ontology#LowLatency"},
		MaxResults:       10,
	}
	items := []types.RecommendationItem{
		{
			Method:             "http://w3id.org/ml-ontology#M1",
			MethodLabel:        "Random Forest",
			Approach:           "http://w3id.org/ml-ontology#A1",
			ApproachLabel:      "Ensemble Trees",
			SupportingArticles: 12,
			PossibleIfMatches:  1,
			PerformanceMatches: 1,
			TaskMatch:          1,
		},
	}

	if err := WriteRequestFile(path, req, items); err != nil {
		t.Fatal(err)
	}

	rf, err := ReadRequestFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(rf.Request, req) {
		t.Errorf("request round-trip mismatch:\n got %+v\nwant %+v", rf.Request, req)
	}
	if !reflect.DeepEqual(rf.Results, items) {
		t.Errorf("results round-trip mismatch:\n got %+v\nwant %+v", rf.Results, items)
	}
	if rf.Summary.Total != 1 {
		t.Errorf("summary total = %d, want 1", rf.Summary.Total)
	}
	if rf.Summary.Timestamp.IsZero() {
		t.Error("summary timestamp should be set")
	}
}

func TestReadRequestFileMissing(t *testing.T) {
	if _, err := ReadRequestFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadRequestFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("request: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadRequestFile(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
