// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/method-recommender/pkg/types"
)

// RequestFile is the on-disk representation of a recommendation request
// and its results. A request can be saved to a file and replayed later
// without re-entering every filter.
type RequestFile struct {
	Request types.RecommendationRequest `yaml:"request"`
	Results []types.RecommendationItem  `yaml:"results,omitempty"`
	Summary RequestSummary              `yaml:"summary,omitempty"`
}

// RequestSummary stores result statistics and a timestamp.
type RequestSummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteRequestFile saves a request and its results to a YAML file.
func WriteRequestFile(path string, req types.RecommendationRequest, items []types.RecommendationItem) error {
	rf := RequestFile{
		Request: req,
		Results: items,
		Summary: RequestSummary{
			Total:     len(items),
			Timestamp: time.Now(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling request file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRequestFile loads a previously saved request file from disk.
func ReadRequestFile(path string) (*RequestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	var rf RequestFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing request file: %w", err)
	}
	return &rf, nil
}
