package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/veridex/crosscheck/internal/result"
)

// Overview is the JSON export consumed by external viewers.
type Overview struct {
	CreatedAt   string           `json:"created_at"`
	DurationMS  int64            `json:"duration_ms"`
	Options     OverviewOptions  `json:"options"`
	Submissions int              `json:"total_submissions"`
	Comparisons []JSONComparison `json:"comparisons"`
	Clusters    []JSONCluster    `json:"clusters"`
	Failed      []JSONFailure    `json:"failed_submissions"`
}

// OverviewOptions snapshots the effective run configuration.
type OverviewOptions struct {
	Language            string   `json:"language"`
	NewDirectories      []string `json:"new_directories"`
	OldDirectories      []string `json:"old_directories,omitempty"`
	BaseCodeDirectory   string   `json:"base_code_directory,omitempty"`
	MinimumTokenMatch   int      `json:"minimum_token_match"`
	MaxComparisons      int      `json:"maximum_number_of_comparisons,omitempty"`
	ClusteringThreshold float64  `json:"clustering_threshold"`
}

type JSONComparison struct {
	FirstSubmission   string      `json:"first_submission"`
	SecondSubmission  string      `json:"second_submission"`
	AverageSimilarity float64     `json:"average_similarity"`
	MaximumSimilarity float64     `json:"maximum_similarity"`
	MatchedTokens     int         `json:"matched_tokens"`
	Matches           []JSONMatch `json:"matches"`
}

type JSONMatch struct {
	StartA int `json:"start_a"`
	StartB int `json:"start_b"`
	Length int `json:"length"`
}

type JSONCluster struct {
	Members  []string `json:"members"`
	Strength float64  `json:"strength"`
}

type JSONFailure struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// BuildOverview converts a result to its export document. The comparison
// list honors the reporting cap; clusters always reflect the full set.
func BuildOverview(r *result.Result) Overview {
	opts := r.Options()
	overview := Overview{
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		DurationMS: r.Duration().Milliseconds(),
		Options: OverviewOptions{
			Language:            opts.Language,
			NewDirectories:      opts.NewDirectories,
			OldDirectories:      opts.OldDirectories,
			BaseCodeDirectory:   opts.BaseCodeDirectory,
			MinimumTokenMatch:   opts.MinimumTokenMatch,
			MaxComparisons:      opts.MaximumNumberOfComparisons,
			ClusteringThreshold: opts.ClusteringThreshold,
		},
		Submissions: r.NumberOfSubmissions(),
	}

	for _, c := range r.TopComparisons(opts.MaximumNumberOfComparisons) {
		jc := JSONComparison{
			FirstSubmission:   c.A.Name,
			SecondSubmission:  c.B.Name,
			AverageSimilarity: c.Similarity(),
			MaximumSimilarity: c.MaximalSimilarity(),
			MatchedTokens:     c.MatchedTokens(),
		}
		for _, m := range c.Matches {
			jc.Matches = append(jc.Matches, JSONMatch{StartA: m.StartA, StartB: m.StartB, Length: m.Length})
		}
		overview.Comparisons = append(overview.Comparisons, jc)
	}

	for _, cl := range r.Clusters() {
		overview.Clusters = append(overview.Clusters, JSONCluster{Members: cl.Members, Strength: cl.Strength})
	}
	for _, f := range r.FailedSubmissions() {
		overview.Failed = append(overview.Failed, JSONFailure{Name: f.Name, Error: f.Err.Error()})
	}
	return overview
}

// WriteOverview writes the export document to path, creating parent
// directories as needed.
func WriteOverview(r *result.Result, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	data, err := json.MarshalIndent(BuildOverview(r), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling overview: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing overview: %w", err)
	}
	return nil
}
