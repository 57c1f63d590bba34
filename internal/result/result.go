// Package result aggregates completed comparisons into the run's final,
// immutable artifact handed to reporting.
package result

import (
	"sort"
	"time"

	"github.com/veridex/crosscheck/internal/cluster"
	"github.com/veridex/crosscheck/internal/compare"
	"github.com/veridex/crosscheck/internal/options"
	"github.com/veridex/crosscheck/internal/submission"
)

// Result holds the full comparison list, the clustering derived from it,
// and a snapshot of the effective run options. Built once; the capped view
// is a slice of the sorted list, never a mutation of it.
type Result struct {
	set         *submission.Set
	comparisons []*compare.Comparison
	clusters    []cluster.Cluster
	duration    time.Duration
	opts        options.Options
}

// New sorts the comparisons by similarity (descending, pair name as the
// deterministic tie-break) and assembles the result. The aggregator accepts
// comparisons in any completion order.
func New(set *submission.Set, comparisons []*compare.Comparison, clusters []cluster.Cluster,
	duration time.Duration, opts options.Options) *Result {
	sorted := make([]*compare.Comparison, len(comparisons))
	copy(sorted, comparisons)
	sort.Slice(sorted, func(i, j int) bool {
		si, sj := sorted[i].Similarity(), sorted[j].Similarity()
		if si != sj {
			return si > sj
		}
		return sorted[i].PairName() < sorted[j].PairName()
	})
	return &Result{
		set:         set,
		comparisons: sorted,
		clusters:    clusters,
		duration:    duration,
		opts:        opts,
	}
}

// Comparisons returns the full uncapped list, ordered by similarity.
// Clustering and counting always use this list.
func (r *Result) Comparisons() []*compare.Comparison {
	return r.comparisons
}

// TopComparisons returns the reporting view: at most n comparisons from the
// top of the ordered list. n <= 0 means unbounded. The underlying list is
// not mutated.
func (r *Result) TopComparisons(n int) []*compare.Comparison {
	if n <= 0 || n >= len(r.comparisons) {
		return r.comparisons
	}
	return r.comparisons[:n]
}

// NumberOfSubmissions is |new| + |old| after dedup and basecode removal.
func (r *Result) NumberOfSubmissions() int {
	return r.set.NumberOfSubmissions()
}

// SubmissionSet exposes the collector output backing this result.
func (r *Result) SubmissionSet() *submission.Set {
	return r.set
}

// Clusters returns the clustering computed over the full comparison set.
func (r *Result) Clusters() []cluster.Cluster {
	return r.clusters
}

// FailedSubmissions lists candidates dropped by tokenization failures.
func (r *Result) FailedSubmissions() []submission.Failure {
	return r.set.Failed
}

// Duration is the wall-clock time of the run.
func (r *Result) Duration() time.Duration {
	return r.duration
}

// Options is the snapshot of the effective run configuration.
func (r *Result) Options() options.Options {
	return r.opts
}
