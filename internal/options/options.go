// Package options holds the effective run configuration consumed by the
// pipeline. Loading (flags, config file, environment) happens in the CLI;
// the core packages only ever see a validated Options value.
package options

import (
	"fmt"
	"runtime"
)

// Options is the immutable snapshot of one run's configuration. It is
// threaded through the pipeline and recorded on the result.
type Options struct {
	// NewDirectories are the root directories whose immediate child
	// directories form the new submission group. At least one is required.
	NewDirectories []string

	// OldDirectories optionally contribute a fixed historical baseline.
	// Old submissions are compared against new ones but never against
	// each other.
	OldDirectories []string

	// BaseCodeDirectory optionally names the shared template handed to all
	// participants. Its matches never count toward similarity.
	BaseCodeDirectory string

	// Language selects the registered token frontend.
	Language string

	// MinimumTokenMatch is the minimum common run length (in tokens) the
	// tiling algorithm reports.
	MinimumTokenMatch int

	// MaximumNumberOfComparisons caps the reported comparison list.
	// Zero or negative means unbounded. Clustering is never capped.
	MaximumNumberOfComparisons int

	// ClusteringThreshold is the minimum average similarity for an edge in
	// the cluster graph, in [0,1].
	ClusteringThreshold float64

	// ExcludeFile optionally names a gitignore-syntax file of path
	// patterns to skip while collecting submission files.
	ExcludeFile string

	// Workers bounds the matching worker pool. Zero means NumCPU.
	Workers int
}

// Default returns the options used when nothing is configured.
func Default() Options {
	return Options{
		Language:            "text",
		MinimumTokenMatch:   9,
		ClusteringThreshold: 0.85,
	}
}

// EffectiveWorkers resolves the worker count.
func (o Options) EffectiveWorkers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// Validate checks option ranges. All violations are configuration errors.
func (o Options) Validate() error {
	if len(o.NewDirectories) == 0 {
		return &ConfigError{Reason: "at least one new root directory is required"}
	}
	if o.MinimumTokenMatch < 1 {
		return &ConfigError{Reason: fmt.Sprintf("minimum token match must be positive, got %d", o.MinimumTokenMatch)}
	}
	if o.ClusteringThreshold < 0 || o.ClusteringThreshold > 1 {
		return &ConfigError{Reason: fmt.Sprintf("clustering threshold must be in [0,1], got %g", o.ClusteringThreshold)}
	}
	if o.Workers < 0 {
		return &ConfigError{Reason: fmt.Sprintf("workers must not be negative, got %d", o.Workers)}
	}
	return nil
}
