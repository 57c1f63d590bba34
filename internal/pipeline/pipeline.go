// Package pipeline wires the stages together: collect submissions, build
// the job list, run the matching engine, aggregate, cluster.
package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/veridex/crosscheck/internal/cluster"
	"github.com/veridex/crosscheck/internal/compare"
	"github.com/veridex/crosscheck/internal/language"
	"github.com/veridex/crosscheck/internal/options"
	"github.com/veridex/crosscheck/internal/result"
	"github.com/veridex/crosscheck/internal/submission"
)

// Run executes one full detection run. Configuration errors abort before
// any comparison starts; submission failures are carried on the result.
func Run(ctx context.Context, opts options.Options, log zerolog.Logger) (*result.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	frontend, err := language.ForName(opts.Language)
	if err != nil {
		return nil, &options.ConfigError{Reason: err.Error()}
	}

	start := time.Now()

	set, err := submission.NewCollector(opts, frontend, log).Collect(ctx)
	if err != nil {
		return nil, err
	}

	pairs := compare.Pairs(set.New, set.Old)
	log.Info().
		Int("submissions", set.NumberOfSubmissions()).
		Int("pairs", len(pairs)).
		Msg("comparison jobs built")

	engine := &compare.Engine{
		MinimumTokenMatch: opts.MinimumTokenMatch,
		Workers:           opts.EffectiveWorkers(),
		Log:               log,
	}
	comparisons := engine.Run(ctx, pairs, set.Basecode)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clusters := cluster.Build(comparisons, opts.ClusteringThreshold)
	log.Info().
		Int("comparisons", len(comparisons)).
		Int("clusters", len(clusters)).
		Dur("elapsed", time.Since(start)).
		Msg("run complete")

	return result.New(set, comparisons, clusters, time.Since(start), opts), nil
}
