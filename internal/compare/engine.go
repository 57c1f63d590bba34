package compare

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/veridex/crosscheck/internal/submission"
)

// Engine executes the static job list over a worker pool. Jobs are
// independent: each reads two immutable token sequences plus the read-only
// basecode masks, so no locking happens during matching.
type Engine struct {
	MinimumTokenMatch int
	Workers           int
	Log               zerolog.Logger
}

// Run compares every pair and returns one comparison per job. Completion
// order is unconstrained; results land in a slice indexed by job, so the
// returned order matches the job list regardless of scheduling. A canceled
// context stops workers early and returns the comparisons finished so far.
func (e *Engine) Run(ctx context.Context, pairs []Pair, basecode *submission.Submission) []*Comparison {
	if len(pairs) == 0 {
		return nil
	}

	baseMasks := e.baseMasks(pairs, basecode)

	workers := e.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(pairs) {
		workers = len(pairs)
	}
	e.Log.Info().Int("comparisons", len(pairs)).Int("workers", workers).Msg("matching started")

	results := make([]*Comparison, len(pairs))
	work := make(chan int, len(pairs))
	for i := range pairs {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				if ctx.Err() != nil {
					return
				}
				results[idx] = e.compare(pairs[idx], baseMasks)
			}
		}()
	}
	wg.Wait()

	completed := results[:0]
	for _, c := range results {
		if c != nil {
			completed = append(completed, c)
		}
	}
	e.Log.Info().Int("completed", len(completed)).Msg("matching finished")
	return completed
}

// compare runs one job. The coverage masks are local to the job and start
// out as copies of the submissions' basecode masks, so basecode regions are
// already marked before tiling begins and never enter a match.
func (e *Engine) compare(pair Pair, baseMasks map[*submission.Submission][]bool) *Comparison {
	maskA := copyMask(baseMasks[pair.A], pair.A.TokenCount())
	maskB := copyMask(baseMasks[pair.B], pair.B.TokenCount())
	matches := Tiling(pair.A.Tokens.Types(), pair.B.Tokens.Types(), e.MinimumTokenMatch, maskA, maskB)
	return newComparison(pair.A, pair.B, matches)
}

// baseMasks marks each distinct submission's basecode-covered regions once,
// up front, so the per-job work stays read-only against shared state.
func (e *Engine) baseMasks(pairs []Pair, basecode *submission.Submission) map[*submission.Submission][]bool {
	masks := make(map[*submission.Submission][]bool)
	if basecode == nil || basecode.TokenCount() == 0 {
		return masks
	}

	distinct := make([]*submission.Submission, 0)
	for _, pair := range pairs {
		for _, sub := range []*submission.Submission{pair.A, pair.B} {
			if _, ok := masks[sub]; !ok {
				masks[sub] = nil
				distinct = append(distinct, sub)
			}
		}
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	work := make(chan *submission.Submission, len(distinct))
	for _, sub := range distinct {
		work <- sub
	}
	close(work)

	workers := e.Workers
	if workers < 1 {
		workers = 1
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sub := range work {
				mask := BaseCodeMask(sub.Tokens, basecode.Tokens, e.MinimumTokenMatch)
				mu.Lock()
				masks[sub] = mask
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	e.Log.Debug().Int("submissions", len(distinct)).Str("basecode", basecode.Name).Msg("basecode regions marked")
	return masks
}

func copyMask(mask []bool, length int) []bool {
	out := make([]bool, length)
	copy(out, mask)
	return out
}
