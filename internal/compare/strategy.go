// Package compare enumerates submission pairs and runs the token tiling
// that turns each pair into a comparison with similarity metrics.
package compare

import (
	"github.com/veridex/crosscheck/internal/submission"
)

// Pair is one unordered comparison job.
type Pair struct {
	A, B *submission.Submission
}

// Pairs builds the static job list for disjoint new and old groups:
// all unordered pairs within new, plus every new x old pair. Old
// submissions form a fixed historical baseline and are never compared
// against each other. With an empty old group this is the classic
// all-pairs comparison.
func Pairs(newSubs, oldSubs []*submission.Submission) []Pair {
	n := len(newSubs)
	pairs := make([]Pair, 0, n*(n-1)/2+n*len(oldSubs))
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, Pair{A: newSubs[i], B: newSubs[j]})
		}
	}
	for _, a := range newSubs {
		for _, b := range oldSubs {
			pairs = append(pairs, Pair{A: a, B: b})
		}
	}
	return pairs
}
