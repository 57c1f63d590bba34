package compare

import (
	"sort"

	"github.com/veridex/crosscheck/internal/submission"
)

// Comparison is the outcome of matching one unordered submission pair.
// Immutable once produced by the engine.
type Comparison struct {
	A, B    *submission.Submission
	Matches []Match
}

func newComparison(a, b *submission.Submission, matches []Match) *Comparison {
	sort.Slice(matches, func(i, j int) bool { return matches[i].StartA < matches[j].StartA })
	return &Comparison{A: a, B: b, Matches: matches}
}

// MatchedTokens is the total number of matched tokens per side.
func (c *Comparison) MatchedTokens() int {
	sum := 0
	for _, m := range c.Matches {
		sum += m.Length
	}
	return sum
}

// SimilarityOfA is the fraction of A's tokens covered by matches.
func (c *Comparison) SimilarityOfA() float64 {
	return coverage(c.MatchedTokens(), c.A.TokenCount())
}

// SimilarityOfB is the fraction of B's tokens covered by matches.
func (c *Comparison) SimilarityOfB() float64 {
	return coverage(c.MatchedTokens(), c.B.TokenCount())
}

// Similarity is the mean of the two per-side coverage fractions.
func (c *Comparison) Similarity() float64 {
	return (c.SimilarityOfA() + c.SimilarityOfB()) / 2
}

// MaximalSimilarity is the larger of the two per-side coverage fractions.
// It flags pairs where one side is a near-subset of the other.
func (c *Comparison) MaximalSimilarity() float64 {
	simA, simB := c.SimilarityOfA(), c.SimilarityOfB()
	if simA > simB {
		return simA
	}
	return simB
}

// PairName is the deterministic display key "a-b" with the submission
// names in lexicographic order. Used as the ordering tie-break.
func (c *Comparison) PairName() string {
	if c.A.Name <= c.B.Name {
		return c.A.Name + "-" + c.B.Name
	}
	return c.B.Name + "-" + c.A.Name
}

func coverage(matched, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}
