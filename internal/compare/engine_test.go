package compare

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridex/crosscheck/internal/submission"
	"github.com/veridex/crosscheck/internal/token"
)

// sub builds a submission with one token per rune of content.
func sub(name, content string) *submission.Submission {
	seq := make(token.Sequence, 0, len(content))
	for i, r := range content {
		seq = append(seq, token.Token{Type: token.Type(r), File: name + "/main", Line: i + 1, Column: 1, Length: 1})
	}
	return &submission.Submission{
		Name:   name,
		Root:   "/submissions/" + name,
		Files:  []string{name + "/main"},
		Tokens: seq,
	}
}

func testEngine(workers int) *Engine {
	return &Engine{MinimumTokenMatch: 3, Workers: workers, Log: zerolog.Nop()}
}

func TestEngineComparesEveryPair(t *testing.T) {
	subs := []*submission.Submission{
		sub("alpha", "abcdefgh"),
		sub("beta", "abcdXYZW"),
		sub("gamma", "QRSTUVWX"),
	}

	comparisons := testEngine(4).Run(context.Background(), Pairs(subs, nil), nil)

	require.Len(t, comparisons, 3)
	names := make(map[string]bool)
	for _, c := range comparisons {
		names[c.PairName()] = true
	}
	assert.True(t, names["alpha-beta"])
	assert.True(t, names["alpha-gamma"])
	assert.True(t, names["beta-gamma"])
}

func TestEngineSimilarityMetrics(t *testing.T) {
	a := sub("a", "abcdefgh")   // 8 tokens
	b := sub("b", "abcdXYZWPQ") // 10 tokens, shares abcd

	comparisons := testEngine(1).Run(context.Background(), Pairs([]*submission.Submission{a, b}, nil), nil)

	require.Len(t, comparisons, 1)
	c := comparisons[0]
	assert.Equal(t, 4, c.MatchedTokens())
	assert.InDelta(t, 0.5, c.SimilarityOfA(), 1e-9)
	assert.InDelta(t, 0.4, c.SimilarityOfB(), 1e-9)
	assert.InDelta(t, 0.45, c.Similarity(), 1e-9)
	assert.InDelta(t, 0.5, c.MaximalSimilarity(), 1e-9)
}

func TestEngineSymmetry(t *testing.T) {
	a := sub("a", "abcdefghij")
	b := sub("b", "XYabcdeQRS")

	forward := testEngine(1).Run(context.Background(), []Pair{{A: a, B: b}}, nil)
	backward := testEngine(1).Run(context.Background(), []Pair{{A: b, B: a}}, nil)

	require.Len(t, forward, 1)
	require.Len(t, backward, 1)
	assert.Equal(t, forward[0].MatchedTokens(), backward[0].MatchedTokens())
	assert.InDelta(t, forward[0].Similarity(), backward[0].Similarity(), 1e-9)
	assert.InDelta(t, forward[0].MaximalSimilarity(), backward[0].MaximalSimilarity(), 1e-9)
	assert.InDelta(t, forward[0].SimilarityOfA(), backward[0].SimilarityOfB(), 1e-9)
	assert.InDelta(t, forward[0].SimilarityOfB(), backward[0].SimilarityOfA(), 1e-9)
}

func TestEngineBasecodeSubtraction(t *testing.T) {
	// Both submissions carry the distributed skeleton "mnopqr" plus a
	// genuinely shared block "abcd".
	a := sub("a", "mnopqrabcd")
	b := sub("b", "mnopqrabcdXY")
	base := sub("base", "mnopqr")
	base.IsBasecode = true

	pairs := Pairs([]*submission.Submission{a, b}, nil)

	without := testEngine(2).Run(context.Background(), pairs, nil)
	require.Len(t, without, 1)
	assert.Equal(t, 10, without[0].MatchedTokens())

	with := testEngine(2).Run(context.Background(), pairs, base)
	require.Len(t, with, 1)
	assert.Equal(t, 4, with[0].MatchedTokens(), "basecode block must not count toward similarity")
	require.Len(t, with[0].Matches, 1)
	assert.Equal(t, Match{StartA: 6, StartB: 6, Length: 4}, with[0].Matches[0])
}

func TestEngineEmptySequencesYieldZeroSimilarity(t *testing.T) {
	a := sub("a", "")
	b := sub("b", "abcdef")

	comparisons := testEngine(1).Run(context.Background(), []Pair{{A: a, B: b}}, nil)

	require.Len(t, comparisons, 1)
	assert.Empty(t, comparisons[0].Matches)
	assert.Zero(t, comparisons[0].Similarity())
	assert.Zero(t, comparisons[0].MaximalSimilarity())
}

func TestEngineCanceledContextStopsEarly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	subs := []*submission.Submission{sub("a", "abcdef"), sub("b", "abcdef")}
	comparisons := testEngine(1).Run(ctx, Pairs(subs, nil), nil)

	assert.Empty(t, comparisons)
}
