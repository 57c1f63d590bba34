package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridex/crosscheck/internal/token"
)

// types turns a string into a token-type slice, one type per rune.
func types(s string) []token.Type {
	out := make([]token.Type, 0, len(s))
	for _, r := range s {
		out = append(out, token.Type(r))
	}
	return out
}

func TestTilingFindsLongestRun(t *testing.T) {
	a := types("abcabcd")
	b := types("xabcdy")

	matches := Tiling(a, b, 3, nil, nil)

	require.Len(t, matches, 1)
	assert.Equal(t, Match{StartA: 3, StartB: 1, Length: 4}, matches[0])
}

func TestTilingRespectsMinimumLength(t *testing.T) {
	a := types("abxy")
	b := types("abpq")

	matches := Tiling(a, b, 3, nil, nil)
	assert.Empty(t, matches)

	matches = Tiling(a, b, 2, nil, nil)
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Length)
}

func TestTilingMatchesNeverOverlap(t *testing.T) {
	a := types("abababab")
	b := types("abab")

	matches := Tiling(a, b, 2, nil, nil)

	coveredA := make(map[int]bool)
	coveredB := make(map[int]bool)
	for _, m := range matches {
		for k := 0; k < m.Length; k++ {
			assert.False(t, coveredA[m.StartA+k], "overlap on A at %d", m.StartA+k)
			assert.False(t, coveredB[m.StartB+k], "overlap on B at %d", m.StartB+k)
			coveredA[m.StartA+k] = true
			coveredB[m.StartB+k] = true
		}
		assert.GreaterOrEqual(t, m.Length, 2)
	}
}

func TestTilingIdenticalSequencesFullCoverage(t *testing.T) {
	a := types("abcdefgh")
	b := types("abcdefgh")

	matches := Tiling(a, b, 1, nil, nil)

	total := 0
	for _, m := range matches {
		total += m.Length
	}
	assert.Equal(t, len(a), total)
}

func TestTilingTieBreakPrefersLowestIndex(t *testing.T) {
	// Two disjoint common runs of equal length: the one starting earliest
	// in A must be extracted first.
	a := types("abXcd")
	b := types("abYcd")

	matches := Tiling(a, b, 2, nil, nil)

	require.Len(t, matches, 2)
	assert.Equal(t, Match{StartA: 0, StartB: 0, Length: 2}, matches[0])

	// Equal-length candidates at several B positions: lowest B start wins.
	a = types("ab")
	b = types("abab")
	matches = Tiling(a, b, 2, nil, nil)
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].StartB)
}

func TestTilingEmptyAndShortSequences(t *testing.T) {
	assert.Empty(t, Tiling(nil, nil, 3, nil, nil))
	assert.Empty(t, Tiling(types("ab"), nil, 3, nil, nil))
	assert.Empty(t, Tiling(types("ab"), types("ab"), 3, nil, nil), "threshold above both lengths yields no matches, not an error")
}

func TestTilingPreMarkedRegionsExcluded(t *testing.T) {
	a := types("abcdef")
	b := types("abcdef")

	markedA := make([]bool, len(a))
	markedB := make([]bool, len(b))
	markedA[0], markedA[1], markedA[2] = true, true, true

	matches := Tiling(a, b, 2, markedA, markedB)

	require.Len(t, matches, 1)
	assert.Equal(t, Match{StartA: 3, StartB: 3, Length: 3}, matches[0])
}

func TestBaseCodeMask(t *testing.T) {
	seq := seqOf("abcdXY")
	base := seqOf("abcd")

	mask := BaseCodeMask(seq, base, 3)

	require.Len(t, mask, 6)
	assert.Equal(t, []bool{true, true, true, true, false, false}, mask)
}

// seqOf builds a token sequence with one token per rune.
func seqOf(s string) token.Sequence {
	seq := make(token.Sequence, 0, len(s))
	for i, r := range s {
		seq = append(seq, token.Token{Type: token.Type(r), File: "x", Line: i + 1, Column: 1, Length: 1})
	}
	return seq
}
