package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridex/crosscheck/internal/cluster"
	"github.com/veridex/crosscheck/internal/compare"
	"github.com/veridex/crosscheck/internal/options"
	"github.com/veridex/crosscheck/internal/result"
	"github.com/veridex/crosscheck/internal/submission"
	"github.com/veridex/crosscheck/internal/token"
)

// fixtureResult builds a small result with two comparisons, one cluster and
// one failed submission.
func fixtureResult(maxComparisons int) *result.Result {
	seq := func(name string, n int) token.Sequence {
		out := make(token.Sequence, n)
		for i := range out {
			out[i] = token.Token{Type: "word", File: "/subs/" + name + "/main.txt", Line: i + 1, Column: 1, Length: 1}
		}
		return out
	}
	alice := &submission.Submission{Name: "alice", Tokens: seq("alice", 100)}
	bob := &submission.Submission{Name: "bob", Tokens: seq("bob", 100)}
	carol := &submission.Submission{Name: "carol", Tokens: seq("carol", 100)}

	comparisons := []*compare.Comparison{
		{A: alice, B: bob, Matches: []compare.Match{{StartA: 0, StartB: 0, Length: 90}}},
		{A: alice, B: carol, Matches: []compare.Match{{StartA: 10, StartB: 20, Length: 30}}},
	}
	clusters := []cluster.Cluster{{Members: []string{"alice", "bob"}, Strength: 0.9}}
	set := &submission.Set{
		New:    []*submission.Submission{alice, bob, carol},
		Failed: []submission.Failure{{Name: "dave", Err: errors.New("no text files")}},
	}

	opts := options.Default()
	opts.MaximumNumberOfComparisons = maxComparisons
	return result.New(set, comparisons, clusters, 1500*time.Millisecond, opts)
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	console := &Console{Out: &buf, Theme: DefaultTheme}
	r := fixtureResult(0)

	console.PrintComparisons(r)
	console.PrintClusters(r)
	console.PrintFailures(r)
	console.PrintSummary(r)

	out := buf.String()
	assert.Contains(t, out, "alice-bob")
	assert.Contains(t, out, "alice-carol")
	assert.Contains(t, out, "90.0%")
	assert.Contains(t, out, "Clusters:")
	assert.Contains(t, out, "alice, bob")
	assert.Contains(t, out, "dave")
	assert.Contains(t, out, "no text files")
	assert.Contains(t, out, "3 submissions")
}

func TestConsoleHonorsComparisonCap(t *testing.T) {
	var buf bytes.Buffer
	console := &Console{Out: &buf, Theme: DefaultTheme}

	console.PrintComparisons(fixtureResult(1))

	out := buf.String()
	assert.Contains(t, out, "alice-bob", "highest similarity survives the cap")
	assert.NotContains(t, out, "alice-carol")
}

func TestBuildMarkdown(t *testing.T) {
	md := BuildMarkdown(fixtureResult(0))

	assert.Contains(t, md, "# Similarity Report")
	assert.Contains(t, md, "## 1. alice-bob")
	assert.Contains(t, md, "## 2. alice-carol")
	assert.Contains(t, md, "90 tokens")
	assert.Contains(t, md, "main.txt:11", "match location uses file and line of its first token")
	assert.Contains(t, md, "## Clusters")
}

func TestBuildOverview(t *testing.T) {
	overview := BuildOverview(fixtureResult(0))

	assert.Equal(t, 3, overview.Submissions)
	assert.Equal(t, int64(1500), overview.DurationMS)
	assert.Equal(t, "text", overview.Options.Language)
	assert.Equal(t, 9, overview.Options.MinimumTokenMatch)

	require.Len(t, overview.Comparisons, 2)
	first := overview.Comparisons[0]
	assert.Equal(t, "alice", first.FirstSubmission)
	assert.Equal(t, "bob", first.SecondSubmission)
	assert.InDelta(t, 0.9, first.AverageSimilarity, 1e-9)
	assert.Equal(t, 90, first.MatchedTokens)
	require.Len(t, first.Matches, 1)
	assert.Equal(t, 90, first.Matches[0].Length)

	require.Len(t, overview.Clusters, 1)
	assert.Equal(t, []string{"alice", "bob"}, overview.Clusters[0].Members)
	require.Len(t, overview.Failed, 1)
	assert.Equal(t, "dave", overview.Failed[0].Name)
}

func TestBuildOverviewCapsComparisonsButNotClusters(t *testing.T) {
	overview := BuildOverview(fixtureResult(1))

	assert.Len(t, overview.Comparisons, 1)
	assert.Len(t, overview.Clusters, 1)
}

func TestWriteOverview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "overview.json")

	require.NoError(t, WriteOverview(fixtureResult(0), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.EqualValues(t, 3, decoded["total_submissions"])
	assert.NotEmpty(t, decoded["comparisons"])
}
