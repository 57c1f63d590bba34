package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/veridex/crosscheck/internal/result"
	"github.com/veridex/crosscheck/internal/token"
)

// BuildMarkdown renders the top comparisons as a markdown digest with the
// matched regions of each pair.
func BuildMarkdown(r *result.Result) string {
	var sb strings.Builder

	sb.WriteString("# Similarity Report\n\n")
	sb.WriteString(fmt.Sprintf("%d submissions, %d comparisons, %d clusters.\n\n",
		r.NumberOfSubmissions(), len(r.Comparisons()), len(r.Clusters())))

	for i, comparison := range r.TopComparisons(r.Options().MaximumNumberOfComparisons) {
		sb.WriteString(fmt.Sprintf("## %d. %s\n\n", i+1, comparison.PairName()))
		sb.WriteString(fmt.Sprintf("**Average:** %.1f%%  **Maximum:** %.1f%%  **Matched tokens:** %d\n\n",
			comparison.Similarity()*100, comparison.MaximalSimilarity()*100, comparison.MatchedTokens()))

		for _, m := range comparison.Matches {
			locA := location(comparison.A.Tokens, m.StartA)
			locB := location(comparison.B.Tokens, m.StartB)
			sb.WriteString(fmt.Sprintf("- %d tokens: `%s` ↔ `%s`\n", m.Length, locA, locB))
		}
		sb.WriteString("\n")
	}

	if clusters := r.Clusters(); len(clusters) > 0 {
		sb.WriteString("## Clusters\n\n")
		for _, cl := range clusters {
			sb.WriteString(fmt.Sprintf("- **%.1f%%** %s\n", cl.Strength*100, strings.Join(cl.Members, ", ")))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Render renders the markdown digest for the terminal.
func Render(markdown string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return out, nil
}

// location formats the source position of a match's first token.
func location(seq token.Sequence, index int) string {
	if index < 0 || index >= seq.Len() {
		return "?"
	}
	t := seq[index]
	return fmt.Sprintf("%s:%d", filepath.Base(t.File), t.Line)
}
