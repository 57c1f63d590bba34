// Package report turns a run result into its downstream artifacts: themed
// console output, a markdown digest, and a JSON overview document.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/veridex/crosscheck/internal/result"
)

// Theme defines the color scheme for console output.
type Theme struct {
	Score    lipgloss.Style
	Pair     lipgloss.Style
	Location lipgloss.Style
	Summary  lipgloss.Style
	Warn     lipgloss.Style
	Dim      lipgloss.Style
}

// DefaultTheme is the default color scheme.
var DefaultTheme = Theme{
	Score:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
	Pair:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	Location: lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
	Summary:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82")),
	Warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// Console writes the human-readable run report.
type Console struct {
	Out   io.Writer
	Theme Theme
}

// PrintComparisons lists the top comparisons with their metrics.
func (c *Console) PrintComparisons(r *result.Result) {
	top := r.TopComparisons(r.Options().MaximumNumberOfComparisons)
	fmt.Fprintf(c.Out, "Found %s comparisons (showing %d)\n\n",
		c.Theme.Summary.Render(fmt.Sprintf("%d", len(r.Comparisons()))), len(top))

	for _, comparison := range top {
		fmt.Fprintf(c.Out, "%s %s %s %s\n",
			c.Theme.Score.Render(fmt.Sprintf("%5.1f%%", comparison.Similarity()*100)),
			c.Theme.Pair.Render(comparison.PairName()),
			c.Theme.Dim.Render(fmt.Sprintf("max %.1f%%", comparison.MaximalSimilarity()*100)),
			c.Theme.Dim.Render(fmt.Sprintf("%d matched tokens in %d runs",
				comparison.MatchedTokens(), len(comparison.Matches))))
	}
}

// PrintClusters lists the clusters with their members and strength.
func (c *Console) PrintClusters(r *result.Result) {
	clusters := r.Clusters()
	if len(clusters) == 0 {
		fmt.Fprintf(c.Out, "\n%s\n", c.Theme.Dim.Render("No clusters above threshold."))
		return
	}
	fmt.Fprintf(c.Out, "\n%s\n", c.Theme.Summary.Render("Clusters:"))
	for i, cl := range clusters {
		fmt.Fprintf(c.Out, "  %s %s %s\n",
			c.Theme.Location.Render(fmt.Sprintf("#%d", i+1)),
			c.Theme.Score.Render(fmt.Sprintf("%.1f%%", cl.Strength*100)),
			c.Theme.Pair.Render(strings.Join(cl.Members, ", ")))
	}
}

// PrintFailures lists submissions dropped by tokenization failures.
func (c *Console) PrintFailures(r *result.Result) {
	failed := r.FailedSubmissions()
	if len(failed) == 0 {
		return
	}
	fmt.Fprintf(c.Out, "\n%s\n", c.Theme.Warn.Render(fmt.Sprintf("%d submissions failed:", len(failed))))
	for _, f := range failed {
		fmt.Fprintf(c.Out, "  %s %s\n",
			c.Theme.Pair.Render(f.Name),
			c.Theme.Dim.Render(f.Err.Error()))
	}
}

// PrintSummary writes the final one-line totals.
func (c *Console) PrintSummary(r *result.Result) {
	fmt.Fprintf(c.Out, "\nTotal: %s submissions, %s comparisons, %s clusters in %s\n",
		c.Theme.Summary.Render(fmt.Sprintf("%d", r.NumberOfSubmissions())),
		c.Theme.Summary.Render(fmt.Sprintf("%d", len(r.Comparisons()))),
		c.Theme.Summary.Render(fmt.Sprintf("%d", len(r.Clusters()))),
		c.Theme.Summary.Render(r.Duration().Round(time.Millisecond).String()))
}
