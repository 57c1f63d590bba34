// Package submission builds the comparable units of a run: one submission
// per immediate child directory of each configured root. The collector owns
// all submissions after construction; everything downstream reads them.
package submission

import (
	"github.com/veridex/crosscheck/internal/token"
)

// Submission is one participant's set of source files treated as a single
// comparable unit. Identity is the canonical root path, not object
// reference; that is what makes dedup across overlapping root lists work.
type Submission struct {
	// Name is the submission's directory name.
	Name string

	// Root is the canonical absolute path of the submission directory.
	Root string

	// Files are the tokenized source files, sorted by path.
	Files []string

	// Tokens is the concatenated token sequence over Files.
	Tokens token.Sequence

	// IsBasecode marks the shared template submission.
	IsBasecode bool
}

// TokenCount returns the length of the submission's token sequence.
func (s *Submission) TokenCount() int {
	return s.Tokens.Len()
}

// Failure records a candidate directory whose tokenization failed. Failed
// candidates are excluded from all sets but reported with the result.
type Failure struct {
	Name string
	Root string
	Err  error
}

// Set is the collector's output: the deduplicated new and old groups
// (disjoint by construction) plus the at-most-one basecode submission.
type Set struct {
	New      []*Submission
	Old      []*Submission
	Basecode *Submission
	Failed   []Failure
}

// NumberOfSubmissions reports |New| + |Old| after dedup and basecode
// removal.
func (s *Set) NumberOfSubmissions() int {
	return len(s.New) + len(s.Old)
}
