package submission

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	ignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/veridex/crosscheck/internal/language"
	"github.com/veridex/crosscheck/internal/options"
	"github.com/veridex/crosscheck/internal/token"
)

// Directories that never contain submission sources.
var skipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	"__pycache__":  {},
	".venv":        {},
	"venv":         {},
}

// Collector scans the configured root directories and produces the
// submission set. It runs exactly once per pipeline execution.
type Collector struct {
	opts     options.Options
	frontend language.Frontend
	log      zerolog.Logger
}

// NewCollector returns a collector for the given run options.
func NewCollector(opts options.Options, frontend language.Frontend, log zerolog.Logger) *Collector {
	return &Collector{opts: opts, frontend: frontend, log: log}
}

// candidate is an enumerated submission directory before tokenization.
type candidate struct {
	name string
	root string // canonical
}

// Collect enumerates, deduplicates and tokenizes all submissions.
// Configuration problems (missing roots, unreadable basecode, duplicate
// submission names within one group) abort with *options.ConfigError;
// per-candidate tokenization failures are accumulated on the set instead.
func (c *Collector) Collect(ctx context.Context) (*Set, error) {
	var excludes *ignore.GitIgnore
	if c.opts.ExcludeFile != "" {
		var err error
		excludes, err = ignore.CompileIgnoreFile(c.opts.ExcludeFile)
		if err != nil {
			return nil, &options.ConfigError{Path: c.opts.ExcludeFile, Reason: fmt.Sprintf("cannot read exclude file: %v", err)}
		}
	}

	baseRoot := ""
	if c.opts.BaseCodeDirectory != "" {
		canonical, err := canonicalPath(c.opts.BaseCodeDirectory)
		if err != nil {
			return nil, &options.ConfigError{Path: c.opts.BaseCodeDirectory, Reason: err.Error()}
		}
		info, err := os.Stat(canonical)
		if err != nil || !info.IsDir() {
			return nil, &options.ConfigError{Path: c.opts.BaseCodeDirectory, Reason: "basecode path is not a readable directory"}
		}
		baseRoot = canonical
	}

	newCands, err := c.enumerate(c.opts.NewDirectories)
	if err != nil {
		return nil, err
	}
	oldCands, err := c.enumerate(c.opts.OldDirectories)
	if err != nil {
		return nil, err
	}

	// A directory enumerated in both groups counts once, in New. This is
	// what makes an overlapping new/old run equal to a single-group run.
	inNew := make(map[string]struct{}, len(newCands))
	for _, cand := range newCands {
		inNew[cand.root] = struct{}{}
	}
	deduped := oldCands[:0]
	for _, cand := range oldCands {
		if _, ok := inNew[cand.root]; ok {
			c.log.Debug().Str("submission", cand.name).Msg("old submission also in new group, counting once")
			continue
		}
		deduped = append(deduped, cand)
	}
	oldCands = deduped

	// A basecode that lives inside a root must not be compared as a
	// submission; drop it from whichever group enumerated it.
	if baseRoot != "" {
		newCands = dropRoot(newCands, baseRoot)
		oldCands = dropRoot(oldCands, baseRoot)
	}

	// Comparisons and clusters key submissions by name, so a name used by
	// two distinct directories across the groups is as ambiguous as a
	// collision within one group. Overlap collapse and basecode removal ran
	// first: a surviving old candidate sharing a new name is a real clash.
	newNames := make(map[string]string, len(newCands))
	for _, cand := range newCands {
		newNames[cand.name] = cand.root
	}
	for _, cand := range oldCands {
		if prev, ok := newNames[cand.name]; ok {
			return nil, &options.ConfigError{
				Path:   cand.root,
				Reason: fmt.Sprintf("submission name %q already used by %s", cand.name, prev),
			}
		}
	}

	set := &Set{}
	var mu sync.Mutex

	newSubs := make([]*Submission, len(newCands))
	oldSubs := make([]*Submission, len(oldCands))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(c.opts.EffectiveWorkers())
	build := func(cand candidate, out []*Submission, i int) {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sub, err := c.buildSubmission(cand, excludes, false)
			if err != nil {
				c.log.Warn().Str("submission", cand.name).Err(err).Msg("submission dropped")
				mu.Lock()
				set.Failed = append(set.Failed, Failure{Name: cand.name, Root: cand.root, Err: err})
				mu.Unlock()
				return nil
			}
			out[i] = sub
			return nil
		})
	}
	for i, cand := range newCands {
		build(cand, newSubs, i)
	}
	for i, cand := range oldCands {
		build(cand, oldSubs, i)
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	for _, sub := range newSubs {
		if sub != nil {
			set.New = append(set.New, sub)
		}
	}
	for _, sub := range oldSubs {
		if sub != nil {
			set.Old = append(set.Old, sub)
		}
	}
	sort.Slice(set.Failed, func(i, j int) bool { return set.Failed[i].Name < set.Failed[j].Name })

	if baseRoot != "" {
		base, err := c.buildSubmission(candidate{name: filepath.Base(baseRoot), root: baseRoot}, excludes, true)
		if err != nil {
			// An unreadable basecode is a configuration problem, not a
			// droppable submission.
			return nil, &options.ConfigError{Path: baseRoot, Reason: fmt.Sprintf("cannot tokenize basecode: %v", err)}
		}
		set.Basecode = base
	}

	c.log.Info().
		Int("new", len(set.New)).
		Int("old", len(set.Old)).
		Int("failed", len(set.Failed)).
		Bool("basecode", set.Basecode != nil).
		Msg("submissions collected")
	return set, nil
}

// enumerate unions the immediate child directories of all roots in one
// group. A submission name appearing under two different roots of the same
// group is ambiguous and rejected.
func (c *Collector) enumerate(roots []string) ([]candidate, error) {
	var cands []candidate
	seenPath := make(map[string]struct{})
	seenName := make(map[string]string) // name -> canonical root

	for _, root := range roots {
		canonical, err := canonicalPath(root)
		if err != nil {
			return nil, &options.ConfigError{Path: root, Reason: err.Error()}
		}
		entries, err := os.ReadDir(canonical)
		if err != nil {
			return nil, &options.ConfigError{Path: root, Reason: fmt.Sprintf("cannot read root directory: %v", err)}
		}
		found := 0
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if _, skip := skipDirs[entry.Name()]; skip {
				continue
			}
			dir := filepath.Join(canonical, entry.Name())
			if _, dup := seenPath[dir]; dup {
				continue // same root listed twice
			}
			if prev, dup := seenName[entry.Name()]; dup && prev != dir {
				return nil, &options.ConfigError{
					Path:   dir,
					Reason: fmt.Sprintf("submission name %q already used by %s", entry.Name(), prev),
				}
			}
			seenPath[dir] = struct{}{}
			seenName[entry.Name()] = dir
			cands = append(cands, candidate{name: entry.Name(), root: dir})
			found++
		}
		if found == 0 {
			return nil, &options.ConfigError{Path: root, Reason: "root directory contains no submission directories"}
		}
	}
	return cands, nil
}

// buildSubmission lists and tokenizes the candidate's source files.
func (c *Collector) buildSubmission(cand candidate, excludes *ignore.GitIgnore, isBasecode bool) (*Submission, error) {
	var files []string
	err := filepath.WalkDir(cand.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(cand.root, path)
		if err != nil {
			return err
		}
		if excludes != nil && excludes.MatchesPath(rel) {
			return nil
		}
		if !language.Accepts(c.frontend, strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", cand.root, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files in %s", c.frontend.Name(), cand.root)
	}
	sort.Strings(files)

	var tokens token.Sequence
	for _, file := range files {
		seq, err := c.frontend.Tokenize(file)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, seq...)
	}

	return &Submission{
		Name:       cand.name,
		Root:       cand.root,
		Files:      files,
		Tokens:     tokens,
		IsBasecode: isBasecode,
	}, nil
}

func dropRoot(cands []candidate, root string) []candidate {
	kept := cands[:0]
	for _, cand := range cands {
		if cand.root != root {
			kept = append(kept, cand)
		}
	}
	return kept
}

// canonicalPath normalizes a path so that identity comparisons between
// overlapping root lists work regardless of how the paths were spelled.
func canonicalPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %v", p, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return filepath.Clean(abs), nil
}
