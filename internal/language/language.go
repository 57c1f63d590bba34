// Package language provides the token sources that turn submission files
// into token sequences. Front ends are registered by per-language init
// functions and selected by name.
package language

import (
	"fmt"
	"sort"
	"strings"

	"github.com/veridex/crosscheck/internal/token"
)

// Frontend produces the token sequence for a single source file. A frontend
// must be deterministic for identical input. Implementations are safe for
// concurrent use; anything that is not goroutine-safe (such as a tree-sitter
// parser) is created per call.
type Frontend interface {
	Name() string

	// Extensions lists the file extensions this frontend accepts,
	// lowercase with leading dot. An empty list means any file.
	Extensions() []string

	Tokenize(path string) (token.Sequence, error)
}

var frontends = map[string]Frontend{}

// Register adds a frontend to the registry. Called from init functions.
func Register(f Frontend) {
	frontends[f.Name()] = f
}

// ForName returns the frontend registered under name.
func ForName(name string) (Frontend, error) {
	if f, ok := frontends[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("unknown language %q (supported: %s)", name, strings.Join(Names(), ", "))
}

// Names returns all registered frontend names, sorted.
func Names() []string {
	names := make([]string, 0, len(frontends))
	for name := range frontends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Accepts reports whether the frontend handles a file with the given
// extension (lowercase, leading dot).
func Accepts(f Frontend, ext string) bool {
	exts := f.Extensions()
	if len(exts) == 0 {
		return true
	}
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}
