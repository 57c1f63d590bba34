package language

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/veridex/crosscheck/internal/token"
)

// Token categories emitted by the text lexer.
const (
	typeWord   token.Type = "word"
	typeNumber token.Type = "number"
	typeString token.Type = "string"
)

// Default line-comment prefixes by file extension.
var commentPrefixes = map[string]string{
	// C-style
	".go": "//", ".c": "//", ".h": "//", ".cpp": "//", ".hpp": "//",
	".java": "//", ".js": "//", ".ts": "//", ".cs": "//", ".kt": "//",
	".scala": "//", ".rs": "//", ".swift": "//",
	// Hash-style
	".py": "#", ".rb": "#", ".sh": "#", ".pl": "#", ".r": "#",
	".yaml": "#", ".yml": "#", ".toml": "#",
	// Double-dash style
	".sql": "--", ".lua": "--", ".hs": "--",
}

// textFrontend is a grammar-free fallback lexer. It splits lines into
// words, numbers, string literals and punctuation. Unlike the tree-sitter
// front ends it cannot distinguish keywords from identifiers, so it matches
// more loosely; it exists so unsupported languages still get a comparison.
type textFrontend struct{}

func init() {
	Register(&textFrontend{})
}

func (f *textFrontend) Name() string         { return "text" }
func (f *textFrontend) Extensions() []string { return nil }

func (f *textFrontend) Tokenize(path string) (token.Sequence, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer file.Close()

	prefix := commentPrefixes[strings.ToLower(filepath.Ext(path))]

	var seq token.Sequence
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		seq = append(seq, lexLine(scanner.Text(), path, lineNumber, prefix)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return seq, nil
}

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

// lexLine tokenizes a single line. Line comments are dropped from the
// first occurrence of the comment prefix outside a string literal.
func lexLine(line, path string, lineNumber int, commentPrefix string) []token.Token {
	runes := []rune(line)
	var out []token.Token

	emit := func(t token.Type, start, end int) {
		out = append(out, token.Token{
			Type:   t,
			File:   path,
			Line:   lineNumber,
			Column: start + 1,
			Length: end - start,
		})
	}

	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == ' ' || r == '\t':
			i++
		case r == '"' || r == '\'' || r == '`':
			// String literal: consume to the matching quote, honoring
			// backslash escapes. An unterminated literal runs to EOL.
			quote := r
			start := i
			i++
			for i < len(runes) {
				if runes[i] == '\\' && i+1 < len(runes) {
					i += 2
					continue
				}
				if runes[i] == quote {
					i++
					break
				}
				i++
			}
			emit(typeString, start, i)
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			emit(typeWord, start, i)
		case unicode.IsDigit(r):
			start := i
			i++
			if r == '0' && i < len(runes) && (runes[i] == 'x' || runes[i] == 'X') {
				// Hex literal: letters a-f only count after the 0x prefix.
				i++
				for i < len(runes) && isHexDigit(runes[i]) {
					i++
				}
			} else {
				for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
					i++
				}
			}
			emit(typeNumber, start, i)
		default:
			if commentPrefix != "" && strings.HasPrefix(string(runes[i:]), commentPrefix) {
				return out
			}
			// Punctuation keeps its own character as the type so that
			// structure (braces, operators) participates in matching.
			emit(token.Type(string(r)), i, i+1)
			i++
		}
	}
	return out
}
