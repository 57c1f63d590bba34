package language

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/veridex/crosscheck/internal/token"
)

// treeSitterFrontend tokenizes files by parsing them with a tree-sitter
// grammar and emitting one token per leaf node, typed by the node kind.
// Grammar node kinds are stable per language, so identifiers, literals and
// punctuation all map to structural categories independent of their text.
type treeSitterFrontend struct {
	name       string
	extensions []string
	lang       *sitter.Language
}

func (f *treeSitterFrontend) Name() string         { return f.name }
func (f *treeSitterFrontend) Extensions() []string { return f.extensions }

func (f *treeSitterFrontend) Tokenize(path string) (token.Sequence, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(source) == 0 {
		return nil, nil
	}

	// Each call gets its own parser; parsers are not goroutine-safe.
	parser := sitter.NewParser()
	parser.SetLanguage(f.lang)

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	var seq token.Sequence
	collectLeaves(tree.RootNode(), source, path, &seq)
	return seq, nil
}

// collectLeaves walks the syntax tree depth-first and appends one token per
// leaf node. Comments carry no structural signal and are dropped.
func collectLeaves(node *sitter.Node, source []byte, file string, out *token.Sequence) {
	count := int(node.ChildCount())
	if count == 0 {
		kind := node.Type()
		if strings.Contains(kind, "comment") {
			return
		}
		if node.StartByte() >= node.EndByte() {
			return
		}
		*out = append(*out, token.Token{
			Type:   token.Type(kind),
			File:   file,
			Line:   int(node.StartPoint().Row) + 1,
			Column: int(node.StartPoint().Column) + 1,
			Length: int(node.EndByte() - node.StartByte()),
		})
		return
	}
	for i := 0; i < count; i++ {
		collectLeaves(node.Child(i), source, file, out)
	}
}
