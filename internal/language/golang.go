package language

import (
	"github.com/smacker/go-tree-sitter/golang"
)

func init() {
	Register(&treeSitterFrontend{
		name:       "go",
		extensions: []string{".go"},
		lang:       golang.GetLanguage(),
	})
}
