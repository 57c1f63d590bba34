package language

import (
	"github.com/smacker/go-tree-sitter/java"
)

func init() {
	Register(&treeSitterFrontend{
		name:       "java",
		extensions: []string{".java"},
		lang:       java.GetLanguage(),
	})
}
