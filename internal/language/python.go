package language

import (
	"github.com/smacker/go-tree-sitter/python"
)

func init() {
	Register(&treeSitterFrontend{
		name:       "python",
		extensions: []string{".py"},
		lang:       python.GetLanguage(),
	})
}
