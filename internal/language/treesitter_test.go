package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridex/crosscheck/internal/token"
)

func TestGoFrontendEmitsLeafTokens(t *testing.T) {
	frontend, err := ForName("go")
	require.NoError(t, err)

	path := writeFile(t, "main.go", "package main\n\nfunc add(a, b int) int {\n\treturn a + b\n}\n")
	seq, err := frontend.Tokenize(path)
	require.NoError(t, err)

	require.NotEmpty(t, seq)
	types := seq.Types()
	assert.Contains(t, types, token.Type("func"))
	assert.Contains(t, types, token.Type("identifier"))
	assert.Contains(t, types, token.Type("return"))
	for _, tok := range seq {
		assert.Positive(t, tok.Line)
		assert.Positive(t, tok.Column)
		assert.Positive(t, tok.Length)
		assert.Equal(t, path, tok.File)
	}
}

func TestGoFrontendDropsComments(t *testing.T) {
	frontend, err := ForName("go")
	require.NoError(t, err)

	plain, err := frontend.Tokenize(writeFile(t, "a.go", "package main\n\nvar x = 1\n"))
	require.NoError(t, err)
	commented, err := frontend.Tokenize(writeFile(t, "b.go", "// header\npackage main\n\n// doc\nvar x = 1 // trailing\n"))
	require.NoError(t, err)

	assert.Equal(t, plain.Types(), commented.Types())
}

func TestGoFrontendRenamedIdentifiersMatch(t *testing.T) {
	frontend, err := ForName("go")
	require.NoError(t, err)

	a, err := frontend.Tokenize(writeFile(t, "a.go", "package main\n\nfunc sum(x, y int) int { return x + y }\n"))
	require.NoError(t, err)
	b, err := frontend.Tokenize(writeFile(t, "b.go", "package other\n\nfunc plus(p, q int) int { return p + q }\n"))
	require.NoError(t, err)

	// Identifier renames must not change the token sequence.
	assert.Equal(t, a.Types(), b.Types())
}

func TestGoFrontendEmptyFile(t *testing.T) {
	frontend, err := ForName("go")
	require.NoError(t, err)

	seq, err := frontend.Tokenize(writeFile(t, "empty.go", ""))
	require.NoError(t, err)
	assert.Empty(t, seq)
}
