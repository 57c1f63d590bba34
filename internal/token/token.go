// Package token defines the lexical units the matching engine operates on.
package token

// Type is the enumerated category a language frontend assigns to a token.
// Matching compares types only, never source text, so structurally identical
// code with renamed identifiers still matches.
type Type string

// Token is one normalized lexical unit with its source location.
// Immutable once produced by a frontend.
type Token struct {
	Type   Type
	File   string
	Line   int // 1-based
	Column int // 1-based
	Length int // length in bytes of the underlying source text
}

// Sequence is the ordered token stream of one submission. Index position is
// the unit the tiling algorithm operates on.
type Sequence []Token

// Len returns the number of tokens in the sequence.
func (s Sequence) Len() int {
	return len(s)
}

// Types returns the type of every token, in order. The matching engine
// operates on this projection.
func (s Sequence) Types() []Type {
	types := make([]Type, len(s))
	for i, t := range s {
		types[i] = t.Type
	}
	return types
}
