// Package fingerprint recognizes whole algorithm shapes from the structure
// of a syntax subtree, independent of variable names and literal values.
// Generic compositional analysis under-estimates some idioms (a binary
// search loop looks like any other while loop to it); a matched fingerprint
// supplies the known cost for the shape instead.
package fingerprint

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Separator joins structural tokens in a canonical signature.
const Separator = "|"

// Wildcard replaces identifiers and literals in a canonical signature, so
// that two subtrees differing only in naming or constant values produce
// identical signatures.
const Wildcard = "_"

// collapsedTypes are leaf node types that carry naming or values rather
// than structure.
var collapsedTypes = map[string]bool{
	"identifier":       true,
	"field_identifier": true,
	"type_identifier":  true,
	"number_literal":   true,
	"string_literal":   true,
	"char_literal":     true,
	"true":             true,
	"false":            true,
}

// SignatureTokens folds a subtree into its structural token sequence:
// depth-first over named nodes, emitting each node's type tag with
// identifiers and literals collapsed to the wildcard marker.
func SignatureTokens(node *sitter.Node) []string {
	var tokens []string
	var fold func(n *sitter.Node)
	fold = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if collapsedTypes[n.Type()] {
			tokens = append(tokens, Wildcard)
			return
		}
		tokens = append(tokens, n.Type())
		for i := range int(n.NamedChildCount()) {
			fold(n.NamedChild(i))
		}
	}
	fold(node)
	return tokens
}

// CanonicalSignature renders the token sequence as a single string for
// pattern matching and caching.
func CanonicalSignature(node *sitter.Node) string {
	return strings.Join(SignatureTokens(node), Separator)
}
