package parser

import sitter "github.com/smacker/go-tree-sitter"

// Kind is a closed classification of the tree-sitter node types the
// analyzer consumes. Dispatching on Kind instead of raw type strings keeps
// traversal exhaustive: anything the grammar produces that we don't model
// lands in KindOther.
type Kind int

const (
	KindOther Kind = iota
	KindCompound
	KindFor
	KindWhile
	KindDo
	KindIf
	KindExpressionStatement
	KindDeclaration
	KindCall
	KindIdentifier
	KindNumberLiteral
)

// KindOf classifies a node by its tree-sitter type tag.
func KindOf(node *sitter.Node) Kind {
	if node == nil {
		return KindOther
	}
	switch node.Type() {
	case "compound_statement", "else_clause":
		// else_clause wraps the alternative branch; it nests statements
		// the same way a compound block does.
		return KindCompound
	case "for_statement", "for_range_loop":
		return KindFor
	case "while_statement":
		return KindWhile
	case "do_statement":
		return KindDo
	case "if_statement":
		return KindIf
	case "expression_statement":
		return KindExpressionStatement
	case "declaration":
		return KindDeclaration
	case "call_expression":
		return KindCall
	case "identifier", "field_identifier":
		return KindIdentifier
	case "number_literal":
		return KindNumberLiteral
	default:
		return KindOther
	}
}

// IsLoop reports whether the kind is one of the loop constructs.
func (k Kind) IsLoop() bool {
	return k == KindFor || k == KindWhile || k == KindDo
}

// IsBlock reports whether the kind nests statements that should be analyzed
// as a block of their own.
func (k Kind) IsBlock() bool {
	return k == KindCompound || k == KindIf
}

// String returns the canonical tree-sitter type tag for the kind.
func (k Kind) String() string {
	switch k {
	case KindCompound:
		return "compound_statement"
	case KindFor:
		return "for_statement"
	case KindWhile:
		return "while_statement"
	case KindDo:
		return "do_statement"
	case KindIf:
		return "if_statement"
	case KindExpressionStatement:
		return "expression_statement"
	case KindDeclaration:
		return "declaration"
	case KindCall:
		return "call_expression"
	case KindIdentifier:
		return "identifier"
	case KindNumberLiteral:
		return "number_literal"
	default:
		return "other"
	}
}
