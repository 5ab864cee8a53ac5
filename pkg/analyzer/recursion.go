package analyzer

import (
	"strings"

	"github.com/asymptotic-dev/bigo/pkg/models"
	"github.com/asymptotic-dev/bigo/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// selfCall records one recursive call site and its argument text.
type selfCall struct {
	args string
}

// ClassifyRecursion scans a function body for calls back into the function
// itself and classifies the recursion shape. Only direct self-recursion is
// detected; mutual or indirect recursion yields no match and falls through
// to compositional analysis, a known blind spot.
//
// Decision table, first match wins:
//   - no self-calls: not recursive.
//   - two or more self-calls: O(2^N). Branching recursion is assumed
//     exponential regardless of how the arguments shrink, so two calls on
//     n/2 each (really O(N) by the master theorem) are overestimated on
//     purpose.
//   - one self-call with a division or shift in its arguments: O(log N).
//   - one self-call with subtraction or decrement: O(N).
//   - one self-call otherwise: O(N).
func ClassifyRecursion(body *sitter.Node, source []byte, functionName string) (models.ComplexityValue, bool) {
	if body == nil || functionName == "" {
		return models.Constant(), false
	}

	calls := findSelfCalls(body, source, functionName)
	switch {
	case len(calls) == 0:
		return models.Constant(), false
	case len(calls) >= 2:
		return models.ExponentialCost(), true
	}

	args := calls[0].args
	if strings.Contains(args, "/") || strings.Contains(args, ">>") {
		return models.Logarithmic(), true
	}
	// Subtraction, decrement, or anything unrecognized: assume the
	// argument shrinks by a constant per level.
	return models.Linear(), true
}

// findSelfCalls collects call expressions whose callee text names the
// enclosing function. Qualified method names compare by their final
// component, since a method calls itself unqualified.
func findSelfCalls(body *sitter.Node, source []byte, functionName string) []selfCall {
	base := functionName
	if i := strings.LastIndex(base, "::"); i >= 0 {
		base = base[i+2:]
	}

	var calls []selfCall
	parser.Walk(body, source, func(node *sitter.Node, src []byte) bool {
		if parser.KindOf(node) != parser.KindCall {
			return true
		}
		callee := parser.GetNodeText(node.ChildByFieldName("function"), src)
		if callee != functionName && callee != base {
			return true
		}
		calls = append(calls, selfCall{
			args: parser.GetNodeText(node.ChildByFieldName("arguments"), src),
		})
		return true
	})
	return calls
}
