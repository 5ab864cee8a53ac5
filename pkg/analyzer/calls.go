package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/asymptotic-dev/bigo/pkg/models"
	"github.com/asymptotic-dev/bigo/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// CallCost is a classified statement cost with its provenance.
type CallCost struct {
	Complexity models.ComplexityValue
	Reason     string
}

// linearithmicCalls are standard-library markers that imply an O(N log N)
// operation over the container.
var linearithmicCalls = []string{
	"std::sort", "sort(", "stable_sort", "qsort", "partial_sort",
}

// logarithmicCalls are the binary-search family.
var logarithmicCalls = []string{
	"lower_bound", "upper_bound", "binary_search", "equal_range",
}

// constantCalls are container operations known to be O(1) (amortized for
// the push family, which is close enough for a heuristic estimate).
var constantCalls = []string{
	"push_back", "pop_back", "emplace_back", "push_front", "pop_front",
	"push(", "pop(", "top(", "front(", "back(", "swap(",
	"min(", "max(", "size(", "empty(",
}

// callShapeRe matches an identifier followed by an argument list: the
// generic shape of a function call in source text.
var callShapeRe = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_:]*)\s*\(`)

// controlKeywords are identifier-like tokens that precede parentheses
// without being calls.
var controlKeywords = map[string]bool{
	"if": true, "while": true, "for": true, "switch": true,
	"return": true, "sizeof": true, "do": true,
}

// ClassifyCall inspects a single statement for known library-call idioms.
// Matching is textual by design: this is heuristic triage over source
// slices, not symbol resolution. An unrecognized call shape yields O(1)
// with the estimate flag set and a reason naming the unresolved callee, so
// unknown code degrades confidence without blocking analysis.
func ClassifyCall(node *sitter.Node, source []byte) CallCost {
	text := parser.GetNodeText(node, source)

	for _, marker := range linearithmicCalls {
		if strings.Contains(text, marker) {
			return CallCost{
				Complexity: models.Linearithmic(),
				Reason:     fmt.Sprintf("Sort call (%s)", models.Linearithmic().Display()),
			}
		}
	}

	for _, marker := range logarithmicCalls {
		if strings.Contains(text, marker) {
			return CallCost{
				Complexity: models.Logarithmic(),
				Reason:     fmt.Sprintf("Binary search call (%s)", models.Logarithmic().Display()),
			}
		}
	}

	for _, marker := range constantCalls {
		if strings.Contains(text, marker) {
			return CallCost{
				Complexity: models.Constant(),
				Reason:     "Constant-time container operation",
			}
		}
	}

	if callee, ok := unresolvedCallee(text); ok {
		cv := models.Constant()
		cv.Estimate = true
		return CallCost{
			Complexity: cv,
			Reason:     fmt.Sprintf("Unresolved call to %s()", callee),
		}
	}

	return CallCost{
		Complexity: models.Constant(),
		Reason:     "Constant time operations",
	}
}

// unresolvedCallee returns the first callee name in the text that is not a
// control keyword, if any call shape is present.
func unresolvedCallee(text string) (string, bool) {
	for _, m := range callShapeRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if !controlKeywords[name] {
			return name, true
		}
	}
	return "", false
}
