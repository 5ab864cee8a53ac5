package analyzer

import (
	"strings"

	"github.com/asymptotic-dev/bigo/pkg/models"
	"github.com/asymptotic-dev/bigo/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// geometricStepMarkers are compound assignment operators that step a loop
// variable multiplicatively, which makes the iteration count logarithmic
// in the range.
var geometricStepMarkers = []string{"*=", "/=", ">>=", "<<="}

// ClassifyLoop estimates the iteration cost of a single loop construct.
// The default is one linear scan, O(N). A for loop whose update clause
// steps geometrically, or a while/do loop whose body text does, upgrades
// to O(log N). This is a textual heuristic over the loop's source, not a
// data-flow proof: a geometric step of a variable unrelated to the bound
// still triggers the upgrade.
func ClassifyLoop(node *sitter.Node, source []byte) models.ComplexityValue {
	if node == nil {
		return models.Linear()
	}

	switch parser.KindOf(node) {
	case parser.KindFor:
		update := node.ChildByFieldName("update")
		if hasGeometricStep(parser.GetNodeText(update, source)) {
			return models.Logarithmic()
		}
	case parser.KindWhile, parser.KindDo:
		// while/do have no dedicated update field; scan the body text.
		body := node.ChildByFieldName("body")
		if hasGeometricStep(parser.GetNodeText(body, source)) {
			return models.Logarithmic()
		}
	}

	return models.Linear()
}

func hasGeometricStep(text string) bool {
	for _, marker := range geometricStepMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
