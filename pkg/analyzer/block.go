package analyzer

import (
	"fmt"

	"github.com/asymptotic-dev/bigo/pkg/fingerprint"
	"github.com/asymptotic-dev/bigo/pkg/models"
	"github.com/asymptotic-dev/bigo/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// Result is one block's estimated cost plus the provenance trail that
// produced it.
type Result struct {
	Complexity models.ComplexityValue
	Reason     string
}

// defaultReason is returned for blocks where nothing costs more than O(1).
const defaultReason = "Constant time operations"

// BlockAnalyzer walks a function body and composes per-construct costs
// into a single worst-case estimate. It is stateless across invocations:
// each call receives its own subtree and returns a fresh result.
type BlockAnalyzer struct {
	matcher *fingerprint.Matcher
}

// NewBlockAnalyzer creates a block analyzer over the given fingerprint
// registry.
func NewBlockAnalyzer(matcher *fingerprint.Matcher) *BlockAnalyzer {
	return &BlockAnalyzer{matcher: matcher}
}

// Analyze estimates the worst-case cost of one block. functionName is the
// enclosing function's declared name, needed for recursion detection at
// every nesting level.
//
// Sibling statements contribute their maximum, not their sum: Big-O keeps
// the dominant term only. The estimate flag is OR'd in from every child,
// winning or not, because an unrecognized call in a non-dominant branch
// could still dominate in reality.
func (b *BlockAnalyzer) Analyze(node *sitter.Node, source []byte, functionName string) Result {
	if node == nil {
		return Result{Complexity: models.Constant(), Reason: defaultReason}
	}

	// Recursion classification takes precedence over everything else for
	// the whole block.
	if cv, ok := ClassifyRecursion(node, source, functionName); ok {
		return Result{
			Complexity: cv,
			Reason:     fmt.Sprintf("Recursive calls detected (%s)", cv.Display()),
		}
	}

	// A fingerprint match seeds the running max as a floor; children are
	// still walked so composition with outer constructs is detected.
	var matchedRule fingerprint.Rule
	matched := false
	maxComplexity := models.Constant()
	reason := defaultReason

	if b.matcher != nil {
		signature := fingerprint.CanonicalSignature(node)
		if rule, ok := b.matcher.Match(signature); ok {
			matchedRule = rule
			matched = true
			maxComplexity = rule.Complexity
			reason = "Pattern: " + rule.Name
		}
	}

	floor := maxComplexity
	estimate := false
	childMax := models.Constant()

	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)

		var childResult Result
		kind := parser.KindOf(child)
		switch {
		case kind == parser.KindExpressionStatement,
			kind == parser.KindDeclaration,
			kind == parser.KindCall:
			cost := ClassifyCall(child, source)
			childResult = Result{Complexity: cost.Complexity, Reason: cost.Reason}

		case kind.IsLoop():
			body := b.Analyze(child.ChildByFieldName("body"), source, functionName)
			loopCost := ClassifyLoop(child, source)
			// A logarithmic fingerprint on the enclosing block names this
			// while loop as the halving loop; the generic classifier
			// would call it linear.
			if matched && kind == parser.KindWhile && isLogarithmic(matchedRule.Complexity) {
				loopCost = models.Logarithmic()
			}
			// A constant-cost body with a non-default reason (an
			// unresolved call, typically) keeps that reason visible in
			// the wrap; otherwise the body's cost speaks for itself.
			inner := body.Complexity.Display()
			if body.Complexity.Compare(models.Constant()) == 0 && body.Reason != defaultReason {
				inner = body.Reason
			}
			childResult = Result{
				Complexity: loopCost.Multiply(body.Complexity),
				Reason:     fmt.Sprintf("Loop (%s) wrapping: %s", loopCost.Display(), inner),
			}

		case kind.IsBlock():
			childResult = b.Analyze(child, source, functionName)

		default:
			// Unmodeled node kinds contribute O(1).
			continue
		}

		estimate = estimate || childResult.Complexity.Estimate

		if childResult.Complexity.Compare(childMax) > 0 {
			childMax = childResult.Complexity
		}
		if childResult.Complexity.Compare(maxComplexity) > 0 {
			maxComplexity = childResult.Complexity
			reason = childResult.Reason
		} else if childResult.Complexity.Compare(maxComplexity) == 0 &&
			reason == defaultReason && childResult.Reason != defaultReason {
			// On a tie, a specific reason beats the generic one.
			reason = childResult.Reason
		}
	}

	// The floor held against every child: credit the fingerprint together
	// with whatever ran inside it.
	if matched && maxComplexity.Compare(floor) == 0 && childMax.Compare(models.Constant()) > 0 {
		reason = fmt.Sprintf("Pattern: %s with inner logic", matchedRule.Name)
	}

	maxComplexity.Estimate = maxComplexity.Estimate || estimate
	return Result{Complexity: maxComplexity, Reason: reason}
}

func isLogarithmic(cv models.ComplexityValue) bool {
	return !cv.Exponential && cv.PolynomialDegree == 0 && cv.LogFactors > 0
}
