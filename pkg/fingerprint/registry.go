package fingerprint

import (
	"regexp"

	"github.com/asymptotic-dev/bigo/pkg/models"
)

// Rule associates a named algorithm shape with its known cost. Pattern is a
// regular expression over the canonical signature's token sequence. Rules
// are immutable after construction; registry order defines match priority.
type Rule struct {
	Name       string
	Complexity models.ComplexityValue
	Pattern    *regexp.Regexp
}

// Matcher scans an ordered rule registry. A failed match is a normal
// outcome, not an error: most code matches no fingerprint and falls through
// to compositional analysis.
type Matcher struct {
	rules []Rule
}

// NewMatcher creates a matcher over the given registry. The slice is used
// as-is; callers must not mutate it afterwards.
func NewMatcher(rules []Rule) *Matcher {
	return &Matcher{rules: rules}
}

// Match returns the first rule whose pattern matches the signature.
func (m *Matcher) Match(signature string) (Rule, bool) {
	for _, rule := range m.rules {
		if rule.Pattern.MatchString(signature) {
			return rule, true
		}
	}
	return Rule{}, false
}

// DefaultRules returns the built-in shape registry. Patterns are written
// against the flattened token stream, so they encode statement order rather
// than true nesting; that looseness is intentional, matching is advisory
// and sets a floor the block analyzer can still raise.
func DefaultRules() []Rule {
	return []Rule{
		{
			// A while loop whose body opens with a declaration or
			// expression (the midpoint computation) followed by an if
			// (the comparison-and-halve branch).
			Name:       "Binary Search Logic",
			Complexity: models.Logarithmic(),
			Pattern: regexp.MustCompile(
				`while_statement\|.*compound_statement\|(declaration|expression_statement)\|.*if_statement`),
		},
		{
			// Outer for whose body opens with an inner for, with a
			// compare-and-swap branch inside.
			Name:       "Bubble Sort Pattern",
			Complexity: models.Polynomial(2),
			Pattern: regexp.MustCompile(
				`for_statement\|.*compound_statement\|for_statement\|.*if_statement`),
		},
	}
}
