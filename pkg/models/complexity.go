package models

import (
	"regexp"
	"strconv"
	"strings"
)

// ComplexityValue is the cost algebra unit for asymptotic estimates.
// The zero value is O(1).
//
// Exponential absorbs everything: once set, the polynomial and log fields
// are meaningless and every product or comparison treats the value as the
// largest possible cost. Estimate is sticky: it marks a value whose real
// cost may be higher because an unrecognized call contributed, and it
// survives every composition.
type ComplexityValue struct {
	PolynomialDegree int  `json:"polynomial_degree"`
	LogFactors       int  `json:"log_factors"`
	Exponential      bool `json:"exponential,omitempty"`
	Estimate         bool `json:"estimate,omitempty"`
}

// Common cost constructors.

// Constant returns O(1).
func Constant() ComplexityValue { return ComplexityValue{} }

// Logarithmic returns O(log N).
func Logarithmic() ComplexityValue { return ComplexityValue{LogFactors: 1} }

// Linear returns O(N).
func Linear() ComplexityValue { return ComplexityValue{PolynomialDegree: 1} }

// Linearithmic returns O(N log N).
func Linearithmic() ComplexityValue {
	return ComplexityValue{PolynomialDegree: 1, LogFactors: 1}
}

// Polynomial returns O(N^degree).
func Polynomial(degree int) ComplexityValue {
	return ComplexityValue{PolynomialDegree: degree}
}

// ExponentialCost returns O(2^N).
func ExponentialCost() ComplexityValue { return ComplexityValue{Exponential: true} }

var degreeLabelRe = regexp.MustCompile(`^n\^(\d+)(logn)?$`)

// FromLabel parses a canonical cost label ("O(1)", "O(N)", "O(N log N)",
// "O(log N)", "O(N^k)", "O(2^N)") into the structured form. Unrecognized
// labels fail closed to O(1); the caller decides whether that warrants an
// estimate flag.
func FromLabel(label string) ComplexityValue {
	s := strings.ToLower(label)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimPrefix(s, "o(")
	s = strings.TrimSuffix(s, ")")

	switch s {
	case "1":
		return Constant()
	case "n":
		return Linear()
	case "logn":
		return Logarithmic()
	case "nlogn":
		return Linearithmic()
	case "2^n":
		return ExponentialCost()
	}

	if m := degreeLabelRe.FindStringSubmatch(s); m != nil {
		degree, err := strconv.Atoi(m[1])
		if err != nil || degree < 0 {
			return Constant()
		}
		cv := Polynomial(degree)
		if m[2] != "" {
			cv.LogFactors = 1
		}
		return cv
	}

	return Constant()
}

// Multiply composes two costs sequentially (nested constructs: loop x body).
// Degrees add and the exponential and estimate flags are OR'd. Log factors
// add, except when both operands are N-bearing: there the product keeps a
// single log term instead of accumulating them, a deliberate dominant-term
// simplification that keeps estimates pessimistic on the polynomial degree
// rather than precise on log factors.
func (c ComplexityValue) Multiply(other ComplexityValue) ComplexityValue {
	out := ComplexityValue{Estimate: c.Estimate || other.Estimate}

	if c.Exponential || other.Exponential {
		out.Exponential = true
		return out
	}

	out.PolynomialDegree = c.PolynomialDegree + other.PolynomialDegree
	if c.PolynomialDegree >= 1 && other.PolynomialDegree >= 1 {
		out.LogFactors = max(c.LogFactors, other.LogFactors)
	} else {
		out.LogFactors = c.LogFactors + other.LogFactors
	}

	return out
}

// Compare imposes a total order on costs: exponential beats everything,
// then higher polynomial degree, then more log factors. The estimate flag
// does not participate in ordering. Returns -1, 0, or 1.
func (c ComplexityValue) Compare(other ComplexityValue) int {
	if c.Exponential || other.Exponential {
		switch {
		case c.Exponential && other.Exponential:
			return 0
		case c.Exponential:
			return 1
		default:
			return -1
		}
	}

	if c.PolynomialDegree != other.PolynomialDegree {
		if c.PolynomialDegree > other.PolynomialDegree {
			return 1
		}
		return -1
	}

	if c.LogFactors != other.LogFactors {
		if c.LogFactors > other.LogFactors {
			return 1
		}
		return -1
	}

	return 0
}

// Max returns the worse of the two costs, OR-ing the estimate flags so
// uncertainty from the losing branch is not dropped. Ties keep the receiver.
func (c ComplexityValue) Max(other ComplexityValue) ComplexityValue {
	out := c
	if other.Compare(c) > 0 {
		out = other
	}
	out.Estimate = c.Estimate || other.Estimate
	return out
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
}

func superscript(n int) string {
	var b strings.Builder
	for _, r := range strconv.Itoa(n) {
		b.WriteRune(superscripts[r])
	}
	return b.String()
}

// Display renders the cost for human consumption: "O(1)", "O(N)",
// "O(N²)", "O(2ᴺ)". An estimate carries a trailing marker because
// the real cost may be higher than shown.
func (c ComplexityValue) Display() string {
	var body string
	switch {
	case c.Exponential:
		body = "2ᴺ"
	case c.PolynomialDegree == 0 && c.LogFactors == 0:
		body = "1"
	case c.PolynomialDegree == 0:
		body = logTerm(c.LogFactors)
	default:
		body = "N"
		if c.PolynomialDegree > 1 {
			body += superscript(c.PolynomialDegree)
		}
		if c.LogFactors > 0 {
			body += " " + logTerm(c.LogFactors)
		}
	}

	s := "O(" + body + ")"
	if c.Estimate {
		s += " (est)"
	}
	return s
}

func logTerm(count int) string {
	if count <= 1 {
		return "log N"
	}
	return "log" + superscript(count) + " N"
}

// String implements fmt.Stringer.
func (c ComplexityValue) String() string { return c.Display() }

// Class buckets the cost into a coarse label for aggregation.
func (c ComplexityValue) Class() string {
	switch {
	case c.Exponential:
		return "O(2^N)"
	case c.PolynomialDegree == 0 && c.LogFactors == 0:
		return "O(1)"
	case c.PolynomialDegree == 0:
		return "O(log N)"
	case c.PolynomialDegree == 1 && c.LogFactors == 0:
		return "O(N)"
	case c.PolynomialDegree == 1:
		return "O(N log N)"
	case c.PolynomialDegree == 2:
		return "O(N^2)"
	default:
		return "O(N^3+)"
	}
}
