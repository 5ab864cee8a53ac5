package models

import "testing"

func TestFromLabel(t *testing.T) {
	tests := []struct {
		label string
		want  ComplexityValue
	}{
		{"O(1)", Constant()},
		{"O(N)", Linear()},
		{"O(n)", Linear()},
		{"O(log N)", Logarithmic()},
		{"O(N log N)", Linearithmic()},
		{"O(N^2)", Polynomial(2)},
		{"O(N^3)", Polynomial(3)},
		{"O(N^2 log N)", ComplexityValue{PolynomialDegree: 2, LogFactors: 1}},
		{"O(2^N)", ExponentialCost()},
		{"garbage", Constant()},
		{"", Constant()},
		{"O(N!)", Constant()},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := FromLabel(tt.label)
			if got != tt.want {
				t.Errorf("FromLabel(%q) = %+v, want %+v", tt.label, got, tt.want)
			}
		})
	}
}

func TestFromLabel_FailsClosedWithoutEstimate(t *testing.T) {
	got := FromLabel("O(unknown)")
	if got.Estimate {
		t.Error("unrecognized label should not set the estimate flag itself")
	}
	if got.Compare(Constant()) != 0 {
		t.Errorf("unrecognized label = %v, want O(1)", got)
	}
}

func TestMultiply(t *testing.T) {
	tests := []struct {
		name string
		a, b ComplexityValue
		want ComplexityValue
	}{
		{"identity left", Constant(), Linear(), Linear()},
		{"identity right", Linear(), Constant(), Linear()},
		{"linear x linear", Linear(), Linear(), Polynomial(2)},
		{"linear x log", Linear(), Logarithmic(), Linearithmic()},
		{"log x log", Logarithmic(), Logarithmic(), ComplexityValue{LogFactors: 2}},
		{
			// Conservative bump: log factors do not accumulate across
			// N-bearing operands.
			"linearithmic x linear",
			Linearithmic(), Linear(),
			ComplexityValue{PolynomialDegree: 2, LogFactors: 1},
		},
		{
			"linearithmic x linearithmic",
			Linearithmic(), Linearithmic(),
			ComplexityValue{PolynomialDegree: 2, LogFactors: 1},
		},
		{"exponential absorbs", ExponentialCost(), Polynomial(5), ExponentialCost()},
		{"exponential absorbs reversed", Polynomial(5), ExponentialCost(), ExponentialCost()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Multiply(tt.b)
			if got != tt.want {
				t.Errorf("%v.Multiply(%v) = %+v, want %+v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMultiply_Commutative(t *testing.T) {
	values := []ComplexityValue{
		Constant(), Logarithmic(), Linear(), Linearithmic(), Polynomial(2), Polynomial(3),
	}
	for _, a := range values {
		for _, b := range values {
			ab := a.Multiply(b)
			ba := b.Multiply(a)
			if ab != ba {
				t.Errorf("Multiply not commutative: %v*%v=%v but %v*%v=%v", a, b, ab, b, a, ba)
			}
		}
	}
}

func TestMultiply_EstimateIsSticky(t *testing.T) {
	tainted := Linear()
	tainted.Estimate = true

	got := tainted.Multiply(Linear())
	if !got.Estimate {
		t.Error("estimate flag lost through Multiply")
	}

	got = Linear().Multiply(tainted)
	if !got.Estimate {
		t.Error("estimate flag lost through Multiply (right operand)")
	}

	exp := ExponentialCost().Multiply(tainted)
	if !exp.Estimate {
		t.Error("estimate flag lost when exponential absorbs")
	}
}

func TestCompare(t *testing.T) {
	// Ascending order; each entry must compare below all later entries.
	ascending := []ComplexityValue{
		Constant(),
		Logarithmic(),
		{LogFactors: 2},
		Linear(),
		Linearithmic(),
		Polynomial(2),
		{PolynomialDegree: 2, LogFactors: 1},
		Polynomial(3),
		ExponentialCost(),
	}

	for i, a := range ascending {
		if a.Compare(a) != 0 {
			t.Errorf("Compare(%v, self) = %d, want 0", a, a.Compare(a))
		}
		for j := i + 1; j < len(ascending); j++ {
			b := ascending[j]
			if a.Compare(b) != -1 {
				t.Errorf("Compare(%v, %v) = %d, want -1", a, b, a.Compare(b))
			}
			if b.Compare(a) != 1 {
				t.Errorf("Compare(%v, %v) = %d, want 1", b, a, b.Compare(a))
			}
		}
	}
}

func TestCompare_Antisymmetric(t *testing.T) {
	values := []ComplexityValue{
		Constant(), Logarithmic(), Linear(), Linearithmic(),
		Polynomial(2), Polynomial(4), ExponentialCost(),
	}
	for _, a := range values {
		for _, b := range values {
			if a.Compare(b) != -b.Compare(a) {
				t.Errorf("Compare(%v,%v)=%d but Compare(%v,%v)=%d",
					a, b, a.Compare(b), b, a, b.Compare(a))
			}
		}
	}
}

func TestCompare_IgnoresEstimate(t *testing.T) {
	a := Linear()
	b := Linear()
	b.Estimate = true
	if a.Compare(b) != 0 {
		t.Errorf("Compare should ignore the estimate flag, got %d", a.Compare(b))
	}
}

func TestMax(t *testing.T) {
	worse := Polynomial(2)
	better := Linear()
	better.Estimate = true

	got := better.Max(worse)
	if got.PolynomialDegree != 2 {
		t.Errorf("Max picked degree %d, want 2", got.PolynomialDegree)
	}
	if !got.Estimate {
		t.Error("Max dropped the estimate flag from the losing branch")
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		cv   ComplexityValue
		want string
	}{
		{Constant(), "O(1)"},
		{Logarithmic(), "O(log N)"},
		{Linear(), "O(N)"},
		{Linearithmic(), "O(N log N)"},
		{Polynomial(2), "O(N²)"},
		{Polynomial(3), "O(N³)"},
		{ComplexityValue{PolynomialDegree: 2, LogFactors: 1}, "O(N² log N)"},
		{ComplexityValue{LogFactors: 2}, "O(log² N)"},
		{ExponentialCost(), "O(2ᴺ)"},
		{ComplexityValue{PolynomialDegree: 1, Estimate: true}, "O(N) (est)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.cv.Display(); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClass(t *testing.T) {
	tests := []struct {
		cv   ComplexityValue
		want string
	}{
		{Constant(), "O(1)"},
		{Logarithmic(), "O(log N)"},
		{Linear(), "O(N)"},
		{Linearithmic(), "O(N log N)"},
		{Polynomial(2), "O(N^2)"},
		{ComplexityValue{PolynomialDegree: 2, LogFactors: 1}, "O(N^2)"},
		{Polynomial(3), "O(N^3+)"},
		{Polynomial(7), "O(N^3+)"},
		{ExponentialCost(), "O(2^N)"},
	}
	for _, tt := range tests {
		if got := tt.cv.Class(); got != tt.want {
			t.Errorf("Class(%v) = %q, want %q", tt.cv, got, tt.want)
		}
	}
}

func TestThresholds(t *testing.T) {
	th := DefaultThresholds()

	if th.Exceeds(Polynomial(2)) {
		t.Error("degree at threshold should not be flagged")
	}
	if !th.Exceeds(Polynomial(3)) {
		t.Error("degree above threshold should be flagged")
	}
	if !th.Exceeds(ExponentialCost()) {
		t.Error("exponential should be flagged by default")
	}

	est := Linear()
	est.Estimate = true
	if th.Exceeds(est) {
		t.Error("estimates should not be flagged by default")
	}

	th.FlagEstimates = true
	if !th.Exceeds(est) {
		t.Error("estimates should be flagged when enabled")
	}
}
