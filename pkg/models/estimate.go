package models

// FunctionEstimate is the per-function analysis result: the estimated
// worst-case cost plus a short provenance trail explaining which construct
// drove the estimate.
type FunctionEstimate struct {
	Name       string          `json:"name"`
	File       string          `json:"file"`
	StartLine  uint32          `json:"start_line"`
	EndLine    uint32          `json:"end_line"`
	Complexity ComplexityValue `json:"complexity"`
	Display    string          `json:"display"`
	Reason     string          `json:"reason"`
}

// FileAnalysis aggregates estimates for one source file.
type FileAnalysis struct {
	Path          string             `json:"path"`
	Language      string             `json:"language"`
	Functions     []FunctionEstimate `json:"functions"`
	WorstCase     ComplexityValue    `json:"worst_case"`
	WorstFunction string             `json:"worst_function,omitempty"`
}

// Analysis is the full project result.
type Analysis struct {
	Files   []FileAnalysis `json:"files"`
	Summary Summary        `json:"summary"`
}

// Summary provides aggregate statistics over all analyzed functions.
type Summary struct {
	TotalFiles       int            `json:"total_files"`
	TotalFunctions   int            `json:"total_functions"`
	ByClass          map[string]int `json:"by_class,omitempty"`
	MaxDegree        int            `json:"max_degree"`
	MeanDegree       float64        `json:"mean_degree"`
	P50Degree        float64        `json:"p50_degree"`
	P95Degree        float64        `json:"p95_degree"`
	EstimateCount    int            `json:"estimate_count"`
	ExponentialCount int            `json:"exponential_count"`
}

// Thresholds defines the limits above which an estimate is reported as a
// warning.
type Thresholds struct {
	MaxDegree       int  `json:"max_degree"`
	FlagExponential bool `json:"flag_exponential"`
	FlagEstimates   bool `json:"flag_estimates"`
}

// DefaultThresholds returns sensible defaults: quadratic or worse gets
// flagged, exponential always does.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxDegree:       2,
		FlagExponential: true,
		FlagEstimates:   false,
	}
}

// Exceeds reports whether the estimate should be surfaced as a warning
// under the given thresholds.
func (t Thresholds) Exceeds(cv ComplexityValue) bool {
	if cv.Exponential {
		return t.FlagExponential
	}
	if cv.PolynomialDegree > t.MaxDegree {
		return true
	}
	return t.FlagEstimates && cv.Estimate
}
