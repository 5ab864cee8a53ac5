// Package analyzer estimates the asymptotic time complexity of C/C++
// functions from their syntax trees alone, without executing the code. It
// is a heuristic triage tool: loop nesting, known library-call costs,
// recursive self-calls, and a few structural fingerprints combine into a
// single worst-case Big-O per function, always best-effort and never an
// error.
package analyzer

import (
	"sort"

	"github.com/asymptotic-dev/bigo/pkg/fingerprint"
	"github.com/asymptotic-dev/bigo/pkg/models"
	"github.com/asymptotic-dev/bigo/pkg/parser"
	"github.com/asymptotic-dev/bigo/pkg/stats"
)

// Estimator computes Big-O estimates for all functions in source files.
type Estimator struct {
	parser  *parser.Parser
	matcher *fingerprint.Matcher
	workers int
}

// NewEstimator creates an estimator with the default fingerprint registry.
func NewEstimator() *Estimator {
	return NewEstimatorWithRules(fingerprint.DefaultRules())
}

// NewEstimatorWithRules creates an estimator over an explicit registry.
func NewEstimatorWithRules(rules []fingerprint.Rule) *Estimator {
	return &Estimator{
		parser:  parser.New(),
		matcher: fingerprint.NewMatcher(rules),
	}
}

// AnalyzeFile analyzes every function in a single file.
func (e *Estimator) AnalyzeFile(path string) (*models.FileAnalysis, error) {
	return analyzeFile(e.parser, e.matcher, path)
}

// AnalyzeSource analyzes in-memory source, useful for tests and editors.
func (e *Estimator) AnalyzeSource(source []byte, lang parser.Language, path string) (*models.FileAnalysis, error) {
	result, err := e.parser.Parse(source, lang, path)
	if err != nil {
		return nil, err
	}
	return analyzeParsed(e.matcher, result), nil
}

// AnalyzeProject analyzes all files in parallel.
func (e *Estimator) AnalyzeProject(files []string) (*models.Analysis, error) {
	return e.AnalyzeProjectWithProgress(files, nil)
}

// AnalyzeProjectWithProgress analyzes all files with an optional progress
// callback invoked once per file.
func (e *Estimator) AnalyzeProjectWithProgress(files []string, onProgress ProgressFunc) (*models.Analysis, error) {
	matcher := e.matcher
	results := MapFilesN(files, e.workers, func(psr *parser.Parser, path string) (models.FileAnalysis, error) {
		fa, err := analyzeFile(psr, matcher, path)
		if err != nil {
			return models.FileAnalysis{}, err
		}
		return *fa, nil
	}, onProgress)

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	analysis := &models.Analysis{Files: results}
	analysis.Summary = Summarize(results)
	return analysis, nil
}

// SetWorkers caps the analysis worker pool. Zero or negative restores the
// default of twice the CPU count.
func (e *Estimator) SetWorkers(n int) {
	e.workers = n
}

// Close releases parser resources.
func (e *Estimator) Close() {
	e.parser.Close()
}

// analyzeFile parses one file with the provided parser and estimates every
// function in it.
func analyzeFile(psr *parser.Parser, matcher *fingerprint.Matcher, path string) (*models.FileAnalysis, error) {
	result, err := psr.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return analyzeParsed(matcher, result), nil
}

func analyzeParsed(matcher *fingerprint.Matcher, result *parser.ParseResult) *models.FileAnalysis {
	fa := &models.FileAnalysis{
		Path:      result.Path,
		Language:  string(result.Language),
		Functions: make([]models.FunctionEstimate, 0),
	}

	blocks := NewBlockAnalyzer(matcher)
	for _, fn := range parser.GetFunctions(result) {
		res := blocks.Analyze(fn.Body, result.Source, fn.Name)
		estimate := models.FunctionEstimate{
			Name:       fn.Name,
			File:       result.Path,
			StartLine:  fn.StartLine,
			EndLine:    fn.EndLine,
			Complexity: res.Complexity,
			Display:    res.Complexity.Display(),
			Reason:     res.Reason,
		}
		fa.Functions = append(fa.Functions, estimate)

		if res.Complexity.Compare(fa.WorstCase) > 0 || fa.WorstFunction == "" {
			fa.WorstCase = res.Complexity
			fa.WorstFunction = fn.Name
		}
	}

	return fa
}

// Summarize aggregates per-function estimates into project statistics.
// Exponential functions are folded into the degree distribution as the
// configured ceiling so quantiles stay meaningful. Callers merging cached
// and freshly analyzed files can rebuild the summary from the combined set.
func Summarize(files []models.FileAnalysis) models.Summary {
	summary := models.Summary{
		TotalFiles: len(files),
		ByClass:    make(map[string]int),
	}

	var degrees []float64
	for _, fa := range files {
		for _, fn := range fa.Functions {
			summary.TotalFunctions++
			summary.ByClass[fn.Complexity.Class()]++

			if fn.Complexity.Estimate {
				summary.EstimateCount++
			}
			if fn.Complexity.Exponential {
				summary.ExponentialCount++
				continue
			}
			degrees = append(degrees, float64(fn.Complexity.PolynomialDegree))
			if fn.Complexity.PolynomialDegree > summary.MaxDegree {
				summary.MaxDegree = fn.Complexity.PolynomialDegree
			}
		}
	}

	if len(degrees) > 0 {
		summary.MeanDegree = stats.Mean(degrees)
		summary.P50Degree = stats.Quantile(degrees, 0.50)
		summary.P95Degree = stats.Quantile(degrees, 0.95)
	}

	return summary
}
