package output

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/asymptotic-dev/bigo/pkg/models"
)

// BuildReport assembles the analysis report: a per-function table, a class
// distribution summary, and threshold warnings. The raw analysis rides
// along as Data so JSON and TOON output stay structured.
func BuildReport(analysis *models.Analysis, thresholds models.Thresholds) *Report {
	report := &Report{
		Title: "Complexity Estimates",
		Data:  analysis,
	}

	report.Sections = append(report.Sections, functionsTable(analysis))
	report.Sections = append(report.Sections, summarySection(analysis.Summary))

	if warnings := thresholdWarnings(analysis, thresholds); warnings != nil {
		report.Sections = append(report.Sections, warnings)
	}

	return report
}

func functionsTable(analysis *models.Analysis) *Table {
	var rows [][]string
	for _, fa := range analysis.Files {
		for _, fn := range fa.Functions {
			rows = append(rows, []string{
				fa.Path,
				fn.Name,
				fmt.Sprintf("%d-%d", fn.StartLine, fn.EndLine),
				fn.Display,
				fn.Reason,
			})
		}
	}

	return NewTable(
		"Functions",
		[]string{"File", "Function", "Lines", "Estimate", "Reason"},
		rows,
		nil,
		nil,
	)
}

func summarySection(summary models.Summary) *Section {
	classes := make([]string, 0, len(summary.ByClass))
	for class := range summary.ByClass {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	content := fmt.Sprintf("Files: %d  Functions: %d", summary.TotalFiles, summary.TotalFunctions)

	dist := &Section{Title: "Distribution"}
	for _, class := range classes {
		dist.Content += fmt.Sprintf("%-12s %d\n", class, summary.ByClass[class])
	}

	stats := &Section{
		Title: "Degree Statistics",
		Content: fmt.Sprintf("max %d  mean %.2f  p50 %.1f  p95 %.1f",
			summary.MaxDegree, summary.MeanDegree, summary.P50Degree, summary.P95Degree),
	}

	section := &Section{
		Title:    "Summary",
		Content:  content,
		Sections: []Section{*dist, *stats},
	}
	if summary.EstimateCount > 0 {
		section.Content += "\nUnresolved-call estimates: " + strconv.Itoa(summary.EstimateCount)
	}
	return section
}

// thresholdWarnings lists every function whose estimate exceeds the
// configured limits. Returns nil when everything passes.
func thresholdWarnings(analysis *models.Analysis, thresholds models.Thresholds) *Table {
	var rows [][]string
	for _, fa := range analysis.Files {
		for _, fn := range fa.Functions {
			if !thresholds.Exceeds(fn.Complexity) {
				continue
			}
			rows = append(rows, []string{
				fa.Path,
				fn.Name,
				fn.Display,
				fn.Reason,
			})
		}
	}

	if len(rows) == 0 {
		return nil
	}
	return NewTable(
		"Threshold Warnings",
		[]string{"File", "Function", "Estimate", "Reason"},
		rows,
		nil,
		nil,
	)
}
