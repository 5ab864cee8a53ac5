package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/asymptotic-dev/bigo/pkg/models"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"text", FormatText},
		{"TEXT", FormatText},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"toon", FormatTOON},
		{"TOON", FormatTOON},
		{"", FormatText},
		{"invalid", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseFormat(tt.input)
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	f, err := NewFormatter(FormatText, "", true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}
	defer f.Close()

	if f.Format() != FormatText {
		t.Errorf("Format() = %q, want %q", f.Format(), FormatText)
	}
	if !f.Colored() {
		t.Error("Colored() = false, want true")
	}
	if f.file != nil {
		t.Error("file should be nil for stdout")
	}
	if f.Writer() == nil {
		t.Error("Writer() should not be nil")
	}
}

func TestNewFormatterWithFile(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "output.json")

	f, err := NewFormatter(FormatJSON, outputPath, true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	if f.file == nil {
		t.Error("file should not be nil for file output")
	}
	if f.colored {
		t.Error("colored should be false when writing to file")
	}

	if err := f.Output(map[string]string{"k": "v"}); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["k"] != "v" {
		t.Errorf("decoded[k] = %q, want %q", decoded["k"], "v")
	}
}

func TestTableRenderText(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(
		"Results",
		[]string{"Function", "Estimate"},
		[][]string{
			{"scan", "O(N)"},
			{"grid", "O(N²)"},
		},
		nil,
		nil,
	)

	if err := table.RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Results", "scan", "O(N)", "grid", "O(N²)"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderText() output missing %q:\n%s", want, out)
		}
	}
}

func TestTableRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(
		"Results",
		[]string{"Function", "Estimate"},
		[][]string{{"scan", "O(N)"}},
		nil,
		nil,
	)

	if err := table.RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "## Results") {
		t.Errorf("markdown missing title: %s", out)
	}
	if !strings.Contains(out, "| Function | Estimate |") {
		t.Errorf("markdown missing header row: %s", out)
	}
	if !strings.Contains(out, "| --- | --- |") {
		t.Errorf("markdown missing separator row: %s", out)
	}
	if !strings.Contains(out, "| scan | O(N) |") {
		t.Errorf("markdown missing data row: %s", out)
	}
}

func TestTableRenderData(t *testing.T) {
	table := NewTable("", []string{"a", "b"}, [][]string{{"1", "2"}}, nil, nil)

	data, ok := table.RenderData().([]map[string]string)
	if !ok {
		t.Fatalf("RenderData() type = %T, want []map[string]string", table.RenderData())
	}
	if data[0]["a"] != "1" || data[0]["b"] != "2" {
		t.Errorf("RenderData() = %v", data)
	}
}

func TestSectionRenderText(t *testing.T) {
	var buf bytes.Buffer
	section := &Section{
		Title:   "Summary",
		Content: "Files: 2",
		Sections: []Section{
			{Title: "Distribution", Content: "O(N) 2"},
		},
	}

	if err := section.RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Summary\n=======") {
		t.Errorf("top-level title not underlined with =:\n%s", out)
	}
	if !strings.Contains(out, "Distribution\n------------") {
		t.Errorf("nested title not underlined with -:\n%s", out)
	}
}

func TestFormatterTOON(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "out.toon")

	f, err := NewFormatter(FormatTOON, outputPath, false)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	if err := f.Output(map[string]any{"functions": 3}); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !strings.Contains(string(data), "functions") {
		t.Errorf("toon output missing key: %s", data)
	}
}

func sampleAnalysis() *models.Analysis {
	lin := models.Linear()
	exp := models.ExponentialCost()
	return &models.Analysis{
		Files: []models.FileAnalysis{
			{
				Path:     "a.c",
				Language: "c",
				Functions: []models.FunctionEstimate{
					{Name: "scan", StartLine: 1, EndLine: 5, Complexity: lin, Display: lin.Display(), Reason: "Loop (O(N)) wrapping: O(1)"},
					{Name: "fib", StartLine: 7, EndLine: 12, Complexity: exp, Display: exp.Display(), Reason: "Recursive calls detected (O(2ᴺ))"},
				},
				WorstCase:     exp,
				WorstFunction: "fib",
			},
		},
		Summary: models.Summary{
			TotalFiles:       1,
			TotalFunctions:   2,
			ByClass:          map[string]int{"O(N)": 1, "O(2^N)": 1},
			MaxDegree:        1,
			ExponentialCount: 1,
		},
	}
}

func TestBuildReport(t *testing.T) {
	report := BuildReport(sampleAnalysis(), models.DefaultThresholds())

	if len(report.Sections) != 3 {
		t.Fatalf("Sections = %d, want functions, summary, warnings", len(report.Sections))
	}

	var buf bytes.Buffer
	if err := report.RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Complexity Estimates", "scan", "fib", "Threshold Warnings"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestBuildReport_NoWarningsWhenUnderThreshold(t *testing.T) {
	analysis := sampleAnalysis()
	analysis.Files[0].Functions = analysis.Files[0].Functions[:1]

	report := BuildReport(analysis, models.DefaultThresholds())
	if len(report.Sections) != 2 {
		t.Errorf("Sections = %d, want 2 when nothing exceeds thresholds", len(report.Sections))
	}
}

func TestComplexityColor_PassesThroughUnknownClass(t *testing.T) {
	if got := ComplexityColor("O(N)", "O(N)"); got != "O(N)" {
		t.Errorf("ComplexityColor() = %q, want passthrough", got)
	}
}
