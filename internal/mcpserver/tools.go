package mcpserver

import (
	"context"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/asymptotic-dev/bigo/pkg/analyzer"
	"github.com/asymptotic-dev/bigo/pkg/config"
	"github.com/asymptotic-dev/bigo/pkg/models"
	"github.com/asymptotic-dev/bigo/pkg/output"
	"github.com/asymptotic-dev/bigo/pkg/parser"
	"github.com/asymptotic-dev/bigo/pkg/scanner"
)

// EstimateInput is the input for the estimate_complexity tool.
type EstimateInput struct {
	Paths  []string `json:"paths,omitempty" jsonschema:"Files or directories to analyze. Defaults to current directory if empty."`
	Format string   `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
	Top    int      `json:"top,omitempty" jsonschema:"Only return the N worst functions. 0 returns everything."`
}

// FunctionInput is the input for the estimate_function tool.
type FunctionInput struct {
	Source   string `json:"source" jsonschema:"C or C++ source code containing one or more function definitions."`
	Language string `json:"language,omitempty" jsonschema:"Source language: c (default) or cpp."`
	Format   string `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

func getPaths(paths []string) []string {
	if len(paths) == 0 {
		return []string{"."}
	}
	return paths
}

func getFormat(format string) output.Format {
	switch format {
	case "json":
		return output.FormatJSON
	case "markdown", "md":
		return output.FormatMarkdown
	default:
		return output.FormatTOON
	}
}

func formatOutput(data any, format output.Format) (string, error) {
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return "", err
	}
	if format == output.FormatMarkdown {
		return "```\n" + string(out) + "\n```", nil
	}
	return string(out), nil
}

func toolResult(data any, format output.Format) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

// Tool handlers

func handleEstimateComplexity(ctx context.Context, req *mcp.CallToolRequest, input EstimateInput) (*mcp.CallToolResult, any, error) {
	paths := getPaths(input.Paths)
	format := getFormat(input.Format)

	cfg := config.LoadOrDefault()
	scn := scanner.NewScanner(cfg)

	var files []string
	for _, path := range paths {
		if ok, err := scn.ScanFile(path); err == nil && ok {
			files = append(files, path)
			continue
		}
		found, err := scn.ScanDir(path)
		if err != nil {
			return toolError(err.Error())
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		return toolError("no C/C++ source files found")
	}

	est := analyzer.NewEstimator()
	defer est.Close()

	analysis, err := est.AnalyzeProject(files)
	if err != nil {
		return toolError(err.Error())
	}

	if input.Top > 0 {
		return toolResult(worstFunctions(analysis, input.Top), format)
	}
	return toolResult(analysis, format)
}

func handleEstimateFunction(ctx context.Context, req *mcp.CallToolRequest, input FunctionInput) (*mcp.CallToolResult, any, error) {
	if input.Source == "" {
		return toolError("source is required")
	}
	format := getFormat(input.Format)

	lang := parser.LangC
	if input.Language == "cpp" || input.Language == "c++" {
		lang = parser.LangCPP
	}

	est := analyzer.NewEstimator()
	defer est.Close()

	fa, err := est.AnalyzeSource([]byte(input.Source), lang, "snippet")
	if err != nil {
		return toolError(err.Error())
	}
	if len(fa.Functions) == 0 {
		return toolError("no function definitions found in source")
	}

	return toolResult(fa, format)
}

// worstFunctions flattens the analysis into its top-N costliest functions.
func worstFunctions(analysis *models.Analysis, top int) []models.FunctionEstimate {
	var all []models.FunctionEstimate
	for _, fa := range analysis.Files {
		all = append(all, fa.Functions...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Complexity.Compare(all[j].Complexity) > 0
	})

	if top < len(all) {
		all = all[:top]
	}
	return all
}
