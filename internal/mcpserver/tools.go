package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/dupehound/dupehound/internal/output"
	"github.com/dupehound/dupehound/internal/report"
	"github.com/dupehound/dupehound/internal/service/analysis"
	"github.com/dupehound/dupehound/pkg/config"
	"github.com/dupehound/dupehound/pkg/refactor"
)

// AnalyzeInput is the base input for both tools.
type AnalyzeInput struct {
	Paths  []string `json:"paths,omitempty" jsonschema:"Paths to analyze. Defaults to current directory if empty."`
	Format string   `json:"format,omitempty" jsonschema:"Output format: toon (default) or json."`
}

// DuplicatesInput tunes duplicate detection.
type DuplicatesInput struct {
	AnalyzeInput
	MinLines  int      `json:"min_lines,omitempty" jsonschema:"Minimum line window for block-level matching. Default 4."`
	MinTokens int      `json:"min_tokens,omitempty" jsonschema:"Token window size for sequence matching. Default 30."`
	Threshold float64  `json:"threshold,omitempty" jsonschema:"Similarity threshold (0.0-1.0). Default 0.85."`
	Languages []string `json:"languages,omitempty" jsonschema:"Restrict to these language tags (e.g. python, javascript)."`
	Raw       bool     `json:"raw,omitempty" jsonschema:"Return every merged group without display-level suppression."`
}

// PreviewInput asks for refactoring previews over detected duplicates.
type PreviewInput struct {
	AnalyzeInput
	MinLines  int     `json:"min_lines,omitempty" jsonschema:"Minimum line window for block-level matching. Default 4."`
	Threshold float64 `json:"threshold,omitempty" jsonschema:"Similarity threshold (0.0-1.0). Default 0.85."`
	Select    string  `json:"select,omitempty" jsonschema:"1-based selection of suggestions, e.g. 1,3-5. Empty previews all."`
}

func getPaths(input AnalyzeInput) []string {
	if len(input.Paths) == 0 {
		return []string{"."}
	}
	return input.Paths
}

func getFormat(input AnalyzeInput) output.Format {
	if input.Format == "json" {
		return output.FormatJSON
	}
	return output.FormatTOON
}

func formatOutput(data any, format output.Format) (string, error) {
	if format == output.FormatJSON {
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return "", err
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

func toolError(message string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
	}, nil, nil
}

func handleAnalyzeDuplicates(ctx context.Context, req *mcp.CallToolRequest, input DuplicatesInput) (*mcp.CallToolResult, any, error) {
	svc := analysis.New(config.LoadOrDefault())
	result, err := svc.Run(ctx, getPaths(input.AnalyzeInput), analysis.Options{
		MinLines:            input.MinLines,
		MinTokens:           input.MinTokens,
		SimilarityThreshold: input.Threshold,
		Languages:           input.Languages,
	})
	if err != nil {
		return toolError(err.Error())
	}

	if !input.Raw {
		result.Duplicates = report.Suppress(result.Duplicates)
		result.DuplicatesFound = len(result.Duplicates)
	}
	return toolResult(result, getFormat(input.AnalyzeInput))
}

func handlePreviewRefactor(ctx context.Context, req *mcp.CallToolRequest, input PreviewInput) (*mcp.CallToolResult, any, error) {
	svc := analysis.New(config.LoadOrDefault())
	result, err := svc.Run(ctx, getPaths(input.AnalyzeInput), analysis.Options{
		MinLines:            input.MinLines,
		SimilarityThreshold: input.Threshold,
	})
	if err != nil {
		return toolError(err.Error())
	}

	plan := refactor.Plan(result.Duplicates)
	selected := plan
	if input.Select != "" {
		picked, err := refactor.ParseSelection(input.Select, len(plan))
		if err != nil {
			return toolError(err.Error())
		}
		selected = selected[:0:0]
		for _, i := range picked {
			selected = append(selected, plan[i-1])
		}
	}

	previews := make([]refactor.Preview, len(selected))
	for i, s := range selected {
		previews[i] = refactor.PreviewSuggestion(s)
	}
	return toolResult(struct {
		Suggestions int                `json:"suggestions" toon:"suggestions"`
		Previews    []refactor.Preview `json:"previews" toon:"previews"`
	}{len(plan), previews}, getFormat(input.AnalyzeInput))
}
