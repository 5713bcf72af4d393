package report

import (
	"fmt"
	"strings"

	"github.com/dupehound/dupehound/internal/output"
	"github.com/dupehound/dupehound/pkg/detect"
	"github.com/dupehound/dupehound/pkg/lang"
)

// Options controls how much detail the rendered report carries.
type Options struct {
	ShowSnippets bool
	MaxShow      int // max groups rendered in detail, 0 = all
	MaxBlocks    int // max members shown per group, 0 = all
	SnippetLines int // max lines per snippet, 0 = all
}

// DefaultOptions matches the CLI defaults: a bounded report without
// snippet bodies.
func DefaultOptions() Options {
	return Options{
		MaxShow:      20,
		MaxBlocks:    5,
		SnippetLines: 12,
	}
}

// Build assembles a Renderable report from a finished analysis.
func Build(analysis *detect.Analysis, opts Options) *output.Report {
	r := &output.Report{
		Title: "Duplicate Code Report",
		Data:  analysis,
	}

	r.Sections = append(r.Sections, summaryTable(analysis))
	if len(analysis.Duplicates) > 0 {
		r.Sections = append(r.Sections, findingsTable(analysis.Duplicates))
		r.Sections = append(r.Sections, detailSections(analysis.Duplicates, opts)...)
	}
	return r
}

func summaryTable(analysis *detect.Analysis) *output.Table {
	rows := [][]string{
		{"Files scanned", fmt.Sprintf("%d", analysis.TotalFiles)},
		{"Files analyzed", fmt.Sprintf("%d", analysis.ParsedFiles)},
		{"Duplicate groups", fmt.Sprintf("%d", analysis.DuplicatesFound)},
		{"Duplicate lines", fmt.Sprintf("%d", analysis.Summary.DuplicateLines)},
	}
	if analysis.DuplicatesFound > 0 {
		rows = append(rows,
			[]string{"Avg confidence", fmt.Sprintf("%.2f", analysis.Summary.AvgConfidence)},
			[]string{"P50 confidence", fmt.Sprintf("%.2f", analysis.Summary.P50Confidence)},
			[]string{"P95 confidence", fmt.Sprintf("%.2f", analysis.Summary.P95Confidence)},
		)
	}
	for _, t := range []detect.Type{
		detect.TypeExact, detect.TypeExactBlock, detect.TypeTokenSequence,
		detect.TypeFuzzy, detect.TypeSimilarBlock, detect.TypeStructural,
		detect.TypeCSSBlock,
	} {
		if n := analysis.Summary.ByType[string(t)]; n > 0 {
			rows = append(rows, []string{"  " + string(t), fmt.Sprintf("%d", n)})
		}
	}
	return output.NewTable("Summary", []string{"Metric", "Value"}, rows, nil, analysis.Summary)
}

func findingsTable(groups []detect.Group) *output.Table {
	rows := make([][]string, len(groups))
	for i, g := range groups {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			string(g.Type),
			fmt.Sprintf("%d", groupCount(g)),
			lineSpanLabel(g),
			fmt.Sprintf("%.2f", g.Confidence),
			firstLocation(g),
		}
	}
	return output.NewTable("Findings",
		[]string{"#", "Type", "Count", "Lines", "Confidence", "Location"},
		rows, nil, groups)
}

func groupCount(g detect.Group) int {
	if g.Count > 0 {
		return g.Count
	}
	if n := len(g.Blocks); n > 0 {
		return n
	}
	if n := len(g.Windows); n > 0 {
		return n
	}
	return len(g.Files)
}

func lineSpanLabel(g detect.Group) string {
	if g.Lines > 0 {
		return fmt.Sprintf("%d", g.Lines)
	}
	if g.TokenCount > 0 {
		return fmt.Sprintf("%d tok", g.TokenCount)
	}
	return "-"
}

func firstLocation(g detect.Group) string {
	if len(g.Files) > 0 {
		return g.Files[0]
	}
	if len(g.Blocks) > 0 {
		b := g.Blocks[0]
		if b.StartLine > 0 {
			return fmt.Sprintf("%s:%d", b.File, b.StartLine)
		}
		return b.File
	}
	if len(g.Windows) > 0 {
		return g.Windows[0].File
	}
	return "-"
}

func detailSections(groups []detect.Group, opts Options) []output.Renderable {
	shown := groups
	if opts.MaxShow > 0 && len(shown) > opts.MaxShow {
		shown = shown[:opts.MaxShow]
	}

	var sections []output.Renderable
	for i, g := range shown {
		sections = append(sections, groupSection(i+1, g, opts))
	}
	if len(shown) < len(groups) {
		sections = append(sections, &output.Section{
			Content: fmt.Sprintf("... and %d more groups (raise --max-show to see them)", len(groups)-len(shown)),
		})
	}
	return sections
}

func groupSection(index int, g detect.Group, opts Options) *output.Section {
	s := &output.Section{
		Title: fmt.Sprintf("Group %d: %s (confidence %.2f)", index, g.Type, g.Confidence),
		Data:  g,
	}

	var lines []string
	if g.Similarity > 0 {
		lines = append(lines, fmt.Sprintf("similarity: %.2f", g.Similarity))
	}
	for _, f := range g.Files {
		lines = append(lines, "  "+f)
	}

	members := g.Blocks
	if opts.MaxBlocks > 0 && len(members) > opts.MaxBlocks {
		members = members[:opts.MaxBlocks]
	}
	for _, b := range members {
		switch {
		case b.Name != "":
			lines = append(lines, fmt.Sprintf("  %s  %s", b.File, b.Name))
		case b.StartLine > 0:
			lines = append(lines, fmt.Sprintf("  %s:%d-%d", b.File, b.StartLine, b.EndLine))
		default:
			lines = append(lines, "  "+b.File)
		}
	}
	if len(members) < len(g.Blocks) {
		lines = append(lines, fmt.Sprintf("  ... %d more members", len(g.Blocks)-len(members)))
	}

	windows := g.Windows
	if opts.MaxBlocks > 0 && len(windows) > opts.MaxBlocks {
		windows = windows[:opts.MaxBlocks]
	}
	for _, w := range windows {
		lines = append(lines, fmt.Sprintf("  %s @ token %d", w.File, w.Position))
	}
	if len(windows) < len(g.Windows) {
		lines = append(lines, fmt.Sprintf("  ... %d more windows", len(g.Windows)-len(windows)))
	}

	if opts.ShowSnippets {
		if snippet := groupSnippet(g, opts.SnippetLines); snippet != "" {
			lines = append(lines, "", snippet)
		}
	}

	s.Content = strings.Join(lines, "\n")
	return s
}

// groupSnippet renders the first member's content as a fenced block. Only
// members that carry content qualify.
func groupSnippet(g detect.Group, maxLines int) string {
	for _, b := range g.Blocks {
		if b.Content == "" {
			continue
		}
		body := b.Content
		if maxLines > 0 {
			split := strings.Split(body, "\n")
			if len(split) > maxLines {
				split = append(split[:maxLines], "...")
			}
			body = strings.Join(split, "\n")
		}
		return fmt.Sprintf("```%s\n%s\n```", FenceLanguage(b.File), body)
	}
	return ""
}

// FenceLanguage guesses a markdown fence tag from a file path.
func FenceLanguage(path string) string {
	switch l := lang.Detect(path); l {
	case lang.Unknown:
		return ""
	case lang.JavaScript:
		return "js"
	default:
		return l.String()
	}
}
