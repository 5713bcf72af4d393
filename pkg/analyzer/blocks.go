package analyzer

import (
	"regexp"
	"strings"

	"github.com/dupehound/dupehound/pkg/detect"
	"github.com/dupehound/dupehound/pkg/parser"
)

var (
	genericBlockPattern = regexp.MustCompile(`^\s*(def|function|func|method|class)\s+(\w+)`)
	jsFunctionPattern   = regexp.MustCompile(`function\s+(\w+)`)
	jsClassPattern      = regexp.MustCompile(`class\s+(\w+)`)
	javaMethodPattern   = regexp.MustCompile(`(?:public|private|protected)\s+[\w<>\[\]]+\s+(\w+)\s*\(`)
	javaClassPattern    = regexp.MustCompile(`class\s+(\w+)`)
)

// bodySlice joins the 1-based inclusive line range, clamped to the file.
// Regex extractors approximate end lines and can overshoot.
func bodySlice(lines []string, start, end int) string {
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return ""
	}
	return strings.Join(lines[start-1:end], "\n")
}

// lineAt converts a byte offset in content to a 1-based line number.
func lineAt(content string, offset int) int {
	return strings.Count(content[:offset], "\n") + 1
}

// genericBlocks scans line by line for definition-like keywords. End lines
// are a fixed-size approximation capped at the file end.
func genericBlocks(lines []string) []detect.CodeBlock {
	var blocks []detect.CodeBlock
	for i, line := range lines {
		m := genericBlockPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		kind := "function"
		if m[1] == "class" {
			kind = "class"
		}
		end := i + 20
		if end > len(lines) {
			end = len(lines)
		}
		blocks = append(blocks, detect.CodeBlock{
			Kind:      kind,
			Name:      m[2],
			StartLine: i + 1,
			EndLine:   end,
			Body:      bodySlice(lines, i+1, end),
		})
	}
	return blocks
}

func (genericPipeline) ExtractBlocks(content string, lines []string) []detect.CodeBlock {
	return genericBlocks(lines)
}

func (cppPipeline) ExtractBlocks(content string, lines []string) []detect.CodeBlock {
	return genericBlocks(lines)
}

// ExtractBlocks walks the Python AST for function and class definitions
// with exact spans and full body text.
func (pythonPipeline) ExtractBlocks(content string, lines []string) []detect.CodeBlock {
	p := parser.New()
	defer p.Close()

	result, err := p.ParsePython([]byte(content))
	if err != nil {
		return genericBlocks(lines)
	}
	defer result.Close()

	var blocks []detect.CodeBlock
	for _, def := range result.Definitions() {
		blocks = append(blocks, detect.CodeBlock{
			Kind:      def.Kind,
			Name:      def.Name,
			StartLine: def.StartLine,
			EndLine:   def.EndLine,
			Body:      def.Body,
		})
	}
	return blocks
}

func (javascriptPipeline) ExtractBlocks(content string, lines []string) []detect.CodeBlock {
	var blocks []detect.CodeBlock
	for _, m := range jsFunctionPattern.FindAllStringSubmatchIndex(content, -1) {
		start := lineAt(content, m[0])
		end := start + 10
		blocks = append(blocks, detect.CodeBlock{
			Kind:      "function",
			Name:      content[m[2]:m[3]],
			StartLine: start,
			EndLine:   end,
			Body:      bodySlice(lines, start, end),
		})
	}
	for _, m := range jsClassPattern.FindAllStringSubmatchIndex(content, -1) {
		start := lineAt(content, m[0])
		end := start + 20
		blocks = append(blocks, detect.CodeBlock{
			Kind:      "class",
			Name:      content[m[2]:m[3]],
			StartLine: start,
			EndLine:   end,
			Body:      bodySlice(lines, start, end),
		})
	}
	return blocks
}

func (javaPipeline) ExtractBlocks(content string, lines []string) []detect.CodeBlock {
	var blocks []detect.CodeBlock
	for _, m := range javaMethodPattern.FindAllStringSubmatchIndex(content, -1) {
		start := lineAt(content, m[0])
		end := start + 20
		blocks = append(blocks, detect.CodeBlock{
			Kind:      "method",
			Name:      content[m[2]:m[3]],
			StartLine: start,
			EndLine:   end,
			Body:      bodySlice(lines, start, end),
		})
	}
	for _, m := range javaClassPattern.FindAllStringSubmatchIndex(content, -1) {
		start := lineAt(content, m[0])
		end := start + 30
		blocks = append(blocks, detect.CodeBlock{
			Kind:      "class",
			Name:      content[m[2]:m[3]],
			StartLine: start,
			EndLine:   end,
			Body:      bodySlice(lines, start, end),
		})
	}
	return blocks
}
