package analyzer

import (
	"regexp"
	"strings"

	"github.com/dupehound/dupehound/pkg/parser"
)

var (
	lineCommentPattern  = regexp.MustCompile(`//.*?\n`)
	blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)
	hashCommentPattern  = regexp.MustCompile(`#.*?\n`)
	tokenPattern        = regexp.MustCompile(`\w+|[^\w\s]`)

	templateLiteralPattern = regexp.MustCompile("(?s)`[^`]*`")
	annotationPattern      = regexp.MustCompile(`@\w+(?:\([^)]*\))?`)
	directivePattern       = regexp.MustCompile(`#\s*\w+[^\n]*\n`)
)

// genericTokens is the shared lexical pipeline: strip the three common
// comment styles, then split into words and individual punctuation.
func genericTokens(content string) []string {
	content = lineCommentPattern.ReplaceAllString(content, "\n")
	content = blockCommentPattern.ReplaceAllString(content, "")
	content = hashCommentPattern.ReplaceAllString(content, "\n")
	return tokenPattern.FindAllString(content, -1)
}

// genericPipeline handles every language without a dedicated pipeline.
type genericPipeline struct{}

func (genericPipeline) Tokenize(content string) []string {
	return genericTokens(content)
}

// pythonPipeline tokenizes through the tree-sitter AST so strings,
// comments, and operators are lexed exactly. Parse failures fall back to
// the generic pipeline rather than dropping the file.
type pythonPipeline struct{}

func (pythonPipeline) Tokenize(content string) []string {
	p := parser.New()
	defer p.Close()

	result, err := p.ParsePython([]byte(content))
	if err != nil {
		return genericTokens(content)
	}
	defer result.Close()
	return result.LeafTokens()
}

// javascriptPipeline blanks template literals (their interpolated bodies
// are noise) and canonicalizes arrow functions before the generic pass.
type javascriptPipeline struct{}

func (javascriptPipeline) Tokenize(content string) []string {
	content = templateLiteralPattern.ReplaceAllString(content, `""`)
	content = strings.ReplaceAll(content, "=>", "function")
	return genericTokens(content)
}

// javaPipeline strips annotations; they rarely change behavior but break
// otherwise-identical token runs.
type javaPipeline struct{}

func (javaPipeline) Tokenize(content string) []string {
	content = annotationPattern.ReplaceAllString(content, "")
	return genericTokens(content)
}

// cppPipeline strips preprocessor directives. Serves both C and C++.
type cppPipeline struct{}

func (cppPipeline) Tokenize(content string) []string {
	content = directivePattern.ReplaceAllString(content, "\n")
	return genericTokens(content)
}
