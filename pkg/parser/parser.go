// Package parser wraps tree-sitter for languages analyzed through a real
// AST instead of regex heuristics. Python is the only such language today:
// its tokenizer and block extractor both need accurate spans.
package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parser wraps a tree-sitter parser instance. Instances are not safe for
// concurrent use; create one per worker.
type Parser struct {
	parser *sitter.Parser
}

// Result holds a parsed tree together with its source bytes.
type Result struct {
	Tree   *sitter.Tree
	Source []byte
}

// New creates a new parser instance.
func New() *Parser {
	return &Parser{parser: sitter.NewParser()}
}

// ParsePython parses Python source and returns the AST.
func (p *Parser) ParsePython(source []byte) (*Result, error) {
	p.parser.SetLanguage(python.GetLanguage())
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	return &Result{Tree: tree, Source: source}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// Close releases the parsed tree.
func (r *Result) Close() {
	if r.Tree != nil {
		r.Tree.Close()
	}
}

// Visitor visits AST nodes; returning false stops descent into the node.
type Visitor func(node *sitter.Node) bool

// Walk traverses the AST calling visitor for each node.
func Walk(node *sitter.Node, visitor Visitor) {
	if node == nil {
		return
	}
	if !visitor(node) {
		return
	}
	for i := range int(node.ChildCount()) {
		Walk(node.Child(i), visitor)
	}
}

// Text extracts the source text for a node. Returns empty string if the
// node is nil or its byte offsets are out of bounds.
func Text(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > end || end > uint32(len(source)) {
		return ""
	}
	return string(source[start:end])
}

// Definition is a named function or class span.
type Definition struct {
	Kind      string
	Name      string
	StartLine int
	EndLine   int
	Body      string
}

// Definitions extracts every function and class definition with its real
// span and body text.
func (r *Result) Definitions() []Definition {
	var defs []Definition
	Walk(r.Tree.RootNode(), func(node *sitter.Node) bool {
		var kind string
		switch node.Type() {
		case "function_definition":
			kind = "function"
		case "class_definition":
			kind = "class"
		default:
			return true
		}

		name := Text(node.ChildByFieldName("name"), r.Source)
		defs = append(defs, Definition{
			Kind:      kind,
			Name:      name,
			StartLine: int(node.StartPoint().Row) + 1,
			EndLine:   int(node.EndPoint().Row) + 1,
			Body:      Text(node, r.Source),
		})
		return true
	})
	return defs
}

// LeafTokens returns the source text of every leaf node in document order,
// skipping comments. This is the AST-accurate token stream.
func (r *Result) LeafTokens() []string {
	var tokens []string
	Walk(r.Tree.RootNode(), func(node *sitter.Node) bool {
		if node.Type() == "comment" {
			return false
		}
		if node.ChildCount() == 0 {
			if text := Text(node, r.Source); text != "" {
				tokens = append(tokens, text)
			}
			return false
		}
		return true
	})
	return tokens
}
