// Package analyzer turns raw scanned files into analyzed file records:
// token streams plus named code blocks, produced by per-language pipelines.
package analyzer

import (
	"github.com/dupehound/dupehound/internal/fileproc"
	"github.com/dupehound/dupehound/pkg/detect"
	"github.com/dupehound/dupehound/pkg/lang"
)

// Pipeline provides the analysis capabilities for one language: a
// tokenizer and a block extractor. Implementations must be stateless and
// safe for concurrent use.
type Pipeline interface {
	Tokenize(content string) []string
	ExtractBlocks(content string, lines []string) []detect.CodeBlock
}

// Analyzer dispatches files to language pipelines. Dispatch is an explicit
// table lookup with a generic fallback; there is no global registry.
type Analyzer struct {
	pipelines map[lang.Language]Pipeline
	fallback  Pipeline
	workers   int
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithWorkers sets the parallelism for batch parsing (<= 0 uses the
// fileproc default).
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		a.workers = n
	}
}

// WithPipeline overrides the pipeline for one language.
func WithPipeline(l lang.Language, p Pipeline) Option {
	return func(a *Analyzer) {
		a.pipelines[l] = p
	}
}

// New creates an analyzer with the standard language table: Python through
// its native AST, JavaScript/Java/C-family through regex pipelines, and a
// generic fallback for everything else.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		pipelines: map[lang.Language]Pipeline{
			lang.Python:     pythonPipeline{},
			lang.JavaScript: javascriptPipeline{},
			lang.Java:       javaPipeline{},
			lang.C:          cppPipeline{},
			lang.CPP:        cppPipeline{},
		},
		fallback: genericPipeline{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// pipelineFor returns the pipeline for a language tag.
func (a *Analyzer) pipelineFor(l lang.Language) Pipeline {
	if p, ok := a.pipelines[l]; ok {
		return p
	}
	return a.fallback
}

// ParseFile fills in the token stream and block list of a single record.
func (a *Analyzer) ParseFile(f detect.FileRecord) detect.FileRecord {
	p := a.pipelineFor(lang.Parse(f.Language))
	f.Tokens = p.Tokenize(f.Content)
	f.Blocks = p.ExtractBlocks(f.Content, f.Lines)
	return f
}

// Parse analyzes a batch in parallel, preserving input order so downstream
// detection stays deterministic.
func (a *Analyzer) Parse(files []detect.FileRecord, onProgress fileproc.ProgressFunc) []detect.FileRecord {
	return fileproc.Map(files, a.workers, a.ParseFile, onProgress)
}
