package detect

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Type discriminates duplicate group variants. Consumers switch on it to
// interpret the payload fields.
type Type string

const (
	TypeExact         Type = "exact"
	TypeExactBlock    Type = "exact_block"
	TypeTokenSequence Type = "token_sequence"
	TypeFuzzy         Type = "fuzzy"
	TypeSimilarBlock  Type = "similar_block"
	TypeStructural    Type = "structural"
	TypeCSSBlock      Type = "css_block"
)

// String returns the string representation.
func (t Type) String() string {
	return string(t)
}

// Fixed confidence levels per matcher family. Exact matchers group by
// fingerprint equality and claim full confidence; token windows ignore
// formatting; structural matches only prove shape equivalence.
const (
	ConfidenceExact         = 1.0
	ConfidenceTokenSequence = 0.9
	ConfidenceStructural    = 0.85
)

// FileRecord is the analyzed view of one source file. It is produced
// upstream (scanner + analyzer) and treated as immutable by every matcher.
type FileRecord struct {
	Path      string   `json:"path"`
	Name      string   `json:"name"`
	Extension string   `json:"extension"`
	Language  string   `json:"language"`
	Content   string   `json:"content"`
	Lines     []string `json:"-"`
	Tokens    []string `json:"-"`
	Blocks    []CodeBlock
	Size      int64 `json:"size"`
	LineCount int   `json:"line_count"`
}

// CodeBlock is a named span inside a file (function, class, method, or a
// generic heuristic region). Start and end are 1-based inclusive; blocks may
// overlap.
type CodeBlock struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Body      string `json:"body,omitempty"`
}

// BlockRef locates one member of a block-bearing group. Line-addressed
// variants (exact_block, css_block) fill StartLine/EndLine/Content;
// name-addressed variants (structural, similar_block) fill Name.
type BlockRef struct {
	File      string `json:"file"`
	Name      string `json:"name,omitempty"`
	StartLine int    `json:"start_line,omitempty"`
	EndLine   int    `json:"end_line,omitempty"`
	Content   string `json:"content,omitempty"`
}

// TokenMatch locates one member of a token_sequence group: the window's
// tokens and its start index in the file's token stream.
type TokenMatch struct {
	File     string   `json:"file"`
	Tokens   []string `json:"tokens"`
	Position int      `json:"position"`
}

// Group is one duplicate finding. The set of populated payload fields
// depends on Type; every group has at least two distinct members.
type Group struct {
	Type       Type         `json:"type"`
	Hash       string       `json:"hash,omitempty"`
	Files      []string     `json:"files,omitempty"`
	Blocks     []BlockRef   `json:"blocks,omitempty"`
	Windows    []TokenMatch `json:"groups,omitempty"`
	Count      int          `json:"count,omitempty"`
	Lines      int          `json:"lines,omitempty"`
	TokenCount int          `json:"token_count,omitempty"`
	Similarity float64      `json:"similarity,omitempty"`
	Confidence float64      `json:"confidence"`
}

// Config holds the detection thresholds.
type Config struct {
	MinLines            int     `json:"min_lines"`
	MinTokens           int     `json:"min_tokens"`
	SimilarityThreshold float64 `json:"similarity_threshold"`
}

// Standard thresholds.
const (
	DefaultMinLines            = 4
	DefaultMinTokens           = 30
	DefaultSimilarityThreshold = 0.85
)

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		MinLines:            DefaultMinLines,
		MinTokens:           DefaultMinTokens,
		SimilarityThreshold: DefaultSimilarityThreshold,
	}
}

// Validate rejects configurations no matcher can run with. It is checked
// before any matcher executes.
func (c Config) Validate() error {
	if c.MinLines < 1 {
		return fmt.Errorf("min_lines must be >= 1, got %d", c.MinLines)
	}
	if c.MinTokens < 1 {
		return fmt.Errorf("min_tokens must be >= 1, got %d", c.MinTokens)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in [0,1], got %g", c.SimilarityThreshold)
	}
	return nil
}

// Analysis is the result envelope handed to reporters and the refactor
// planner.
type Analysis struct {
	TotalFiles      int     `json:"total_files"`
	ParsedFiles     int     `json:"parsed_files"`
	DuplicatesFound int     `json:"duplicates_found"`
	Duplicates      []Group `json:"duplicates"`
	Summary         Summary `json:"summary"`
}

// Summary aggregates the finding set.
type Summary struct {
	ByType         map[string]int `json:"by_type"`
	AvgConfidence  float64        `json:"avg_confidence"`
	P50Confidence  float64        `json:"p50_confidence"`
	P95Confidence  float64        `json:"p95_confidence"`
	DuplicateLines int            `json:"duplicate_lines"`
}

// NewAnalysis assembles the result envelope for a finished detection run.
func NewAnalysis(totalFiles, parsedFiles int, groups []Group) *Analysis {
	a := &Analysis{
		TotalFiles:      totalFiles,
		ParsedFiles:     parsedFiles,
		DuplicatesFound: len(groups),
		Duplicates:      groups,
		Summary:         Summary{ByType: make(map[string]int)},
	}

	if len(groups) == 0 {
		return a
	}

	confidences := make([]float64, len(groups))
	var total float64
	for i, g := range groups {
		a.Summary.ByType[string(g.Type)]++
		confidences[i] = g.Confidence
		total += g.Confidence

		// Each extra occurrence of a line-addressed group is removable.
		if g.Lines > 0 && g.Count > 1 {
			a.Summary.DuplicateLines += g.Lines * (g.Count - 1)
		}
	}

	a.Summary.AvgConfidence = total / float64(len(groups))
	sort.Float64s(confidences)
	a.Summary.P50Confidence = stat.Quantile(0.50, stat.Empirical, confidences, nil)
	a.Summary.P95Confidence = stat.Quantile(0.95, stat.Empirical, confidences, nil)
	return a
}
