package detect

import (
	"context"
	"regexp"

	"github.com/cespare/xxhash/v2"
)

var structuralRules = []struct {
	pattern     string
	replacement string
}{
	// Order is load-bearing: VAR placeholders from the first rule are
	// themselves uppercase-leading and get rewritten by the second.
	{`\b[a-z_][a-zA-Z0-9_]*\b`, "VAR"},
	{`\b[A-Z][a-zA-Z0-9_]*\b`, "FUNC"},
	{`\b\d+\b`, "NUM"},
	{`"[^"]*"`, "STR"},
	{`'[^']*'`, "STR"},
}

var structuralPatterns = func() []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(structuralRules))
	for i, rule := range structuralRules {
		compiled[i] = regexp.MustCompile(rule.pattern)
	}
	return compiled
}()

// structuralSignature reduces a block body to its shape: identifiers,
// numbers, and string literals become fixed placeholders while control
// structure and punctuation survive.
func structuralSignature(body string) string {
	sig := body
	for i, rule := range structuralRules {
		sig = structuralPatterns[i].ReplaceAllString(sig, rule.replacement)
	}
	return sig
}

type structuralEntry struct {
	file      string
	name      string
	signature string
}

// structuralGroups pairs blocks from different files whose normalized
// signatures are byte-identical. Signatures are pre-bucketed by a fast
// non-persisted hash; candidates inside a bucket are verified by exact
// string comparison, so a hash collision can never produce a false pair.
func (d *Detector) structuralGroups(ctx context.Context, files []FileRecord) []Group {
	type bucket struct {
		entries []structuralEntry
	}
	byHash := make(map[uint64]*bucket)
	var order []uint64

	for _, f := range files {
		for _, b := range f.Blocks {
			if b.Body == "" {
				continue
			}
			sig := structuralSignature(b.Body)
			if sig == "" {
				continue
			}
			h := xxhash.Sum64String(sig)
			bk, ok := byHash[h]
			if !ok {
				bk = &bucket{}
				byHash[h] = bk
				order = append(order, h)
			}
			bk.entries = append(bk.entries, structuralEntry{
				file:      f.Path,
				name:      b.Name,
				signature: sig,
			})
		}
	}

	var groups []Group
	for _, h := range order {
		if ctx.Err() != nil {
			return groups
		}
		entries := byHash[h].entries
		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				if entries[i].file == entries[j].file {
					continue
				}
				if entries[i].signature != entries[j].signature {
					continue
				}
				groups = append(groups, Group{
					Type: TypeStructural,
					Blocks: []BlockRef{
						{File: entries[i].file, Name: entries[i].name},
						{File: entries[j].file, Name: entries[j].name},
					},
					Confidence: ConfidenceStructural,
				})
			}
		}
	}
	return groups
}
