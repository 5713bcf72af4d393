package detect

import (
	"context"
	"regexp"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

var wordPattern = regexp.MustCompile(`\w+`)

// fuzzyFileGroups compares every unordered file pair. Pairs where both
// files carry tokens are scored by Jaccard over their token sets; otherwise
// the score falls back to sequence alignment over raw lines. The pass is
// quadratic, so cancellation is honored at each outer iteration and partial
// results are returned.
func (d *Detector) fuzzyFileGroups(ctx context.Context, files []FileRecord) []Group {
	interner := newTokenInterner()
	sets := make([]*roaring.Bitmap, len(files))
	for i, f := range files {
		if len(f.Tokens) > 0 {
			sets[i] = interner.bitmap(f.Tokens)
		}
	}

	var groups []Group
	for i := 0; i < len(files); i++ {
		if ctx.Err() != nil {
			return groups
		}
		for j := i + 1; j < len(files); j++ {
			var sim float64
			if sets[i] != nil && sets[j] != nil {
				sim = jaccard(sets[i], sets[j])
			} else {
				sim = sequenceRatio(files[i].Lines, files[j].Lines)
			}
			if sim >= d.config.SimilarityThreshold {
				groups = append(groups, Group{
					Type:       TypeFuzzy,
					Files:      []string{files[i].Path, files[j].Path},
					Similarity: sim,
					Confidence: sim,
				})
			}
		}
	}
	return groups
}

// blockTokenSet approximates a block's token set by word-extracting the
// slice of its file's lines. Block spans from heuristic extractors can
// overshoot the file, so the slice is clamped.
func blockTokenSet(f FileRecord, b CodeBlock) []string {
	start := b.StartLine - 1
	end := b.EndLine
	if start < 0 {
		start = 0
	}
	if end > len(f.Lines) {
		end = len(f.Lines)
	}
	if start >= end {
		return nil
	}
	return wordPattern.FindAllString(strings.Join(f.Lines[start:end], " "), -1)
}

type blockEntry struct {
	file string
	name string
	set  *roaring.Bitmap
}

// similarBlockGroups compares every unordered pair of analyzer-discovered
// blocks from different files by Jaccard over their word sets.
func (d *Detector) similarBlockGroups(ctx context.Context, files []FileRecord) []Group {
	interner := newTokenInterner()
	var entries []blockEntry
	for _, f := range files {
		for _, b := range f.Blocks {
			entries = append(entries, blockEntry{
				file: f.Path,
				name: b.Name,
				set:  interner.bitmap(blockTokenSet(f, b)),
			})
		}
	}

	var groups []Group
	for i := 0; i < len(entries); i++ {
		if ctx.Err() != nil {
			return groups
		}
		for j := i + 1; j < len(entries); j++ {
			if entries[i].file == entries[j].file {
				continue
			}
			sim := jaccard(entries[i].set, entries[j].set)
			if sim >= d.config.SimilarityThreshold {
				groups = append(groups, Group{
					Type: TypeSimilarBlock,
					Blocks: []BlockRef{
						{File: entries[i].file, Name: entries[i].name},
						{File: entries[j].file, Name: entries[j].name},
					},
					Similarity: sim,
					Confidence: sim,
				})
			}
		}
	}
	return groups
}
