// Package report prepares detection results for human-facing output:
// suppressing redundant findings and rendering groups with code snippets.
//
// Suppression is display policy only. The persisted analysis keeps every
// merged group; this package narrows what a terminal reader sees.
package report

import (
	"sort"
	"strings"

	"github.com/dupehound/dupehound/pkg/detect"
)

// coverageThreshold is the fraction of a block's line interval that must
// already be claimed by earlier findings before the block counts as told.
const coverageThreshold = 0.6

// interval is a 1-based inclusive line range inside one file.
type interval struct {
	start, end int
}

func (iv interval) length() int {
	return iv.end - iv.start + 1
}

// overlap returns the number of lines shared by two intervals.
func (iv interval) overlap(other interval) int {
	lo := max(iv.start, other.start)
	hi := min(iv.end, other.end)
	if hi < lo {
		return 0
	}
	return hi - lo + 1
}

// coverage is the fraction of iv already claimed by the given intervals.
// Claimed intervals may overlap each other; merging them first keeps the
// fraction honest.
func coverage(iv interval, claimed []interval) float64 {
	if iv.length() <= 0 || len(claimed) == 0 {
		return 0
	}

	merged := make([]interval, len(claimed))
	copy(merged, claimed)
	sort.Slice(merged, func(i, j int) bool { return merged[i].start < merged[j].start })

	covered := 0
	cursor := iv.start
	for _, c := range merged {
		if c.end < cursor {
			continue
		}
		lo := max(c.start, cursor)
		hi := min(c.end, iv.end)
		if hi >= lo {
			covered += hi - lo + 1
			cursor = hi + 1
		}
		if cursor > iv.end {
			break
		}
	}
	return float64(covered) / float64(iv.length())
}

// fileKey joins a group's file set into a comparable identity, independent
// of member order.
func fileKey(files []string) string {
	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

// Suppress drops findings that restate what an earlier group in the
// sequence already showed: repeated content hashes, repeated whole-file
// tuples, and line-addressed blocks whose intervals are mostly covered by
// accepted findings in the same files. Input order is preserved, so the
// strongest finding for a region (matchers run in confidence order
// upstream) survives.
func Suppress(groups []detect.Group) []detect.Group {
	seenHashes := make(map[string]bool)
	seenFileSets := make(map[string]bool)
	claimed := make(map[string][]interval)

	var kept []detect.Group
	for _, g := range groups {
		if g.Hash != "" {
			if seenHashes[g.Hash] {
				continue
			}
		}

		switch g.Type {
		case detect.TypeExact, detect.TypeFuzzy:
			key := fileKey(g.Files)
			if seenFileSets[key] {
				continue
			}
			seenFileSets[key] = true

		case detect.TypeExactBlock, detect.TypeCSSBlock:
			if suppressedByCoverage(g, claimed) {
				continue
			}
			for _, b := range g.Blocks {
				if b.StartLine > 0 && b.EndLine >= b.StartLine {
					claimed[b.File] = append(claimed[b.File], interval{b.StartLine, b.EndLine})
				}
			}
		}

		if g.Hash != "" {
			seenHashes[g.Hash] = true
		}
		kept = append(kept, g)
	}
	return kept
}

// suppressedByCoverage reports whether every line-addressed member of the
// group is already mostly visible through accepted findings.
func suppressedByCoverage(g detect.Group, claimed map[string][]interval) bool {
	if len(g.Blocks) == 0 {
		return false
	}
	for _, b := range g.Blocks {
		if b.StartLine <= 0 || b.EndLine < b.StartLine {
			return false
		}
		iv := interval{b.StartLine, b.EndLine}
		if coverage(iv, claimed[b.File]) < coverageThreshold {
			return false
		}
	}
	return true
}

// FilterMinLines drops line-addressed groups shorter than minLines. Groups
// without a line span pass through.
func FilterMinLines(groups []detect.Group, minLines int) []detect.Group {
	if minLines <= 0 {
		return groups
	}
	var kept []detect.Group
	for _, g := range groups {
		if g.Lines > 0 && g.Lines < minLines {
			continue
		}
		kept = append(kept, g)
	}
	return kept
}
