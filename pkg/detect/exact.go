package detect

import (
	"regexp"
	"strings"
)

// buckets groups items under a fingerprint while remembering first-seen key
// order, so emission order is reproducible run to run.
type buckets[T any] struct {
	order []Fingerprint
	items map[Fingerprint][]T
}

func newBuckets[T any]() *buckets[T] {
	return &buckets[T]{items: make(map[Fingerprint][]T)}
}

func (b *buckets[T]) add(fp Fingerprint, item T) {
	if _, ok := b.items[fp]; !ok {
		b.order = append(b.order, fp)
	}
	b.items[fp] = append(b.items[fp], item)
}

// each visits buckets in first-seen order.
func (b *buckets[T]) each(fn func(fp Fingerprint, items []T)) {
	for _, fp := range b.order {
		fn(fp, b.items[fp])
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// normalizeWhitespace collapses whitespace runs to single spaces and trims
// the ends, so files differing only in formatting hash identically.
func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// exactFileGroups groups whole files whose whitespace-normalized content is
// identical.
func (d *Detector) exactFileGroups(files []FileRecord) []Group {
	byHash := newBuckets[FileRecord]()
	for _, f := range files {
		byHash.add(HashText(normalizeWhitespace(f.Content)), f)
	}

	var groups []Group
	byHash.each(func(fp Fingerprint, members []FileRecord) {
		if len(members) < 2 {
			return
		}
		paths := make([]string, len(members))
		for i, m := range members {
			paths[i] = m.Path
		}
		groups = append(groups, Group{
			Type:       TypeExact,
			Hash:       fp.String(),
			Files:      paths,
			Count:      len(members),
			Lines:      members[0].LineCount,
			Confidence: ConfidenceExact,
		})
	})
	return groups
}

// exactBlockGroups slides a MinLines window over every file and groups
// byte-identical windows across the whole batch.
func (d *Detector) exactBlockGroups(files []FileRecord) []Group {
	minLines := d.config.MinLines
	byHash := newBuckets[BlockRef]()

	for _, f := range files {
		for start := 0; start+minLines <= len(f.Lines); start++ {
			window := f.Lines[start : start+minLines]

			// Density guard: mostly-blank windows match everything and
			// mean nothing.
			nonBlank := 0
			for _, line := range window {
				if strings.TrimSpace(line) != "" {
					nonBlank++
				}
			}
			if float64(nonBlank) < float64(minLines)*0.5 {
				continue
			}

			content := strings.Join(window, "\n")
			byHash.add(HashText(content), BlockRef{
				File:      f.Path,
				StartLine: start + 1,
				EndLine:   start + minLines,
				Content:   content,
			})
		}
	}

	var groups []Group
	byHash.each(func(fp Fingerprint, members []BlockRef) {
		if len(members) < 2 {
			return
		}
		groups = append(groups, Group{
			Type:       TypeExactBlock,
			Hash:       fp.String(),
			Blocks:     members,
			Count:      len(members),
			Lines:      minLines,
			Confidence: ConfidenceExact,
		})
	})
	return groups
}
