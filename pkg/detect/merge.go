package detect

import (
	"sort"
	"strconv"
	"strings"
)

// identityKey renders the variant-specific identity of a group as a stable
// string. File-set variants key on the sorted path tuple alone, so an exact
// and a fuzzy finding over the same file pair are one finding and the
// earlier (stronger) one wins. Block-bearing variants key on the ordered
// member list plus the type tag; token windows key on their (file,
// position) list.
func identityKey(g Group) string {
	var sb strings.Builder

	switch g.Type {
	case TypeExact, TypeFuzzy:
		paths := make([]string, len(g.Files))
		copy(paths, g.Files)
		sort.Strings(paths)
		return strings.Join(paths, "\x00")
	}

	sb.WriteString(string(g.Type))
	sb.WriteByte('\x00')

	switch g.Type {
	case TypeTokenSequence:
		for _, w := range g.Windows {
			sb.WriteString(w.File)
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(w.Position))
			sb.WriteByte('\x00')
		}

	case TypeStructural, TypeSimilarBlock:
		for _, b := range g.Blocks {
			sb.WriteString(b.File)
			sb.WriteByte(':')
			sb.WriteString(b.Name)
			sb.WriteByte('\x00')
		}

	default: // exact_block, css_block
		for _, b := range g.Blocks {
			sb.WriteString(b.File)
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(b.StartLine))
			sb.WriteByte('-')
			sb.WriteString(strconv.Itoa(b.EndLine))
			sb.WriteByte('\x00')
		}
	}
	return sb.String()
}

// mergeGroups deduplicates the concatenated matcher outputs. First
// occurrence wins and insertion order is preserved, so the merged sequence
// is deterministic whenever the matcher outputs are.
func mergeGroups(groups []Group) []Group {
	seen := make(map[string]struct{}, len(groups))
	merged := make([]Group, 0, len(groups))
	for _, g := range groups {
		key := identityKey(g)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, g)
	}
	return merged
}
