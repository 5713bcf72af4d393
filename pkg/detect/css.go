package detect

import (
	"regexp"
	"strings"

	"github.com/dupehound/dupehound/pkg/lang"
)

var (
	styleTagPattern       = regexp.MustCompile(`(?is)<style[^>]*>(.*?)</style>`)
	templateLiteralRegexp = regexp.MustCompile("(?s)`([^`]*)`")
	cssDeclPattern        = regexp.MustCompile(`:\s*[^;\n]+;?`)
	cssCommentPattern     = regexp.MustCompile(`(?s)/\*.*?\*/`)
	cssPunctPattern       = regexp.MustCompile(`\s*([:;{},])\s*`)
)

// styleSegment is one candidate region of style text, regardless of whether
// it came from a stylesheet file, a markup <style> region, or a template
// literal.
type styleSegment struct {
	file      string
	startLine int
	endLine   int
	text      string
}

// normalizeCSS strips block comments, collapses whitespace, and removes
// spacing around structural punctuation so formatting differences vanish.
func normalizeCSS(s string) string {
	s = cssCommentPattern.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = cssPunctPattern.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// looksLikeCSS is the heuristic for treating a template literal as embedded
// style text: braces plus at least one property:value declaration.
func looksLikeCSS(s string) bool {
	return strings.Contains(s, "{") && strings.Contains(s, "}") && cssDeclPattern.MatchString(s)
}

// extractStyleSegments pulls candidate style text out of one file.
func extractStyleSegments(f FileRecord) []styleSegment {
	l := lang.Parse(f.Language)
	switch {
	case lang.IsStylesheet(l):
		end := f.LineCount
		if end == 0 {
			end = 1
		}
		return []styleSegment{{file: f.Path, startLine: 1, endLine: end, text: f.Content}}

	case lang.IsMarkup(l):
		var segs []styleSegment
		for _, m := range styleTagPattern.FindAllStringSubmatchIndex(f.Content, -1) {
			body := f.Content[m[2]:m[3]]
			start := strings.Count(f.Content[:m[2]], "\n") + 1
			segs = append(segs, styleSegment{
				file:      f.Path,
				startLine: start,
				endLine:   start + strings.Count(body, "\n"),
				text:      body,
			})
		}
		return segs

	case lang.IsScript(l):
		var segs []styleSegment
		for _, m := range templateLiteralRegexp.FindAllStringSubmatchIndex(f.Content, -1) {
			body := f.Content[m[2]:m[3]]
			if !looksLikeCSS(body) {
				continue
			}
			start := strings.Count(f.Content[:m[2]], "\n") + 1
			segs = append(segs, styleSegment{
				file:      f.Path,
				startLine: start,
				endLine:   start + strings.Count(body, "\n"),
				text:      body,
			})
		}
		return segs
	}
	return nil
}

// stylesheetGroups groups style segments across all source contexts by
// their normalized fingerprint. Segments shorter than MinLines are noise
// and are dropped before hashing.
func (d *Detector) stylesheetGroups(files []FileRecord) []Group {
	byHash := newBuckets[BlockRef]()

	for _, f := range files {
		for _, seg := range extractStyleSegments(f) {
			if seg.text == "" {
				continue
			}
			// Line count over the raw segment text, not the reported span.
			if strings.Count(seg.text, "\n")+1 < d.config.MinLines {
				continue
			}
			normalized := normalizeCSS(seg.text)
			if normalized == "" {
				continue
			}
			byHash.add(HashText(normalized), BlockRef{
				File:      seg.file,
				StartLine: seg.startLine,
				EndLine:   seg.endLine,
				Content:   strings.TrimSpace(seg.text),
			})
		}
	}

	var groups []Group
	byHash.each(func(fp Fingerprint, members []BlockRef) {
		if len(members) < 2 {
			return
		}
		lines := members[0].EndLine - members[0].StartLine + 1
		if lines < 1 {
			lines = 1
		}
		groups = append(groups, Group{
			Type:       TypeCSSBlock,
			Hash:       fp.String(),
			Blocks:     members,
			Count:      len(members),
			Lines:      lines,
			Confidence: ConfidenceExact,
		})
	})
	return groups
}
