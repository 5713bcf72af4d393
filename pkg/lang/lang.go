// Package lang defines the language tags recognized by the scanner and the
// per-language analyzer dispatch.
package lang

import (
	"path/filepath"
	"strings"
)

// Language is a language tag attached to scanned files.
type Language string

const (
	Python     Language = "python"
	JavaScript Language = "javascript"
	HTML       Language = "html"
	CSS        Language = "css"
	Java       Language = "java"
	CPP        Language = "cpp"
	C          Language = "c"
	CSharp     Language = "csharp"
	PHP        Language = "php"
	Ruby       Language = "ruby"
	Go         Language = "go"
	Rust       Language = "rust"
	Kotlin     Language = "kotlin"
	Swift      Language = "swift"
	Unknown    Language = "unknown"
)

// String returns the tag as a plain string.
func (l Language) String() string { return string(l) }

// extensions maps each language to the file extensions it claims.
// The javascript tag covers TypeScript and JSX variants; the css tag covers
// the whole stylesheet family (preprocessor dialects included).
var extensions = map[Language][]string{
	Python:     {".py"},
	JavaScript: {".js", ".jsx", ".ts", ".tsx"},
	HTML:       {".html", ".htm"},
	CSS:        {".css", ".scss", ".sass", ".less", ".styl"},
	Java:       {".java"},
	CPP:        {".cpp", ".cc", ".cxx", ".hpp"},
	C:          {".c", ".h"},
	CSharp:     {".cs"},
	PHP:        {".php"},
	Ruby:       {".rb"},
	Go:         {".go"},
	Rust:       {".rs"},
	Kotlin:     {".kt"},
	Swift:      {".swift"},
}

var byExtension = func() map[string]Language {
	m := make(map[string]Language)
	for l, exts := range extensions {
		for _, ext := range exts {
			m[ext] = l
		}
	}
	return m
}()

// Detect determines the language from a file path.
func Detect(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	if l, ok := byExtension[ext]; ok {
		return l
	}
	return Unknown
}

// Parse converts a tag string to a Language, mapping unrecognized tags to
// Unknown.
func Parse(s string) Language {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := extensions[l]; ok {
		return l
	}
	return Unknown
}

// Extensions returns the file extensions claimed by the given languages.
// Order follows the input; unknown tags contribute nothing.
func Extensions(langs []Language) []string {
	var exts []string
	for _, l := range langs {
		exts = append(exts, extensions[l]...)
	}
	return exts
}

// All returns every known language tag.
func All() []Language {
	return []Language{
		Python, JavaScript, HTML, CSS, Java, CPP, C,
		CSharp, PHP, Ruby, Go, Rust, Kotlin, Swift,
	}
}

// IsStylesheet reports whether the language belongs to the stylesheet family.
func IsStylesheet(l Language) bool { return l == CSS }

// IsMarkup reports whether the language is a markup language that may embed
// style regions.
func IsMarkup(l Language) bool { return l == HTML }

// IsScript reports whether the language may carry CSS-in-JS template
// literals.
func IsScript(l Language) bool { return l == JavaScript }
