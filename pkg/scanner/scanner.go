// Package scanner finds and loads source files eligible for duplicate
// detection, honoring config excludes and .gitignore files.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/dupehound/dupehound/internal/fileproc"
	"github.com/dupehound/dupehound/pkg/config"
	"github.com/dupehound/dupehound/pkg/detect"
	"github.com/dupehound/dupehound/pkg/lang"
)

// Scanner finds source files in a directory.
type Scanner struct {
	config    *config.Config
	languages map[lang.Language]bool
	matchers  []gitignore.Matcher
}

// New creates a file scanner. A nil config uses defaults.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Scanner{config: cfg}
	if len(cfg.Languages) > 0 {
		s.languages = make(map[lang.Language]bool, len(cfg.Languages))
		for _, name := range cfg.Languages {
			if l := lang.Parse(name); l != lang.Unknown {
				s.languages[l] = true
			}
		}
	}
	return s
}

// wants reports whether the scanner accepts files of a language.
func (s *Scanner) wants(l lang.Language) bool {
	if l == lang.Unknown {
		return false
	}
	if s.languages == nil {
		return true
	}
	return s.languages[l]
}

// findGitRoot finds the root of the git repository by looking for a .git
// directory. Returns empty string if not in a git repository.
func findGitRoot(start string) string {
	dir := start
	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadExcludePatterns combines config exclude patterns with .gitignore
// files. Config patterns use gitignore syntax.
func (s *Scanner) loadExcludePatterns(root string) {
	var patterns []gitignore.Pattern

	for _, pattern := range s.config.Exclude.Patterns {
		patterns = append(patterns, gitignore.ParsePattern(pattern, nil))
	}

	if s.config.Exclude.Gitignore {
		if gitRoot := findGitRoot(root); gitRoot != "" {
			// ReadPatterns walks every .gitignore under the git root.
			bfs := osfs.New(gitRoot)
			if gitPatterns, err := gitignore.ReadPatterns(bfs, nil); err == nil {
				patterns = append(patterns, gitPatterns...)
			}
		}
	}

	if len(patterns) > 0 {
		s.matchers = append(s.matchers, gitignore.NewMatcher(patterns))
	}
}

// isExcluded checks if a path matches any exclusion pattern.
func (s *Scanner) isExcluded(path string, isDir bool) bool {
	if len(s.matchers) == 0 {
		return false
	}

	pathParts := strings.Split(path, string(filepath.Separator))
	for _, m := range s.matchers {
		if m.Match(pathParts, isDir) {
			return true
		}
	}
	return false
}

// ScanDir recursively collects eligible source file paths under root.
// Symlinks that escape the root are skipped.
func (s *Scanner) ScanDir(root string) ([]string, error) {
	files := make([]string, 0, 1024)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, err
	}

	s.loadExcludePatterns(root)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		relPath, _ := filepath.Rel(root, path)

		if d.Type()&fs.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil || !isWithinRoot(resolved, absRoot) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			if s.isExcluded(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.isExcluded(relPath, false) || s.config.ShouldExclude(relPath) {
			return nil
		}
		if s.wants(lang.Detect(path)) {
			files = append(files, path)
		}

		return nil
	})

	return files, walkErr
}

// isWithinRoot checks if a path is contained within the root directory.
func isWithinRoot(path, root string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	absPath = filepath.Clean(absPath)
	root = filepath.Clean(root)

	return absPath == root || strings.HasPrefix(absPath, root+string(filepath.Separator))
}

// Load reads one file into a record shell: content, split lines, and
// language metadata. Tokens and blocks are filled later by the analyzer.
func Load(path string) (detect.FileRecord, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return detect.FileRecord{}, err
	}

	text := string(content)
	lines := strings.Split(text, "\n")
	// A trailing newline terminates the last line, it does not open a new one.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	return detect.FileRecord{
		Path:      path,
		Name:      filepath.Base(path),
		Extension: filepath.Ext(path),
		Language:  lang.Detect(path).String(),
		Content:   text,
		Lines:     lines,
		Size:      int64(len(content)),
		LineCount: len(lines),
	}, nil
}

// LoadAll reads files in parallel, skipping unreadable ones. Relative
// order of the surviving records matches the input path order. The
// onError callback, if set, receives each skipped path.
func LoadAll(paths []string, workers int, onProgress fileproc.ProgressFunc, onError fileproc.ErrorFunc) []detect.FileRecord {
	return fileproc.FilterMap(paths, workers,
		func(p string) string { return p },
		Load, onProgress, onError)
}

// FilterByMinLines drops records shorter than minLines. Whole-file
// matchers cannot produce a meaningful finding below the window size.
func FilterByMinLines(records []detect.FileRecord, minLines int) []detect.FileRecord {
	if minLines <= 1 {
		return records
	}
	kept := records[:0]
	for _, r := range records {
		if r.LineCount >= minLines {
			kept = append(kept, r)
		}
	}
	return kept
}
