package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dupehound/dupehound/pkg/config"
	"github.com/dupehound/dupehound/pkg/detect"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false
	cfg.Cache.Enabled = false
	return cfg
}

func TestRunFindsExactDuplicates(t *testing.T) {
	root := t.TempDir()
	content := "def load(path):\n    with open(path) as f:\n        return f.read()\n\nprint(load('x'))\n"
	writeFile(t, root, "a.py", content)
	writeFile(t, root, "sub/b.py", content)
	writeFile(t, root, "c.py", "import sys\n\nsys.exit(0)\n\n# different\n")

	var scanned int
	analysis, err := New(testConfig()).Run(context.Background(), []string{root}, Options{
		OnScanned: func(n int) { scanned = n },
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if scanned != 3 {
		t.Errorf("scanned = %d, want 3", scanned)
	}
	if analysis.TotalFiles != 3 {
		t.Errorf("TotalFiles = %d, want 3", analysis.TotalFiles)
	}

	var exact []detect.Group
	for _, g := range analysis.Duplicates {
		if g.Type == detect.TypeExact {
			exact = append(exact, g)
		}
	}
	if len(exact) != 1 || exact[0].Count != 2 {
		t.Errorf("exact groups = %+v", exact)
	}
}

func TestRunSingleFilePaths(t *testing.T) {
	root := t.TempDir()
	content := "a = 1\nb = 2\nc = 3\nd = 4\n"
	writeFile(t, root, "x.py", content)
	writeFile(t, root, "y.py", content)

	analysis, err := New(testConfig()).Run(context.Background(),
		[]string{filepath.Join(root, "x.py"), filepath.Join(root, "y.py")}, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if analysis.DuplicatesFound == 0 {
		t.Error("expected findings for identical file pair")
	}
}

func TestRunMissingPath(t *testing.T) {
	_, err := New(testConfig()).Run(context.Background(),
		[]string{filepath.Join(t.TempDir(), "nope")}, Options{})
	if err == nil {
		t.Error("expected error for missing path")
	}
}

func TestRunOptionOverrides(t *testing.T) {
	root := t.TempDir()
	content := "a = 1\nb = 2\nc = 3\n"
	writeFile(t, root, "x.py", content)
	writeFile(t, root, "y.py", content)

	// Three-line files survive a low floor but not a raised one.
	loose, err := New(testConfig()).Run(context.Background(), []string{root}, Options{MinLines: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if loose.ParsedFiles != 2 {
		t.Errorf("loose ParsedFiles = %d, want 2", loose.ParsedFiles)
	}

	strict, err := New(testConfig()).Run(context.Background(), []string{root}, Options{MinLines: 10})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strict.ParsedFiles != 0 {
		t.Errorf("strict ParsedFiles = %d, want 0", strict.ParsedFiles)
	}
}

func TestRunInvalidThreshold(t *testing.T) {
	_, err := New(testConfig()).Run(context.Background(), []string{"."}, Options{SimilarityThreshold: 2.0})
	if err == nil {
		t.Error("expected validation error")
	}
}

func TestRunUsesCache(t *testing.T) {
	root := t.TempDir()
	content := "a = 1\nb = 2\nc = 3\nd = 4\n"
	writeFile(t, root, "x.py", content)
	writeFile(t, root, "y.py", content)

	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = filepath.Join(root, ".cachedir")

	svc := New(cfg)
	first, err := svc.Run(context.Background(), []string{root}, Options{})
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}

	second, err := svc.Run(context.Background(), []string{root}, Options{})
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}

	if first.DuplicatesFound != second.DuplicatesFound {
		t.Errorf("cached result differs: %d vs %d", first.DuplicatesFound, second.DuplicatesFound)
	}
}
