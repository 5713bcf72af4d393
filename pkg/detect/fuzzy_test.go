package detect

import (
	"context"
	"testing"
)

func TestFuzzyJaccardInclusiveBoundary(t *testing.T) {
	// |{t1,t2,t3}| shared of 5 distinct tokens: exactly 0.6.
	a := record("a.py", "", []string{"t1", "t2", "t3", "t4"})
	b := record("b.py", "", []string{"t1", "t2", "t3", "t5"})

	d := New(WithSimilarityThreshold(0.6))
	groups := d.fuzzyFileGroups(context.Background(), []FileRecord{a, b})
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1 (threshold is inclusive)", len(groups))
	}
	if groups[0].Similarity != 0.6 {
		t.Errorf("similarity = %g, want 0.6", groups[0].Similarity)
	}
	if groups[0].Confidence != groups[0].Similarity {
		t.Errorf("confidence must equal similarity for fuzzy groups")
	}

	// Just above the pair's score the group must disappear.
	d = New(WithSimilarityThreshold(0.61))
	if groups := d.fuzzyFileGroups(context.Background(), []FileRecord{a, b}); len(groups) != 0 {
		t.Errorf("groups above threshold = %d, want 0", len(groups))
	}
}

func TestFuzzySymmetry(t *testing.T) {
	a := record("a.py", "", []string{"x", "y", "z"})
	b := record("b.py", "", []string{"x", "y", "q"})

	d := New(WithSimilarityThreshold(0.1))
	ab := d.fuzzyFileGroups(context.Background(), []FileRecord{a, b})
	ba := d.fuzzyFileGroups(context.Background(), []FileRecord{b, a})
	if len(ab) != 1 || len(ba) != 1 {
		t.Fatalf("expected one group each way, got %d and %d", len(ab), len(ba))
	}
	if ab[0].Similarity != ba[0].Similarity {
		t.Errorf("similarity not symmetric: %g vs %g", ab[0].Similarity, ba[0].Similarity)
	}
}

func TestFuzzyLineFallbackWithoutTokens(t *testing.T) {
	// Tokenization produced nothing; line alignment takes over.
	content := "line one\nline two\nline three"
	a := record("a.txt", content, nil)
	b := record("b.txt", content, nil)

	groups := New().fuzzyFileGroups(context.Background(), []FileRecord{a, b})
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if groups[0].Similarity != 1.0 {
		t.Errorf("identical lines should align fully, got %g", groups[0].Similarity)
	}
}

func TestSimilarBlocksSkipSameFile(t *testing.T) {
	blockA := CodeBlock{Name: "render", StartLine: 1, EndLine: 2}
	blockB := CodeBlock{Name: "render_copy", StartLine: 3, EndLine: 4}
	content := "draw frame buffer now\ndraw frame buffer now\ndraw frame buffer now\ndraw frame buffer now"

	same := record("a.py", content, nil, blockA, blockB)
	groups := New().similarBlockGroups(context.Background(), []FileRecord{same})
	if len(groups) != 0 {
		t.Errorf("same-file block pairs must not group: %+v", groups)
	}

	other := record("b.py", content, nil, blockA)
	groups = New().similarBlockGroups(context.Background(), []FileRecord{same, other})
	if len(groups) == 0 {
		t.Fatal("cross-file similar blocks expected")
	}
	for _, g := range groups {
		if g.Blocks[0].File == g.Blocks[1].File {
			t.Errorf("grouped blocks from one file: %+v", g)
		}
		if g.Blocks[0].Name == "" {
			t.Error("similar_block members must carry names")
		}
	}
}

func TestSequenceRatio(t *testing.T) {
	tests := []struct {
		a, b []string
		want float64
	}{
		{nil, nil, 1.0},
		{[]string{"x"}, nil, 0.0},
		{[]string{"a", "b"}, []string{"a", "b"}, 1.0},
		{[]string{"a", "b", "c", "d"}, []string{"a", "x", "c", "y"}, 0.5},
	}
	for _, tt := range tests {
		if got := sequenceRatio(tt.a, tt.b); got != tt.want {
			t.Errorf("sequenceRatio(%v, %v) = %g, want %g", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestJaccardEmptySets(t *testing.T) {
	interner := newTokenInterner()
	empty := interner.bitmap(nil)
	full := interner.bitmap([]string{"a"})

	if got := jaccard(empty, empty); got != 0.0 {
		t.Errorf("jaccard of empty sets = %g, want 0.0", got)
	}
	if got := jaccard(empty, full); got != 0.0 {
		t.Errorf("jaccard with one empty set = %g, want 0.0", got)
	}
	if got := jaccard(full, full); got != 1.0 {
		t.Errorf("jaccard of identical sets = %g, want 1.0", got)
	}
}
