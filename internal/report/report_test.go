package report

import (
	"testing"

	"github.com/dupehound/dupehound/pkg/detect"
)

func TestCoverage(t *testing.T) {
	tests := []struct {
		name    string
		iv      interval
		claimed []interval
		want    float64
	}{
		{"nothing claimed", interval{1, 10}, nil, 0},
		{"fully claimed", interval{1, 10}, []interval{{1, 10}}, 1.0},
		{"half claimed", interval{1, 10}, []interval{{1, 5}}, 0.5},
		{"overlapping claims count once", interval{1, 10}, []interval{{1, 6}, {4, 10}}, 1.0},
		{"disjoint claims add up", interval{1, 10}, []interval{{1, 2}, {9, 10}}, 0.4},
		{"claim outside interval", interval{1, 10}, []interval{{20, 30}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coverage(tt.iv, tt.claimed); got != tt.want {
				t.Errorf("coverage = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestSuppressRepeatedHashes(t *testing.T) {
	groups := []detect.Group{
		{Type: detect.TypeExact, Hash: "abc", Files: []string{"a.py", "b.py"}},
		{Type: detect.TypeCSSBlock, Hash: "abc", Blocks: []detect.BlockRef{
			{File: "a.css", StartLine: 1, EndLine: 5},
			{File: "b.css", StartLine: 1, EndLine: 5},
		}},
	}

	kept := Suppress(groups)
	if len(kept) != 1 || kept[0].Type != detect.TypeExact {
		t.Errorf("kept = %+v", kept)
	}
}

func TestSuppressRepeatedFileSets(t *testing.T) {
	groups := []detect.Group{
		{Type: detect.TypeExact, Hash: "h1", Files: []string{"a.py", "b.py"}},
		{Type: detect.TypeFuzzy, Files: []string{"b.py", "a.py"}, Similarity: 0.92},
		{Type: detect.TypeFuzzy, Files: []string{"a.py", "c.py"}, Similarity: 0.9},
	}

	kept := Suppress(groups)
	if len(kept) != 2 {
		t.Fatalf("kept = %+v", kept)
	}
	if kept[1].Files[1] != "c.py" {
		t.Errorf("wrong fuzzy group survived: %+v", kept[1])
	}
}

func TestSuppressCoveredBlocks(t *testing.T) {
	wide := detect.Group{Type: detect.TypeExactBlock, Hash: "h1", Lines: 10, Blocks: []detect.BlockRef{
		{File: "a.py", StartLine: 1, EndLine: 10},
		{File: "b.py", StartLine: 1, EndLine: 10},
	}}
	// Fully inside the claimed intervals of both members.
	inner := detect.Group{Type: detect.TypeExactBlock, Hash: "h2", Lines: 4, Blocks: []detect.BlockRef{
		{File: "a.py", StartLine: 3, EndLine: 6},
		{File: "b.py", StartLine: 3, EndLine: 6},
	}}
	// One member sits in untouched territory; the group stays.
	elsewhere := detect.Group{Type: detect.TypeExactBlock, Hash: "h3", Lines: 4, Blocks: []detect.BlockRef{
		{File: "a.py", StartLine: 3, EndLine: 6},
		{File: "c.py", StartLine: 1, EndLine: 4},
	}}

	kept := Suppress([]detect.Group{wide, inner, elsewhere})
	if len(kept) != 2 {
		t.Fatalf("kept %d groups, want 2: %+v", len(kept), kept)
	}
	if kept[0].Hash != "h1" || kept[1].Hash != "h3" {
		t.Errorf("kept = %+v", kept)
	}
}

func TestSuppressCoverageBoundary(t *testing.T) {
	claimer := detect.Group{Type: detect.TypeExactBlock, Hash: "h1", Lines: 6, Blocks: []detect.BlockRef{
		{File: "a.py", StartLine: 1, EndLine: 6},
		{File: "b.py", StartLine: 1, EndLine: 6},
	}}
	// 6 of 10 lines covered in each member: exactly the threshold.
	atThreshold := detect.Group{Type: detect.TypeExactBlock, Hash: "h2", Lines: 10, Blocks: []detect.BlockRef{
		{File: "a.py", StartLine: 1, EndLine: 10},
		{File: "b.py", StartLine: 1, EndLine: 10},
	}}

	kept := Suppress([]detect.Group{claimer, atThreshold})
	if len(kept) != 1 {
		t.Errorf("coverage at the threshold must suppress: %+v", kept)
	}
}

func TestSuppressPreservesOrder(t *testing.T) {
	groups := []detect.Group{
		{Type: detect.TypeExact, Hash: "h1", Files: []string{"a", "b"}},
		{Type: detect.TypeStructural, Blocks: []detect.BlockRef{{File: "a", Name: "f"}, {File: "b", Name: "g"}}},
		{Type: detect.TypeExact, Hash: "h2", Files: []string{"c", "d"}},
	}

	kept := Suppress(groups)
	if len(kept) != 3 {
		t.Fatalf("kept = %+v", kept)
	}
	for i := range groups {
		if kept[i].Type != groups[i].Type {
			t.Errorf("order changed at %d", i)
		}
	}
}

func TestFilterMinLines(t *testing.T) {
	groups := []detect.Group{
		{Type: detect.TypeExactBlock, Lines: 2},
		{Type: detect.TypeExactBlock, Lines: 8},
		{Type: detect.TypeStructural}, // no span, passes through
	}

	kept := FilterMinLines(groups, 4)
	if len(kept) != 2 {
		t.Fatalf("kept = %+v", kept)
	}
	if kept[0].Lines != 8 || kept[1].Type != detect.TypeStructural {
		t.Errorf("kept = %+v", kept)
	}

	if got := FilterMinLines(groups, 0); len(got) != 3 {
		t.Errorf("minLines 0 must keep everything")
	}
}
