// Package refactor plans refactorings for detected duplicate groups. The
// planner ranks findings and previews the effect of fixing them; it never
// modifies files.
package refactor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dupehound/dupehound/pkg/detect"
)

// Strategy names the refactoring approach for one duplicate group.
type Strategy string

const (
	StrategyExtractModule Strategy = "extract_module"
	StrategyExtractMethod Strategy = "extract_method"
	StrategyParameterize  Strategy = "parameterize"
	StrategyExtractClass  Strategy = "extract_class"
)

// rule maps one duplicate type to a strategy, a rank, and a description
// template. Lower priority means fix sooner.
type rule struct {
	strategy    Strategy
	priority    int
	description string
}

// Whole-file copies rank first: one deletion removes the most lines with
// the least risk. Structural and similar matches rank last because the
// shared shape may be coincidental.
var rules = map[detect.Type]rule{
	detect.TypeExact:         {StrategyExtractModule, 1, "Replace %d identical files with a single shared module"},
	detect.TypeExactBlock:    {StrategyExtractMethod, 2, "Extract the repeated %d-line block into a shared function"},
	detect.TypeTokenSequence: {StrategyParameterize, 2, "Unify %d near-identical code sequences behind one parameterized helper"},
	detect.TypeSimilarBlock:  {StrategyParameterize, 3, "Merge similar blocks across %d locations with parameters for the differences"},
	detect.TypeStructural:    {StrategyExtractClass, 3, "Lift the shared structure of %d blocks into a common base"},
}

// Suggestion is one planned refactoring, tied back to its source group.
type Suggestion struct {
	Index       int          `json:"index"`
	Strategy    Strategy     `json:"strategy"`
	Priority    int          `json:"priority"`
	Description string       `json:"description"`
	Files       []string     `json:"files"`
	Group       detect.Group `json:"group"`
}

// Preview estimates the effect of applying one suggestion.
type Preview struct {
	Suggestion   Suggestion `json:"suggestion"`
	LinesRemoved int        `json:"lines_removed"`
	FilesTouched int        `json:"files_touched"`
}

// Result records the outcome of an apply request. Application is a
// planned-only operation: no file is written, matching the contract that
// detection and planning never modify the tree.
type Result struct {
	Suggestion Suggestion `json:"suggestion"`
	Applied    bool       `json:"applied"`
	Message    string     `json:"message"`
}

// affectedFiles returns the distinct files a group touches, in first-seen
// order across the group's payload variants.
func affectedFiles(g detect.Group) []string {
	seen := make(map[string]bool)
	var files []string
	add := func(f string) {
		if f != "" && !seen[f] {
			seen[f] = true
			files = append(files, f)
		}
	}
	for _, f := range g.Files {
		add(f)
	}
	for _, b := range g.Blocks {
		add(b.File)
	}
	for _, w := range g.Windows {
		add(w.File)
	}
	return files
}

// memberCount is the number of duplicate occurrences in a group.
func memberCount(g detect.Group) int {
	if g.Count > 0 {
		return g.Count
	}
	if n := len(g.Blocks); n > 0 {
		return n
	}
	if n := len(g.Windows); n > 0 {
		return n
	}
	return len(g.Files)
}

// Plan turns duplicate groups into an ordered suggestion list. Fuzzy and
// stylesheet groups carry no actionable strategy and are skipped. Ordering
// is a stable sort by priority, so groups of equal rank keep detection
// order and the plan stays deterministic.
func Plan(groups []detect.Group) []Suggestion {
	var suggestions []Suggestion
	for _, g := range groups {
		r, ok := rules[g.Type]
		if !ok {
			continue
		}
		count := memberCount(g)
		arg := count
		if g.Type == detect.TypeExactBlock {
			arg = g.Lines
		}
		suggestions = append(suggestions, Suggestion{
			Strategy:    r.strategy,
			Priority:    r.priority,
			Description: fmt.Sprintf(r.description, arg),
			Files:       affectedFiles(g),
			Group:       g,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority < suggestions[j].Priority
	})
	for i := range suggestions {
		suggestions[i].Index = i + 1
	}
	return suggestions
}

// PreviewSuggestion estimates the lines removed by fixing one suggestion:
// every occurrence beyond the first becomes removable.
func PreviewSuggestion(s Suggestion) Preview {
	removed := 0
	if count := memberCount(s.Group); count > 1 && s.Group.Lines > 0 {
		removed = s.Group.Lines * (count - 1)
	}
	return Preview{
		Suggestion:   s,
		LinesRemoved: removed,
		FilesTouched: len(s.Files),
	}
}

// Apply records the apply request without touching any file.
func Apply(s Suggestion) Result {
	return Result{
		Suggestion: s,
		Applied:    false,
		Message: fmt.Sprintf("%s planned for %d file(s); apply the change manually or through your editor's refactoring tools",
			s.Strategy, len(s.Files)),
	}
}

// ParseSelection parses a 1-based selection expression like "1,3-5" against
// a plan of n suggestions. Returns the selected indexes in ascending order
// without duplicates.
func ParseSelection(expr string, n int) ([]int, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("empty selection")
	}

	seen := make(map[int]bool)
	var picked []int
	add := func(i int) error {
		if i < 1 || i > n {
			return fmt.Errorf("selection %d out of range 1-%d", i, n)
		}
		if !seen[i] {
			seen[i] = true
			picked = append(picked, i)
		}
		return nil
	}

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, err := strconv.Atoi(strings.TrimSpace(lo))
			if err != nil {
				return nil, fmt.Errorf("invalid selection %q", part)
			}
			end, err := strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("invalid selection %q", part)
			}
			if end < start {
				return nil, fmt.Errorf("invalid range %q", part)
			}
			for i := start; i <= end; i++ {
				if err := add(i); err != nil {
					return nil, err
				}
			}
			continue
		}
		i, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid selection %q", part)
		}
		if err := add(i); err != nil {
			return nil, err
		}
	}

	sort.Ints(picked)
	return picked, nil
}
