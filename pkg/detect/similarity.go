package detect

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// tokenInterner maps token strings to dense uint32 ids so token sets can be
// held as roaring bitmaps. Ids are assigned first-seen, which keeps the
// mapping deterministic for a fixed input order.
type tokenInterner struct {
	ids  map[string]uint32
	next uint32
}

func newTokenInterner() *tokenInterner {
	return &tokenInterner{ids: make(map[string]uint32)}
}

func (ti *tokenInterner) id(token string) uint32 {
	if id, ok := ti.ids[token]; ok {
		return id
	}
	id := ti.next
	ti.ids[token] = id
	ti.next++
	return id
}

// bitmap interns every token and returns the set as a bitmap. Duplicate
// tokens collapse, matching plain set semantics.
func (ti *tokenInterner) bitmap(tokens []string) *roaring.Bitmap {
	bm := roaring.New()
	for _, t := range tokens {
		bm.Add(ti.id(t))
	}
	return bm
}

// jaccard computes |a∩b| / |a∪b| over two interned token sets. Two empty
// sets score 0.0: nothing was compared, so nothing is similar.
func jaccard(a, b *roaring.Bitmap) float64 {
	ca, cb := a.GetCardinality(), b.GetCardinality()
	if ca == 0 && cb == 0 {
		return 0.0
	}
	inter := a.AndCardinality(b)
	union := ca + cb - inter
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

// sequenceRatio scores how much two line sequences align: twice the length
// of their longest common subsequence over the total length, in [0,1]. Two
// empty sequences trivially align and score 1.0.
func sequenceRatio(a, b []string) float64 {
	if len(a)+len(b) == 0 {
		return 1.0
	}
	lcs := longestCommonSubsequence(a, b)
	return 2.0 * float64(lcs) / float64(len(a)+len(b))
}

// longestCommonSubsequence runs the classic DP with two rolling rows.
func longestCommonSubsequence(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) > len(a) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
