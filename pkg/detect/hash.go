package detect

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Fingerprint is a 64-bit FNV-1a digest used as the grouping key for all
// exact-style matchers. The algorithm is fixed (offset basis, prime, 64-bit
// truncation) so fingerprints persisted by one build remain comparable with
// any other.
type Fingerprint uint64

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// String renders the fingerprint as fixed-width lowercase hex. This is the
// persisted representation.
func (f Fingerprint) String() string {
	s := strconv.FormatUint(uint64(f), 16)
	if len(s) < 16 {
		s = strings.Repeat("0", 16-len(s)) + s
	}
	return s
}

// Hash computes the FNV-1a 64-bit digest of a byte sequence.
func Hash(data []byte) Fingerprint {
	var h uint64 = fnvOffset64
	for _, b := range data {
		h ^= uint64(b)
		h *= fnvPrime64
	}
	return Fingerprint(h)
}

// HashText hashes the UTF-8 encoding of s. Invalid byte sequences are
// dropped rather than failing or being substituted, so a partially corrupt
// file still produces a stable digest.
func HashText(s string) Fingerprint {
	if utf8.ValidString(s) {
		var h uint64 = fnvOffset64
		for i := 0; i < len(s); i++ {
			h ^= uint64(s[i])
			h *= fnvPrime64
		}
		return Fingerprint(h)
	}

	var h uint64 = fnvOffset64
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		for j := i; j < i+size; j++ {
			h ^= uint64(s[j])
			h *= fnvPrime64
		}
		i += size
	}
	return Fingerprint(h)
}

// tokenSeparator keeps distinct token splits from colliding: ["ab","c"] and
// ["a","bc"] must hash differently.
const tokenSeparator = "\x1f"

// HashTokens hashes a token sequence by joining the tokens with a unit
// separator before encoding.
func HashTokens(tokens []string) Fingerprint {
	return HashText(strings.Join(tokens, tokenSeparator))
}
