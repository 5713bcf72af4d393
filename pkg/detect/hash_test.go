package detect

import "testing"

func TestHashTextVectors(t *testing.T) {
	// Reference FNV-1a 64-bit digests; these must never change, stored
	// fingerprints depend on them.
	tests := []struct {
		input string
		want  string
	}{
		{"", "cbf29ce484222325"},
		{"a", "af63dc4c8601ec8c"},
		{"abc", "e71fa2190541574b"},
		{"foobar", "85944171f73967e8"},
	}

	for _, tt := range tests {
		got := HashText(tt.input).String()
		if got != tt.want {
			t.Errorf("HashText(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestHashMatchesHashText(t *testing.T) {
	for _, s := range []string{"", "a", "hello world", "def foo():\n    pass"} {
		if Hash([]byte(s)) != HashText(s) {
			t.Errorf("Hash and HashText disagree for %q", s)
		}
	}
}

func TestFingerprintStringFixedWidth(t *testing.T) {
	got := Fingerprint(0xff).String()
	if got != "00000000000000ff" {
		t.Errorf("String() = %q, want %q", got, "00000000000000ff")
	}
	if len(Fingerprint(0).String()) != 16 {
		t.Errorf("zero fingerprint not 16 chars: %q", Fingerprint(0).String())
	}
}

func TestHashTextDropsInvalidBytes(t *testing.T) {
	if HashText("a\xffb") != HashText("ab") {
		t.Error("invalid byte should be dropped, not substituted")
	}
	if HashText("héllo") == HashText("hllo") {
		t.Error("valid multibyte sequences must contribute to the digest")
	}
}

func TestHashTokensSeparatorSensitivity(t *testing.T) {
	a := HashTokens([]string{"ab", "c"})
	b := HashTokens([]string{"a", "bc"})
	if a == b {
		t.Error("different token splits of the same text must hash differently")
	}

	if HashTokens([]string{"x", "y"}) != HashTokens([]string{"x", "y"}) {
		t.Error("identical token sequences must hash identically")
	}
}
