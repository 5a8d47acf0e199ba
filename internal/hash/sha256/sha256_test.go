// Package sha256 includes tests for the SHA-256 hasher adapter.
package sha256

import (
	"regexp"
	"testing"

	core "github.com/JakeFAU/sha256digest/pkg/sha256"
)

var lowerHex64 = regexp.MustCompile(`^[0-9a-f]{64}$`)

// TestHasherHashDeterministic ensures repeated hashing yields the same digest.
func TestHasherHashDeterministic(t *testing.T) {
	t.Parallel()

	h := New()
	got, err := h.Hash([]byte("hello world"))
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	again, err := h.Hash([]byte("hello world"))
	if err != nil {
		t.Fatalf("Hash() repeat error = %v", err)
	}
	if again != got {
		t.Fatalf("expected deterministic hash, got %s vs %s", got, again)
	}
}

// TestHasherHashFormat ensures digests render as 64 lowercase hex characters.
func TestHasherHashFormat(t *testing.T) {
	t.Parallel()

	h := NewWithTable(core.NewTable())
	for _, in := range []string{"", "abc", "\x00\xff"} {
		got, err := h.Hash([]byte(in))
		if err != nil {
			t.Fatalf("Hash(%q) error = %v", in, err)
		}
		if !lowerHex64.MatchString(got) {
			t.Fatalf("Hash(%q) = %q, want 64 lowercase hex characters", in, got)
		}
	}
}
