package utils

import (
	"testing"
	"time"
)

func TestNewSessionTokenShape(t *testing.T) {
	tok, err := NewSessionToken(24 * time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if len(tok.Raw) != 96 {
		t.Fatalf("raw length = %d, want 96 hex chars", len(tok.Raw))
	}
	got := time.Until(tok.Exp)
	if got < 23*time.Hour || got > 25*time.Hour {
		t.Fatalf("expiry horizon off: %s", got)
	}
}

func TestNewResetTokenShape(t *testing.T) {
	tok, err := NewResetToken(time.Hour)
	if err != nil {
		t.Fatalf("NewResetToken: %v", err)
	}
	if len(tok.Raw) != 64 {
		t.Fatalf("raw length = %d, want 64 hex chars", len(tok.Raw))
	}
}

func TestTokensAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		tok, err := NewSessionToken(time.Hour)
		if err != nil {
			t.Fatalf("NewSessionToken: %v", err)
		}
		if seen[tok.Raw] {
			t.Fatalf("duplicate token after %d draws", i)
		}
		seen[tok.Raw] = true
	}
}

func TestHashTokenRawStable(t *testing.T) {
	a := HashTokenRaw("abc")
	b := HashTokenRaw("abc")
	if a != b {
		t.Fatalf("hash not deterministic: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("digest length = %d, want 64", len(a))
	}
	if a == HashTokenRaw("abd") {
		t.Fatalf("distinct inputs collided")
	}
	// Known vector for sha256("abc").
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if a != want {
		t.Fatalf("sha256(abc) = %s, want %s", a, want)
	}
}
