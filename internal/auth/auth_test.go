package auth

import (
	"testing"
	"time"
)

func TestHasherRoundTrip(t *testing.T) {
	hasher := NewHasher(4)
	digest, err := hasher.Hash("Sup3rS3cret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "Sup3rS3cret!" {
		t.Fatal("digest must not equal the plaintext password")
	}
	if !hasher.Compare(digest, "Sup3rS3cret!") {
		t.Fatal("expected matching password to compare true")
	}
	if hasher.Compare(digest, "sup3rs3cret!") {
		t.Fatal("expected wrong password to compare false")
	}
}

func TestHasherSaltsEveryDigest(t *testing.T) {
	hasher := NewHasher(4)
	first, err := hasher.Hash("Sup3rS3cret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := hasher.Hash("Sup3rS3cret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestHasherClampsInvalidCost(t *testing.T) {
	hasher := NewHasher(99)
	digest, err := hasher.Hash("Sup3rS3cret!")
	if err != nil {
		t.Fatalf("hash with clamped cost: %v", err)
	}
	if !hasher.Compare(digest, "Sup3rS3cret!") {
		t.Fatal("clamped hasher should still verify")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	raw, err := issuer.Issue(42, RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := issuer.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Role != RoleAdmin {
		t.Fatalf("role = %q, want %q", claims.Role, RoleAdmin)
	}
	id, err := claims.SubjectID()
	if err != nil {
		t.Fatalf("subject id: %v", err)
	}
	if id != 42 {
		t.Fatalf("subject id = %d, want 42", id)
	}
	if claims.ID == "" {
		t.Fatal("expected a token id")
	}
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)
	raw, err := issuer.Issue(1, RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuer.Verify(raw); err == nil {
		t.Fatal("expected expired token to fail verification")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	raw, err := issuer.Issue(1, RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	other := NewTokenIssuer("other-secret", time.Hour)
	if _, err := other.Verify(raw); err == nil {
		t.Fatal("expected verification with a different secret to fail")
	}
}
