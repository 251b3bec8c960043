package security

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("Secr3t!A")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "Secr3t!A" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if !h.Verify("Secr3t!A", hash) {
		t.Fatalf("correct password must verify")
	}
	if h.Verify("wrong", hash) {
		t.Fatalf("wrong password must not verify")
	}
}

func TestBcryptHasher_DistinctSalts(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, _ := h.Hash("Secr3t!A")
	b, _ := h.Hash("Secr3t!A")
	if a == b {
		t.Fatalf("two hashes of the same password must differ (random salt)")
	}
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	h := NewBcryptHasher(9999)

	hash, err := h.Hash("Secr3t!A")
	if err != nil {
		t.Fatalf("hash failed with fallback cost: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("cost extraction failed: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}
