package hashutil

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	digest, err := h.Hash("s3cret-value")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}
	if digest == "s3cret-value" {
		t.Fatal("Hash() returned the plaintext")
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Errorf("digest %q is not a bcrypt hash", digest)
	}

	if !h.Verify("s3cret-value", digest) {
		t.Error("Verify() rejected the matching secret")
	}
	if h.Verify("wrong-value", digest) {
		t.Error("Verify() accepted a non-matching secret")
	}
}

func TestHashSalted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	a, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}
	b, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same input are identical, salt missing")
	}
}

func TestNewHasherClampsCost(t *testing.T) {
	for _, cost := range []int{-1, 0, 99} {
		h := NewHasher(cost)
		digest, err := h.Hash("x")
		if err != nil {
			t.Fatalf("NewHasher(%d).Hash() unexpected error: %v", cost, err)
		}
		if !h.Verify("x", digest) {
			t.Errorf("NewHasher(%d) produced unverifiable hash", cost)
		}
	}
}

func TestVerifyGarbageDigest(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	if h.Verify("x", "not-a-bcrypt-digest") {
		t.Error("Verify() accepted a malformed digest")
	}
}
