package hashutil

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher wraps bcrypt with a configurable work factor. bcrypt salts every
// hash and CompareHashAndPassword is constant-time on the comparison.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the given cost. Costs outside bcrypt's
// valid range fall back to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash produces a salted one-way hash of the secret. The raw secret is never
// logged or returned.
func (h *Hasher) Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether secret matches the stored hash
func (h *Hasher) Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
