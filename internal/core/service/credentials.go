package service

import (
	"golang.org/x/crypto/bcrypt"
)

// CredentialStore hashes and verifies passwords with bcrypt. The hash embeds
// its own salt and cost, so verification needs no extra state.
type CredentialStore struct {
	cost int
}

// NewCredentialStore returns a CredentialStore with the given bcrypt cost.
// If cost is outside bcrypt's valid range, the library default is used.
func NewCredentialStore(cost int) *CredentialStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &CredentialStore{cost: cost}
}

// Hash returns the bcrypt hash of the plaintext password.
func (s *CredentialStore) Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plaintext matches the stored hash. bcrypt's
// comparison does not leak prefix information through timing.
func (s *CredentialStore) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
