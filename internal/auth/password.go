package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher wraps bcrypt with the cost configured at process start.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the given bcrypt cost. Costs
// outside bcrypt's supported range fall back to the library default.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash derives a bcrypt hash from the raw password. Failure here is an
// infrastructure error and is propagated.
func (h *PasswordHasher) Hash(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", NewInfrastructureError(err)
	}
	return string(hash), nil
}

// Compare checks raw against a stored hash. A mismatch yields the generic
// authentication error; a malformed stored hash is an infrastructure error.
// Timing safety is delegated to bcrypt.
func (h *PasswordHasher) Compare(raw, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return NewAuthenticationError()
	default:
		return NewInfrastructureError(err)
	}
}
