package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	// UserCost is used when an administrator creates a user.
	UserCost = 10
	// RegisterCost is used for self-registration.
	RegisterCost = 12
)

// PasswordHasher wraps bcrypt with a fixed cost.
type PasswordHasher struct {
	Cost int
}

func (h PasswordHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare returns false for a mismatch and an error only when hash is malformed.
func (h PasswordHasher) Compare(hash, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

// IsHashed reports whether s already looks like a bcrypt hash.
func IsHashed(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
