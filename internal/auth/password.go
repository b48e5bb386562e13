package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordScheme decides how passwords are stored and checked.
type PasswordScheme interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
}

// NewPasswordScheme returns the scheme registered under name ("plain" or "bcrypt").
func NewPasswordScheme(name string) (PasswordScheme, error) {
	switch name {
	case "", "plain":
		return PlainScheme{}, nil
	case "bcrypt":
		return BcryptScheme{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", name)
	}
}

// PlainScheme stores passwords as submitted.
// TODO: make bcrypt the default once existing plain rows have a migration path.
type PlainScheme struct{}

func (PlainScheme) Hash(password string) (string, error) { return password, nil }

// Verify compares byte encodings in constant time.
func (PlainScheme) Verify(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

type BcryptScheme struct {
	Cost int
}

func (s BcryptScheme) Hash(password string) (string, error) {
	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(h), nil
}

func (BcryptScheme) Verify(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
