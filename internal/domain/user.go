package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyEmail    = errors.New("email is required")
	ErrEmptyPassword = errors.New("password is required")
)

// User is the domain entity for a user account.
// Username doubles as the session identity and as the owner key on todos.
type User struct {
	ID       int64
	Username string
	Email    string
	// Pwd holds whatever the configured password scheme stores; with the
	// plain scheme that is the password itself.
	Pwd string
}

// NewUser builds a User from a login submission. Email format is not checked.
func NewUser(username, email, pwd string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	switch {
	case username == "":
		return User{}, ErrEmptyUsername
	case email == "":
		return User{}, ErrEmptyEmail
	case pwd == "":
		return User{}, ErrEmptyPassword
	}
	return User{Username: username, Email: email, Pwd: pwd}, nil
}
