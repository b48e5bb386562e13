package service

import (
	"context"
	"errors"
	"fmt"

	"todoapp/internal/auth"
	dom "todoapp/internal/domain"
	"todoapp/internal/repo"

	"github.com/jackc/pgx/v5"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// UserService handles user auth logic.
type UserService struct {
	repo      repo.UserRepo
	passwords auth.PasswordScheme
}

// NewUserService returns a new UserService. A nil scheme means plain.
func NewUserService(repo repo.UserRepo, passwords auth.PasswordScheme) *UserService {
	if passwords == nil {
		passwords = auth.PlainScheme{}
	}
	return &UserService{repo: repo, passwords: passwords}
}

// Login authenticates a submission. An unseen username is signed up with the
// submitted email and password first. Every rejection is ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, email, password string) (dom.User, error) {
	candidate, err := dom.NewUser(username, email, password)
	if err != nil {
		return dom.User{}, ErrInvalidCredentials
	}

	u, err := s.repo.GetByUsername(ctx, candidate.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		u, err = s.signup(ctx, candidate)
	}
	if err != nil {
		return dom.User{}, err
	}

	if !s.passwords.Verify(u.Pwd, password) {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) signup(ctx context.Context, candidate dom.User) (dom.User, error) {
	stored, err := s.passwords.Hash(candidate.Pwd)
	if err != nil {
		return dom.User{}, err
	}
	candidate.Pwd = stored
	u, err := s.repo.Create(ctx, candidate)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repo.ErrDuplicate) {
		return dom.User{}, fmt.Errorf("create user: %w", err)
	}
	// Lost a race with a concurrent first login; verify against the winner.
	u, err = s.repo.GetByUsername(ctx, candidate.Username)
	if err != nil {
		return dom.User{}, fmt.Errorf("reload user: %w", err)
	}
	return u, nil
}
