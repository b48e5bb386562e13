package repo

import (
	"context"

	dom "todoapp/internal/domain"
)

// UserRepo provides user persistence.
type UserRepo interface {
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	Create(ctx context.Context, u dom.User) (dom.User, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db Querier
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db Querier) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// GetByUsername returns the user by username. pgx.ErrNoRows if absent.
func (r *PGUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, email, pwd FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Pwd)
	return u, err
}

// Create inserts a new user and returns it. ErrDuplicate if the username is taken.
func (r *PGUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		INSERT INTO users (username, email, pwd)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, pwd`
	var out dom.User
	err := r.db.QueryRow(ctx, query, u.Username, u.Email, u.Pwd).Scan(
		&out.ID, &out.Username, &out.Email, &out.Pwd,
	)
	return out, mapPGError(err)
}
