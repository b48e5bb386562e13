package handlers

import (
	"context"
	"time"

	dom "todoapp/internal/domain"
)

type UserService interface {
	Login(ctx context.Context, username, email, password string) (dom.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, username string) (string, error)
	Delete(ctx context.Context, id string) error
	TTL() time.Duration
}

type TodoService interface {
	List(ctx context.Context, name string) ([]dom.Todo, error)
	Add(ctx context.Context, name, title, details string, priority *int) (dom.Todo, error)
	Reorder(ctx context.Context, name string, ids []int64) error
	Get(ctx context.Context, name string, id int64) (dom.Todo, error)
	ToggleDone(ctx context.Context, name string, id int64) (dom.Todo, error)
}
