package service

import (
	"context"
	"errors"
	"fmt"

	"todoapp/internal/cache"
	dom "todoapp/internal/domain"
	"todoapp/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidTodo = errors.New("invalid todo")
)

// TodoService manages one owner's list at a time; name is always the
// authenticated username, never a client-supplied value.
type TodoService struct {
	repo  repo.TodoRepo
	cache *cache.TodoCache
	sf    singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache) *TodoService {
	return &TodoService{repo: r, cache: c}
}

// List returns name's todos in display order.
func (s *TodoService) List(ctx context.Context, name string) ([]dom.Todo, error) {
	if s.cache == nil {
		return s.repo.List(ctx, name)
	}
	v, err, _ := s.sf.Do(flightKey(name), func() (interface{}, error) {
		// Shared by every caller waiting on this key.
		ctx := context.WithoutCancel(ctx)
		if list, err := s.cache.GetList(ctx, name); err == nil && list != nil {
			return list, nil
		}
		version, verErr := s.cache.Version(ctx, name)
		list, err := s.repo.List(ctx, name)
		if err != nil {
			return nil, err
		}
		if verErr == nil {
			_ = s.cache.SetList(ctx, name, version, list)
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Todo), nil
}

// Add creates a todo owned by name. Without a priority it goes to the end of the list.
func (s *TodoService) Add(ctx context.Context, name, title, details string, priority *int) (dom.Todo, error) {
	p := 0
	if priority != nil {
		p = *priority
	}
	t, err := dom.NewTodo(name, title, details, p)
	if err != nil {
		return dom.Todo{}, fmt.Errorf("%w: %w", ErrInvalidTodo, err)
	}

	if priority == nil {
		t, err = s.repo.Append(ctx, t)
	} else {
		t, err = s.repo.Create(ctx, t)
	}
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, name)
	return t, nil
}

// Reorder gives each of name's todos in ids a priority equal to its position.
// Repeated ids keep their first position; ids name does not own are ignored.
func (s *TodoService) Reorder(ctx context.Context, name string, ids []int64) error {
	seen := make(map[int64]struct{}, len(ids))
	ordered := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)
	}
	if len(ordered) == 0 {
		return nil
	}
	if _, err := s.repo.Reorder(ctx, name, ordered); err != nil {
		return err
	}
	s.invalidateCache(ctx, name)
	return nil
}

func (s *TodoService) Get(ctx context.Context, name string, id int64) (dom.Todo, error) {
	t, err := s.repo.GetByID(ctx, name, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	return t, nil
}

// ToggleDone flips the completion flag of one of name's todos.
func (s *TodoService) ToggleDone(ctx context.Context, name string, id int64) (dom.Todo, error) {
	t, err := s.repo.ToggleDone(ctx, name, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, name)
	return t, nil
}

// invalidateCache also forgets any in-flight List for name, so a list that
// started before the write is not handed to later callers.
func (s *TodoService) invalidateCache(ctx context.Context, name string) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, name)
		s.sf.Forget(flightKey(name))
	}
}

func flightKey(name string) string { return "list:" + name }
