// Package repotest provides in-memory repositories that behave like the
// Postgres ones: misses return pgx.ErrNoRows and duplicate usernames
// return repo.ErrDuplicate.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	dom "todoapp/internal/domain"
	"todoapp/internal/repo"

	"github.com/jackc/pgx/v5"
)

type Users struct {
	mu     sync.Mutex
	nextID int64
	rows   map[string]dom.User

	// Creates counts successful inserts.
	Creates int
}

func NewUsers() *Users {
	return &Users{rows: map[string]dom.User{}}
}

func (r *Users) GetByUsername(_ context.Context, username string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[username]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *Users) Create(_ context.Context, u dom.User) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[u.Username]; ok {
		return dom.User{}, fmt.Errorf("%w: users_username_key", repo.ErrDuplicate)
	}
	r.nextID++
	u.ID = r.nextID
	r.rows[u.Username] = u
	r.Creates++
	return u, nil
}

// Count returns the number of stored users.
func (r *Users) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type Todos struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]dom.Todo

	// Lists counts List calls that reached the store.
	Lists int
}

func NewTodos() *Todos {
	return &Todos{rows: map[int64]dom.Todo{}}
}

func (r *Todos) Create(_ context.Context, t dom.Todo) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(t), nil
}

func (r *Todos) Append(_ context.Context, t dom.Todo) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := 0
	for _, row := range r.rows {
		if row.Name == t.Name && row.Priority+1 > next {
			next = row.Priority + 1
		}
	}
	t.Priority = next
	return r.insert(t), nil
}

func (r *Todos) insert(t dom.Todo) dom.Todo {
	r.nextID++
	t.ID = r.nextID
	r.rows[t.ID] = t
	return t
}

func (r *Todos) GetByID(_ context.Context, name string, id int64) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	if !ok || t.Name != name {
		return dom.Todo{}, pgx.ErrNoRows
	}
	return t, nil
}

func (r *Todos) List(_ context.Context, name string) ([]dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lists++
	list := []dom.Todo{}
	for _, t := range r.rows {
		if t.Name == name {
			list = append(list, t)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Priority != list[j].Priority {
			return list[i].Priority < list[j].Priority
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *Todos) Reorder(_ context.Context, name string, ids []int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for pos, id := range ids {
		t, ok := r.rows[id]
		if !ok || t.Name != name {
			continue
		}
		t.Priority = pos
		r.rows[id] = t
		n++
	}
	return n, nil
}

func (r *Todos) ToggleDone(_ context.Context, name string, id int64) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	if !ok || t.Name != name {
		return dom.Todo{}, pgx.ErrNoRows
	}
	t.Done = !t.Done
	r.rows[id] = t
	return t, nil
}

// Snapshot returns a copy of the row with id regardless of owner.
func (r *Todos) Snapshot(id int64) (dom.Todo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	return t, ok
}
