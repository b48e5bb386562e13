package handlers_test

import (
	"context"
	"errors"
	"time"

	dom "todoapp/internal/domain"
	"todoapp/internal/service"
)

type fakeSessionReader map[string]string

func (f fakeSessionReader) Username(_ context.Context, id string) (string, bool, error) {
	name, ok := f[id]
	return name, ok, nil
}

type fakeSessions struct {
	created []string
	deleted []string
	err     error
}

func (f *fakeSessions) Create(_ context.Context, username string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, username)
	return "sid-" + username, nil
}

func (f *fakeSessions) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSessions) TTL() time.Duration { return time.Hour }

type loginCall struct{ username, email, password string }

type fakeUsers struct {
	passwords map[string]string
	calls     []loginCall
	err       error
}

func (f *fakeUsers) Login(_ context.Context, username, email, password string) (dom.User, error) {
	f.calls = append(f.calls, loginCall{username, email, password})
	if f.err != nil {
		return dom.User{}, f.err
	}
	if pw, ok := f.passwords[username]; ok && pw != password {
		return dom.User{}, service.ErrInvalidCredentials
	}
	return dom.User{ID: 1, Username: username, Email: email}, nil
}

type addCall struct {
	name, title, details string
	priority             *int
}

type reorderCall struct {
	name string
	ids  []int64
}

type fakeTodos struct {
	list     []dom.Todo
	adds     []addCall
	reorders []reorderCall
	err      error
}

func (f *fakeTodos) List(_ context.Context, name string) ([]dom.Todo, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []dom.Todo{}
	for _, t := range f.list {
		if t.Name == name {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTodos) Add(_ context.Context, name, title, details string, priority *int) (dom.Todo, error) {
	f.adds = append(f.adds, addCall{name, title, details, priority})
	if f.err != nil {
		return dom.Todo{}, f.err
	}
	t, err := dom.NewTodo(name, title, details, 0)
	if err != nil {
		return dom.Todo{}, errors.Join(service.ErrInvalidTodo, err)
	}
	t.ID = int64(100 + len(f.adds))
	f.list = append(f.list, t)
	return t, nil
}

func (f *fakeTodos) Reorder(_ context.Context, name string, ids []int64) error {
	f.reorders = append(f.reorders, reorderCall{name, ids})
	return f.err
}

func (f *fakeTodos) Get(_ context.Context, name string, id int64) (dom.Todo, error) {
	for _, t := range f.list {
		if t.ID == id && t.Name == name {
			return t, nil
		}
	}
	return dom.Todo{}, service.ErrNotFound
}

func (f *fakeTodos) ToggleDone(ctx context.Context, name string, id int64) (dom.Todo, error) {
	for i, t := range f.list {
		if t.ID == id && t.Name == name {
			f.list[i].Done = !t.Done
			return f.list[i], nil
		}
	}
	return dom.Todo{}, service.ErrNotFound
}
