package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyTitle = errors.New("title is required")
	ErrEmptyOwner = errors.New("owner is required")
)

// Todo is a single list item. Name is the owning user's username;
// lists are sorted by Priority ascending, ties by ID.
type Todo struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Done     bool   `json:"done"`
	Name     string `json:"name"`
	Details  string `json:"details"`
	Priority int    `json:"priority"`
}

// NewTodo validates and normalizes a todo about to be inserted.
func NewTodo(name, title, details string, priority int) (Todo, error) {
	name = strings.TrimSpace(name)
	title = strings.TrimSpace(title)
	if name == "" {
		return Todo{}, ErrEmptyOwner
	}
	if title == "" {
		return Todo{}, ErrEmptyTitle
	}
	return Todo{
		Name:     name,
		Title:    title,
		Details:  strings.TrimSpace(details),
		Priority: priority,
	}, nil
}
