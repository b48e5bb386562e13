package dto

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	dom "todoapp/internal/domain"

	"github.com/jellydator/validation"
	"github.com/jellydator/validation/is"
)

// Messages shown under the add form.
const (
	MsgTitleRequired  = "A todo needs a title."
	MsgPriorityNotInt = "Priority must be a whole number."
	MsgTodoRejected   = "That todo could not be added."
)

// TodoForm is the form body for POST /. Any owner field a client sends is
// not part of the form and never reaches the service.
type TodoForm struct {
	Title    string `form:"title"`
	Details  string `form:"details"`
	Priority string `form:"priority"`
}

// Validate checks the trimmed values, the same ones the service and
// PriorityPtr work with.
func (f TodoForm) Validate() error {
	f.Title = strings.TrimSpace(f.Title)
	f.Priority = strings.TrimSpace(f.Priority)
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required.Error(MsgTitleRequired)),
		validation.Field(&f.Priority, is.Int.Error(MsgPriorityNotInt)),
	)
}

// TodoRejection turns an add failure into the message for the user.
func TodoRejection(err error) string {
	var fields validation.Errors
	if errors.As(err, &fields) {
		for _, name := range []string{"Title", "Priority"} {
			if fe, ok := fields[name]; ok {
				return fe.Error()
			}
		}
	}
	if errors.Is(err, dom.ErrEmptyTitle) {
		return MsgTitleRequired
	}
	return MsgTodoRejected
}

// PriorityPtr returns nil when no priority was submitted.
func (f TodoForm) PriorityPtr() (*int, error) {
	s := strings.TrimSpace(f.Priority)
	if s == "" {
		return nil, nil
	}
	p, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("priority: %w", err)
	}
	return &p, nil
}

// ReorderForm is the form body for POST /reorder: one "id" field per item,
// in the desired display order.
type ReorderForm struct {
	IDs []string `form:"id"`
}

func (f ReorderForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.IDs, validation.Each(validation.Required, is.Int)),
	)
}

// Int64s parses IDs in order.
func (f ReorderForm) Int64s() ([]int64, error) {
	out := make([]int64, 0, len(f.IDs))
	for _, raw := range f.IDs {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("id %q: %w", raw, err)
		}
		out = append(out, id)
	}
	return out, nil
}
