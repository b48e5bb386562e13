package repo

import (
	"context"

	dom "todoapp/internal/domain"

	"github.com/jackc/pgx/v5"
)

// TodoRepo persists todos. Every method takes the owner's username and
// never reads or writes rows belonging to anyone else.
type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	Append(ctx context.Context, t dom.Todo) (dom.Todo, error)
	GetByID(ctx context.Context, name string, id int64) (dom.Todo, error)
	List(ctx context.Context, name string) ([]dom.Todo, error)
	Reorder(ctx context.Context, name string, ids []int64) (int64, error)
	ToggleDone(ctx context.Context, name string, id int64) (dom.Todo, error)
}

type PGTodoRepo struct {
	db Querier
}

func NewPGTodoRepo(db Querier) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

const todoColumns = `id, title, done, name, details, priority`

// Create inserts t with its own priority.
func (r *PGTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	query := `
		INSERT INTO todos (title, name, details, priority)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + todoColumns
	return scanTodo(r.db.QueryRow(ctx, query, t.Title, t.Name, t.Details, t.Priority))
}

// Append inserts t after the owner's last item; t.Priority is ignored.
func (r *PGTodoRepo) Append(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	query := `
		INSERT INTO todos (title, name, details, priority)
		SELECT $1, $2, $3, COALESCE(MAX(priority) + 1, 0) FROM todos WHERE name = $2
		RETURNING ` + todoColumns
	return scanTodo(r.db.QueryRow(ctx, query, t.Title, t.Name, t.Details))
}

func (r *PGTodoRepo) GetByID(ctx context.Context, name string, id int64) (dom.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1 AND name = $2`
	return scanTodo(r.db.QueryRow(ctx, query, id, name))
}

func (r *PGTodoRepo) List(ctx context.Context, name string) ([]dom.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE name = $1 ORDER BY priority ASC, id ASC`
	rows, err := r.db.Query(ctx, query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []dom.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Reorder sets each owned id's priority to its 0-based index in ids.
// Ids owned by someone else (or missing) match no row and are skipped.
// Returns the number of rows updated.
func (r *PGTodoRepo) Reorder(ctx context.Context, name string, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `
		UPDATE todos AS t SET priority = v.pos - 1
		FROM unnest($2::bigint[]) WITH ORDINALITY AS v(id, pos)
		WHERE t.id = v.id AND t.name = $1`
	tag, err := r.db.Exec(ctx, query, name, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PGTodoRepo) ToggleDone(ctx context.Context, name string, id int64) (dom.Todo, error) {
	query := `
		UPDATE todos SET done = NOT done
		WHERE id = $1 AND name = $2
		RETURNING ` + todoColumns
	return scanTodo(r.db.QueryRow(ctx, query, id, name))
}

func scanTodo(row pgx.Row) (dom.Todo, error) {
	var t dom.Todo
	err := row.Scan(&t.ID, &t.Title, &t.Done, &t.Name, &t.Details, &t.Priority)
	return t, err
}
