package repo_test

import (
	"context"
	"errors"

	dom "todoapp/internal/domain"
	"todoapp/internal/repo"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pashagolub/pgxmock/v4"
)

var todoCols = []string{"id", "title", "done", "name", "details", "priority"}

var _ = Describe("PGUserRepo", func() {
	var (
		mock  pgxmock.PgxPoolIface
		users *repo.PGUserRepo
		ctx   context.Context
	)

	BeforeEach(func() {
		var err error
		mock, err = pgxmock.NewPool()
		Expect(err).NotTo(HaveOccurred())
		users = repo.NewPGUserRepo(mock)
		ctx = context.Background()
	})

	AfterEach(func() {
		Expect(mock.ExpectationsWereMet()).To(Succeed())
		mock.Close()
	})

	Describe("GetByUsername", func() {
		It("maps the row to a user", func() {
			mock.ExpectQuery(`SELECT id, username, email, pwd FROM users WHERE username = \$1`).
				WithArgs("alice").
				WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "pwd"}).
					AddRow(int64(1), "alice", "a@x.com", "pw1"))

			u, err := users.GetByUsername(ctx, "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(u).To(Equal(dom.User{ID: 1, Username: "alice", Email: "a@x.com", Pwd: "pw1"}))
		})

		It("passes pgx.ErrNoRows through", func() {
			mock.ExpectQuery(`FROM users WHERE username = \$1`).
				WithArgs("ghost").
				WillReturnError(pgx.ErrNoRows)

			_, err := users.GetByUsername(ctx, "ghost")
			Expect(errors.Is(err, pgx.ErrNoRows)).To(BeTrue())
		})
	})

	Describe("Create", func() {
		It("inserts all three fields", func() {
			mock.ExpectQuery(`INSERT INTO users \(username, email, pwd\)`).
				WithArgs("alice", "a@x.com", "pw1").
				WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "pwd"}).
					AddRow(int64(7), "alice", "a@x.com", "pw1"))

			u, err := users.Create(ctx, dom.User{Username: "alice", Email: "a@x.com", Pwd: "pw1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).To(Equal(int64(7)))
		})

		It("reports a taken username as ErrDuplicate", func() {
			mock.ExpectQuery(`INSERT INTO users`).
				WithArgs("alice", "a@x.com", "pw1").
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

			_, err := users.Create(ctx, dom.User{Username: "alice", Email: "a@x.com", Pwd: "pw1"})
			Expect(err).To(MatchError(repo.ErrDuplicate))
			Expect(err.Error()).To(ContainSubstring("users_username_key"))
		})

		It("passes other driver errors through", func() {
			fk := &pgconn.PgError{Code: "23503"}
			mock.ExpectQuery(`INSERT INTO users`).
				WithArgs("alice", "a@x.com", "pw1").
				WillReturnError(fk)

			_, err := users.Create(ctx, dom.User{Username: "alice", Email: "a@x.com", Pwd: "pw1"})
			Expect(errors.Is(err, repo.ErrDuplicate)).To(BeFalse())
			Expect(errors.Is(err, fk)).To(BeTrue())
		})
	})
})

var _ = Describe("PGTodoRepo", func() {
	var (
		mock  pgxmock.PgxPoolIface
		todos *repo.PGTodoRepo
		ctx   context.Context
	)

	BeforeEach(func() {
		var err error
		mock, err = pgxmock.NewPool()
		Expect(err).NotTo(HaveOccurred())
		todos = repo.NewPGTodoRepo(mock)
		ctx = context.Background()
	})

	AfterEach(func() {
		Expect(mock.ExpectationsWereMet()).To(Succeed())
		mock.Close()
	})

	Describe("List", func() {
		It("filters by owner and orders by priority", func() {
			mock.ExpectQuery(`FROM todos WHERE name = \$1 ORDER BY priority ASC, id ASC`).
				WithArgs("alice").
				WillReturnRows(pgxmock.NewRows(todoCols).
					AddRow(int64(2), "Walk dog", false, "alice", "", 0).
					AddRow(int64(1), "Buy milk", true, "alice", "2L", 1))

			list, err := todos.List(ctx, "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			Expect(list[0].Title).To(Equal("Walk dog"))
			Expect(list[1]).To(Equal(dom.Todo{ID: 1, Title: "Buy milk", Done: true, Name: "alice", Details: "2L", Priority: 1}))
		})

		It("returns an empty, non-nil slice when the owner has nothing", func() {
			mock.ExpectQuery(`FROM todos WHERE name = \$1`).
				WithArgs("bob").
				WillReturnRows(pgxmock.NewRows(todoCols))

			list, err := todos.List(ctx, "bob")
			Expect(err).NotTo(HaveOccurred())
			Expect(list).NotTo(BeNil())
			Expect(list).To(BeEmpty())
		})
	})

	Describe("Append", func() {
		It("computes the next priority inside the owner's rows", func() {
			mock.ExpectQuery(`INSERT INTO todos \(title, name, details, priority\)\s+SELECT \$1, \$2, \$3, COALESCE\(MAX\(priority\) \+ 1, 0\) FROM todos WHERE name = \$2`).
				WithArgs("Walk dog", "alice", "").
				WillReturnRows(pgxmock.NewRows(todoCols).AddRow(int64(2), "Walk dog", false, "alice", "", 1))

			t, err := todos.Append(ctx, dom.Todo{Title: "Walk dog", Name: "alice"})
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Priority).To(Equal(1))
		})
	})

	Describe("Create", func() {
		It("keeps the given priority", func() {
			mock.ExpectQuery(`INSERT INTO todos \(title, name, details, priority\)\s+VALUES \(\$1, \$2, \$3, \$4\)`).
				WithArgs("Pay rent", "alice", "", 5).
				WillReturnRows(pgxmock.NewRows(todoCols).AddRow(int64(3), "Pay rent", false, "alice", "", 5))

			t, err := todos.Create(ctx, dom.Todo{Title: "Pay rent", Name: "alice", Priority: 5})
			Expect(err).NotTo(HaveOccurred())
			Expect(t.ID).To(Equal(int64(3)))
		})
	})

	Describe("Reorder", func() {
		It("updates only rows owned by name in one statement", func() {
			mock.ExpectExec(`UPDATE todos AS t SET priority = v.pos - 1\s+FROM unnest\(\$2::bigint\[\]\) WITH ORDINALITY AS v\(id, pos\)\s+WHERE t.id = v.id AND t.name = \$1`).
				WithArgs("alice", []int64{1, 2, 9}).
				WillReturnResult(pgxmock.NewResult("UPDATE", 2))

			n, err := todos.Reorder(ctx, "alice", []int64{1, 2, 9})
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(2)))
		})

		It("skips the round trip for an empty list", func() {
			n, err := todos.Reorder(ctx, "alice", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeZero())
		})
	})

	Describe("GetByID", func() {
		It("scopes the lookup to the owner", func() {
			mock.ExpectQuery(`FROM todos WHERE id = \$1 AND name = \$2`).
				WithArgs(int64(4), "bob").
				WillReturnError(pgx.ErrNoRows)

			_, err := todos.GetByID(ctx, "bob", 4)
			Expect(err).To(MatchError(pgx.ErrNoRows))
		})
	})

	Describe("ToggleDone", func() {
		It("flips done for an owned row", func() {
			mock.ExpectQuery(`UPDATE todos SET done = NOT done\s+WHERE id = \$1 AND name = \$2`).
				WithArgs(int64(1), "alice").
				WillReturnRows(pgxmock.NewRows(todoCols).AddRow(int64(1), "Buy milk", true, "alice", "", 0))

			t, err := todos.ToggleDone(ctx, "alice", 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Done).To(BeTrue())
		})
	})
})
