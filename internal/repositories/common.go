package repositories

import (
	"context"
	"strings"

	intdb "hrms/internal/db"
	"hrms/internal/domain"

	"github.com/jmoiron/sqlx"
)

// getOne scans a single row into T. A missing row is not an error: it yields nil, nil.
func getOne[T any](ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (*T, error) {
	var out T
	if err := sqlx.GetContext(ctx, q, &out, query, args...); err != nil {
		if intdb.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// selectWindow runs a list query with LIMIT/OFFSET appended.
func selectWindow[T any](ctx context.Context, q sqlx.QueryerContext, query string, p *domain.Pagination, args ...any) ([]T, error) {
	limit, offset := domain.LimitOffset(p)
	out := []T{}
	args = append(args, limit, offset)
	if err := sqlx.SelectContext(ctx, q, &out, query+" LIMIT ? OFFSET ?", args...); err != nil {
		return nil, err
	}
	return out, nil
}

func count(ctx context.Context, q sqlx.QueryerContext, table string) (int64, error) {
	var n int64
	if err := sqlx.GetContext(ctx, q, &n, "SELECT COUNT(*) FROM "+table); err != nil {
		return 0, err
	}
	return n, nil
}

// remove deletes by id and returns the affected row count (0 when absent).
func remove(ctx context.Context, e sqlx.ExecerContext, table string, id int64) (int64, error) {
	res, err := e.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// classifyWrite turns a unique-key violation into a Conflict error.
func classifyWrite(err error, conflictMsg string) error {
	if err != nil && intdb.IsDuplicateKey(err) {
		appErr := domain.NewConflict(conflictMsg)
		appErr.Cause = err
		return appErr
	}
	return err
}

type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) add(clause string, arg any) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, arg)
}

func (w whereBuilder) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

type setBuilder struct {
	sets []string
	args []any
}

func (s *setBuilder) add(col string, val any) {
	s.sets = append(s.sets, col+" = ?")
	s.args = append(s.args, val)
}

func (s setBuilder) empty() bool { return len(s.sets) == 0 }

func (s setBuilder) String() string { return strings.Join(s.sets, ", ") }
