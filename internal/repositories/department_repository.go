package repositories

import (
	"context"
	"strings"

	intdb "hrms/internal/db"
	"hrms/internal/domain"
	"hrms/internal/domain/models"

	"github.com/jmoiron/sqlx"
)

const departmentColumns = "id, dept_no, dept_name, created_at, updated_at"

const departmentConflict = "Department number or name already exists"

type DepartmentRepository struct {
	DB *sqlx.DB
}

func NewDepartmentRepository(db *sqlx.DB) *DepartmentRepository {
	return &DepartmentRepository{DB: db}
}

func (r *DepartmentRepository) FindAll(ctx context.Context, p *domain.Pagination) ([]models.Department, error) {
	return selectWindow[models.Department](ctx, r.DB,
		"SELECT "+departmentColumns+" FROM departments ORDER BY id ASC", p)
}

func (r *DepartmentRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.DB, "departments")
}

func (r *DepartmentRepository) FindOne(ctx context.Context, id int64) (*models.Department, error) {
	return findDepartment(ctx, r.DB, id)
}

func (r *DepartmentRepository) FindByCondition(ctx context.Context, cond models.DepartmentCondition, p *domain.Pagination) ([]models.Department, error) {
	w := departmentWhere(cond)
	return selectWindow[models.Department](ctx, r.DB,
		"SELECT "+departmentColumns+" FROM departments"+w.String()+" ORDER BY id ASC", p, w.args...)
}

func (r *DepartmentRepository) Create(ctx context.Context, in models.DepartmentCreate) (*models.Department, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO departments (dept_no, dept_name) VALUES (?, ?)",
		strings.TrimSpace(in.DeptNo), strings.TrimSpace(in.DeptName),
	)
	if err != nil {
		return nil, classifyWrite(err, departmentConflict)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return findDepartment(ctx, r.DB, id)
}

func (r *DepartmentRepository) Update(ctx context.Context, id int64, patch models.DepartmentUpdate) (*models.Department, error) {
	return updateDepartment(ctx, r.DB, id, patch)
}

// TxUpdateOneByCondition updates the first department matching cond inside tx.
// It returns nil when nothing matches.
func (r *DepartmentRepository) TxUpdateOneByCondition(ctx context.Context, tx *sqlx.Tx, cond models.DepartmentCondition, patch models.DepartmentUpdate) (*models.Department, error) {
	w := departmentWhere(cond)
	if len(w.clauses) == 0 {
		return nil, domain.NewBadRequest("Department condition is required")
	}

	var id int64
	err := sqlx.GetContext(ctx, tx, &id,
		"SELECT id FROM departments"+w.String()+" ORDER BY id ASC LIMIT 1 FOR UPDATE", w.args...)
	if err != nil {
		if intdb.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return updateDepartment(ctx, tx, id, patch)
}

func (r *DepartmentRepository) Remove(ctx context.Context, id int64) (int64, error) {
	return remove(ctx, r.DB, "departments", id)
}

func departmentWhere(cond models.DepartmentCondition) whereBuilder {
	var w whereBuilder
	if cond.DeptNo != "" {
		w.add("dept_no = ?", cond.DeptNo)
	}
	if cond.DeptName != "" {
		w.add("dept_name = ?", cond.DeptName)
	}
	return w
}

func findDepartment(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Department, error) {
	return getOne[models.Department](ctx, q,
		"SELECT "+departmentColumns+" FROM departments WHERE id = ? LIMIT 1", id)
}

func updateDepartment(ctx context.Context, q sqlx.ExtContext, id int64, patch models.DepartmentUpdate) (*models.Department, error) {
	if patch.DeptName != nil {
		_, err := q.ExecContext(ctx, "UPDATE departments SET dept_name = ? WHERE id = ?",
			strings.TrimSpace(*patch.DeptName), id)
		if err != nil {
			return nil, classifyWrite(err, departmentConflict)
		}
	}
	return findDepartment(ctx, q, id)
}
