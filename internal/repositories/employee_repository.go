package repositories

import (
	"context"
	"strings"

	"hrms/internal/domain"
	"hrms/internal/domain/models"
	"hrms/internal/utils"

	"github.com/jmoiron/sqlx"
)

const employeeColumns = "id, emp_no, birth_date, first_name, last_name, gender, hire_date, created_at, updated_at"

type EmployeeRepository struct {
	DB *sqlx.DB
}

func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{DB: db}
}

// FindAll lists employees ordered by id; nil p means the default window.
func (r *EmployeeRepository) FindAll(ctx context.Context, p *domain.Pagination) ([]models.Employee, error) {
	return selectWindow[models.Employee](ctx, r.DB,
		"SELECT "+employeeColumns+" FROM employees ORDER BY id ASC", p)
}

func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.DB, "employees")
}

func (r *EmployeeRepository) FindOne(ctx context.Context, id int64) (*models.Employee, error) {
	return findEmployee(ctx, r.DB, id)
}

func (r *EmployeeRepository) FindByEmpNo(ctx context.Context, empNo int64) (*models.Employee, error) {
	return getOne[models.Employee](ctx, r.DB,
		"SELECT "+employeeColumns+" FROM employees WHERE emp_no = ? LIMIT 1", empNo)
}

func (r *EmployeeRepository) FindByCondition(ctx context.Context, cond models.EmployeeCondition, p *domain.Pagination) ([]models.Employee, error) {
	var w whereBuilder
	if cond.Gender != "" {
		w.add("gender = ?", cond.Gender)
	}
	if cond.EmpNo > 0 {
		w.add("emp_no = ?", cond.EmpNo)
	}
	return selectWindow[models.Employee](ctx, r.DB,
		"SELECT "+employeeColumns+" FROM employees"+w.String()+" ORDER BY id ASC", p, w.args...)
}

// SearchByName matches name as a substring of the first or last name.
func (r *EmployeeRepository) SearchByName(ctx context.Context, name string, p *domain.Pagination) ([]models.Employee, error) {
	pattern := "%" + utils.EscapeLike(utils.NormalizeSpace(name)) + "%"
	return selectWindow[models.Employee](ctx, r.DB,
		"SELECT "+employeeColumns+" FROM employees WHERE first_name LIKE ? OR last_name LIKE ? ORDER BY id ASC",
		p, pattern, pattern)
}

func (r *EmployeeRepository) Create(ctx context.Context, in models.EmployeeCreate) (*models.Employee, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO employees (emp_no, birth_date, first_name, last_name, gender, hire_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		in.EmpNo, in.BirthDate, strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName), in.Gender, in.HireDate,
	)
	if err != nil {
		return nil, classifyWrite(err, "Employee number already exists")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return findEmployee(ctx, r.DB, id)
}

// Update applies patch and returns the stored row, or nil when id does not exist.
func (r *EmployeeRepository) Update(ctx context.Context, id int64, patch models.EmployeeUpdate) (*models.Employee, error) {
	return updateEmployee(ctx, r.DB, id, patch)
}

// TxUpdate is Update running on a caller-owned transaction.
func (r *EmployeeRepository) TxUpdate(ctx context.Context, tx *sqlx.Tx, id int64, patch models.EmployeeUpdate) (*models.Employee, error) {
	return updateEmployee(ctx, tx, id, patch)
}

func (r *EmployeeRepository) Remove(ctx context.Context, id int64) (int64, error) {
	return remove(ctx, r.DB, "employees", id)
}

func findEmployee(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Employee, error) {
	return getOne[models.Employee](ctx, q,
		"SELECT "+employeeColumns+" FROM employees WHERE id = ? LIMIT 1", id)
}

func updateEmployee(ctx context.Context, q sqlx.ExtContext, id int64, patch models.EmployeeUpdate) (*models.Employee, error) {
	var s setBuilder
	if patch.BirthDate != nil {
		s.add("birth_date", *patch.BirthDate)
	}
	if patch.FirstName != nil {
		s.add("first_name", strings.TrimSpace(*patch.FirstName))
	}
	if patch.LastName != nil {
		s.add("last_name", strings.TrimSpace(*patch.LastName))
	}
	if patch.Gender != nil {
		s.add("gender", *patch.Gender)
	}
	if patch.HireDate != nil {
		s.add("hire_date", *patch.HireDate)
	}

	if !s.empty() {
		// MySQL reports unchanged rows as not affected, so existence is decided by the re-read.
		args := append(s.args, id)
		if _, err := q.ExecContext(ctx, "UPDATE employees SET "+s.String()+" WHERE id = ?", args...); err != nil {
			return nil, classifyWrite(err, "Employee number already exists")
		}
	}
	return findEmployee(ctx, q, id)
}
