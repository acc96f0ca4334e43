package services

import (
	"context"
	"fmt"
	"strconv"

	intdb "hrms/internal/db"
	"hrms/internal/domain"
	"hrms/internal/domain/models"
	"hrms/internal/notify"
	"hrms/internal/pagination"
	"hrms/internal/repositories"
	"hrms/internal/utils"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// firstEmpNo is the employee number given to the first hire.
const firstEmpNo = 10001

// renamedDeptNo is the department renamed by UpdateTransaction.
const renamedDeptNo = "d009"

// Notifier accepts fire-and-forget messages.
type Notifier interface {
	Enqueue(msg notify.Message) bool
}

type EmployeeService struct {
	DB          *sqlx.DB
	Employees   *repositories.EmployeeRepository
	Departments *repositories.DepartmentRepository
	Notifier    Notifier
	Log         *zap.Logger
}

func NewEmployeeService(db *sqlx.DB, notifier Notifier, log *zap.Logger) *EmployeeService {
	return &EmployeeService{
		DB:          db,
		Employees:   repositories.NewEmployeeRepository(db),
		Departments: repositories.NewDepartmentRepository(db),
		Notifier:    notifier,
		Log:         log,
	}
}

// FindAll lists employees. With an active page request the total count is
// recorded on the request's pagination carrier.
func (s *EmployeeService) FindAll(ctx context.Context, page domain.PageRequest) ([]models.Employee, error) {
	if page.Active() {
		total, err := s.Employees.Count(ctx)
		if err != nil {
			return nil, domain.HandleServiceError(err, "Failed to count employees")
		}
		pagination.RecordTotal(ctx, total)
	}
	out, err := s.Employees.FindAll(ctx, page.Window())
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to fetch employees")
	}
	return out, nil
}

func (s *EmployeeService) FindOne(ctx context.Context, id int64) (*models.Employee, error) {
	emp, err := s.Employees.FindOne(ctx, id)
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to fetch employee")
	}
	if emp == nil {
		return nil, employeeNotFound(id)
	}
	return emp, nil
}

// Create assigns the next employee number and queues a notification once the row exists.
func (s *EmployeeService) Create(ctx context.Context, in models.EmployeeCreate) (*models.Employee, error) {
	n, err := s.Employees.Count(ctx)
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to create employee")
	}
	in.EmpNo = firstEmpNo + n

	emp, err := s.Employees.Create(ctx, in)
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to create employee")
	}
	if emp == nil {
		return nil, domain.NewNotFound("Employee creation failed")
	}

	utils.LogEvent(s.Log, utils.RequestIDFrom(ctx), "employees", "create", "employee created",
		zap.Int64("id", emp.ID), zap.Int64("emp_no", emp.EmpNo))

	if s.Notifier != nil {
		s.Notifier.Enqueue(notify.Message{
			Title:       "New Employee Created",
			Description: fmt.Sprintf("Employee %s %s has been created.", in.FirstName, in.LastName),
		})
	}
	return emp, nil
}

func (s *EmployeeService) Update(ctx context.Context, id int64, patch models.EmployeeUpdate) (*models.Employee, error) {
	emp, err := s.Employees.Update(ctx, id, patch)
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to update employee")
	}
	if emp == nil {
		return nil, employeeNotFound(id)
	}
	return emp, nil
}

func (s *EmployeeService) Remove(ctx context.Context, id int64) error {
	n, err := s.Employees.Remove(ctx, id)
	if err != nil {
		return domain.HandleServiceError(err, "Failed to delete employee")
	}
	if n == 0 {
		return employeeNotFound(id)
	}
	return nil
}

func (s *EmployeeService) FindByGender(ctx context.Context, gender string) ([]models.Employee, error) {
	out, err := s.Employees.FindByCondition(ctx, models.EmployeeCondition{Gender: gender}, nil)
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to find employees by gender")
	}
	return out, nil
}

func (s *EmployeeService) FindByEmpNo(ctx context.Context, empNo int64) (*models.Employee, error) {
	emp, err := s.Employees.FindByEmpNo(ctx, empNo)
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to fetch employee")
	}
	if emp == nil {
		return nil, domain.NewNotFound("Employee with empNo " + strconv.FormatInt(empNo, 10))
	}
	return emp, nil
}

func (s *EmployeeService) SearchByName(ctx context.Context, name string) ([]models.Employee, error) {
	out, err := s.Employees.SearchByName(ctx, name, nil)
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to search employees")
	}
	return out, nil
}

// UpdateTransaction updates the employee and renames department d009 in one
// transaction. Either both writes land or neither does.
func (s *EmployeeService) UpdateTransaction(ctx context.Context, id int64, patch models.EmployeeUpdate) (*models.Employee, error) {
	var updated *models.Employee
	err := intdb.WithTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		emp, err := s.Employees.TxUpdate(ctx, tx, id, patch)
		if err != nil {
			return err
		}
		if emp == nil {
			return employeeNotFound(id)
		}

		name := "Data Science: " + strconv.FormatInt(id, 10)
		if _, err := s.Departments.TxUpdateOneByCondition(ctx, tx,
			models.DepartmentCondition{DeptNo: renamedDeptNo},
			models.DepartmentUpdate{DeptName: &name},
		); err != nil {
			return err
		}

		updated = emp
		return nil
	})
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to update employee")
	}
	return updated, nil
}

func employeeNotFound(id int64) error {
	return domain.NewNotFound("Employee with ID " + strconv.FormatInt(id, 10))
}
