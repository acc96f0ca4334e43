package services

import (
	"context"
	"strconv"

	"hrms/internal/domain"
	"hrms/internal/domain/models"
	"hrms/internal/pagination"
	"hrms/internal/repositories"

	"github.com/jmoiron/sqlx"
)

type DepartmentService struct {
	Departments *repositories.DepartmentRepository
}

func NewDepartmentService(db *sqlx.DB) *DepartmentService {
	return &DepartmentService{Departments: repositories.NewDepartmentRepository(db)}
}

func (s *DepartmentService) FindAll(ctx context.Context, page domain.PageRequest) ([]models.Department, error) {
	if page.Active() {
		total, err := s.Departments.Count(ctx)
		if err != nil {
			return nil, domain.HandleServiceError(err, "Failed to count departments")
		}
		pagination.RecordTotal(ctx, total)
	}
	out, err := s.Departments.FindAll(ctx, page.Window())
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to fetch departments")
	}
	return out, nil
}

func (s *DepartmentService) FindOne(ctx context.Context, id int64) (*models.Department, error) {
	d, err := s.Departments.FindOne(ctx, id)
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to fetch department")
	}
	if d == nil {
		return nil, departmentNotFound(id)
	}
	return d, nil
}

func (s *DepartmentService) Create(ctx context.Context, in models.DepartmentCreate) (*models.Department, error) {
	d, err := s.Departments.Create(ctx, in)
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to create department")
	}
	return d, nil
}

func (s *DepartmentService) Update(ctx context.Context, id int64, patch models.DepartmentUpdate) (*models.Department, error) {
	d, err := s.Departments.Update(ctx, id, patch)
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to update department")
	}
	if d == nil {
		return nil, departmentNotFound(id)
	}
	return d, nil
}

func (s *DepartmentService) Remove(ctx context.Context, id int64) error {
	n, err := s.Departments.Remove(ctx, id)
	if err != nil {
		return domain.HandleServiceError(err, "Failed to delete department")
	}
	if n == 0 {
		return departmentNotFound(id)
	}
	return nil
}

func departmentNotFound(id int64) error {
	return domain.NewNotFound("Department with ID " + strconv.FormatInt(id, 10))
}
