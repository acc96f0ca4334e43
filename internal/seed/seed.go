// Package seed loads the reference departments, employees and users.
// Rows that already exist are skipped, so Run can be repeated safely.
package seed

import (
	"context"
	"fmt"
	"time"

	"hrms/internal/auth"
	"hrms/internal/domain/models"
	"hrms/internal/repositories"
	"hrms/internal/utils"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type userSeed struct {
	Username string
	Password string
	Email    string
	Phone    string
	FullName string
}

var departments = []models.DepartmentCreate{
	{DeptNo: "d001", DeptName: "Marketing"},
	{DeptNo: "d002", DeptName: "Finance"},
	{DeptNo: "d003", DeptName: "Human Resources"},
	{DeptNo: "d004", DeptName: "Production"},
	{DeptNo: "d005", DeptName: "Development"},
	{DeptNo: "d006", DeptName: "Quality Management"},
	{DeptNo: "d007", DeptName: "Sales"},
	{DeptNo: "d008", DeptName: "Research"},
	{DeptNo: "d009", DeptName: "Customer Service"},
}

var employees = []models.EmployeeCreate{
	emp(10001, "Georgi", "Facello", "M", "1953-09-02", "1986-06-26"),
	emp(10002, "Bezalel", "Simmel", "F", "1964-06-02", "1985-11-21"),
	emp(10003, "Parto", "Bamford", "M", "1959-12-03", "1986-08-28"),
	emp(10004, "Chirstian", "Koblick", "M", "1954-05-01", "1986-12-01"),
	emp(10005, "Kyoichi", "Maliniak", "M", "1955-01-21", "1989-09-12"),
	emp(10006, "Anneke", "Preusig", "F", "1953-04-20", "1989-06-02"),
	emp(10007, "Tzvetan", "Zielinski", "F", "1957-05-23", "1989-02-10"),
	emp(10008, "Saniya", "Kalloufi", "M", "1958-02-19", "1994-09-15"),
	emp(10009, "Sumant", "Peac", "F", "1952-04-19", "1985-02-18"),
	emp(10010, "Duangkaew", "Piveteau", "F", "1963-06-01", "1989-08-24"),
}

var users = []userSeed{
	{"admin", "Admin@123", "admin@example.com", "+1234567890", "System Administrator"},
	{"johndoe", "John@123", "john.doe@example.com", "+1234567891", "John Doe"},
	{"janedoe", "Jane@123", "jane.doe@example.com", "+1234567892", "Jane Doe"},
	{"bobsmith", "Bob@123", "bob.smith@example.com", "+1234567893", "Bob Smith"},
	{"alicejones", "Alice@123", "alice.jones@example.com", "+1234567894", "Alice Jones"},
	{"charliebrwn", "Charlie@123", "charlie.brown@example.com", "+1234567895", "Charlie Brown"},
	{"dianaprince", "Diana@123", "diana.prince@example.com", "+1234567896", "Diana Prince"},
	{"evanwilson", "Evan@123", "evan.wilson@example.com", "+1234567897", "Evan Wilson"},
	{"fionagrey", "Fiona@123", "fiona.grey@example.com", "+1234567898", "Fiona Grey"},
	{"georgewhite", "George@123", "george.white@example.com", "+1234567899", "George White"},
}

func emp(no int64, first, last, gender, birth, hire string) models.EmployeeCreate {
	return models.EmployeeCreate{
		EmpNo:     no,
		FirstName: first,
		LastName:  last,
		Gender:    gender,
		BirthDate: mustDate(birth),
		HireDate:  mustDate(hire),
	}
}

func mustDate(s string) time.Time {
	t, err := utils.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Result counts the rows inserted by Run.
type Result struct {
	Departments int
	Employees   int
	Users       int
}

type Seeder struct {
	Departments *repositories.DepartmentRepository
	Employees   *repositories.EmployeeRepository
	Users       *repositories.UserRepository
	Hasher      auth.PasswordHasher
	Log         *zap.Logger
}

func New(db *sqlx.DB, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{
		Departments: repositories.NewDepartmentRepository(db),
		Employees:   repositories.NewEmployeeRepository(db),
		Users:       repositories.NewUserRepository(db),
		Hasher:      auth.PasswordHasher{Cost: auth.RegisterCost},
		Log:         log,
	}
}

func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var res Result
	var err error
	if res.Departments, err = s.seedDepartments(ctx); err != nil {
		return res, fmt.Errorf("seed departments: %w", err)
	}
	if res.Employees, err = s.seedEmployees(ctx); err != nil {
		return res, fmt.Errorf("seed employees: %w", err)
	}
	if res.Users, err = s.seedUsers(ctx); err != nil {
		return res, fmt.Errorf("seed users: %w", err)
	}
	return res, nil
}

func (s *Seeder) seedDepartments(ctx context.Context) (int, error) {
	n := 0
	for _, d := range departments {
		found, err := s.Departments.FindByCondition(ctx, models.DepartmentCondition{DeptNo: d.DeptNo}, nil)
		if err != nil {
			return n, err
		}
		if len(found) > 0 {
			continue
		}
		if _, err := s.Departments.Create(ctx, d); err != nil {
			return n, err
		}
		n++
	}
	s.Log.Info("departments seeded", zap.Int("inserted", n))
	return n, nil
}

func (s *Seeder) seedEmployees(ctx context.Context) (int, error) {
	n := 0
	for _, e := range employees {
		found, err := s.Employees.FindByEmpNo(ctx, e.EmpNo)
		if err != nil {
			return n, err
		}
		if found != nil {
			continue
		}
		if _, err := s.Employees.Create(ctx, e); err != nil {
			return n, err
		}
		n++
	}
	s.Log.Info("employees seeded", zap.Int("inserted", n))
	return n, nil
}

func (s *Seeder) seedUsers(ctx context.Context) (int, error) {
	n := 0
	for _, u := range users {
		found, err := s.Users.FindByUsername(ctx, u.Username)
		if err != nil {
			return n, err
		}
		if found != nil {
			s.Log.Info("user exists, skipping", zap.String("username", u.Username))
			continue
		}
		hash, err := s.Hasher.Hash(u.Password)
		if err != nil {
			return n, err
		}
		if _, err := s.Users.Create(ctx, models.UserCreate{
			Username:     u.Username,
			PasswordHash: hash,
			Email:        u.Email,
			Phone:        u.Phone,
			FullName:     u.FullName,
		}); err != nil {
			return n, err
		}
		n++
	}
	s.Log.Info("users seeded", zap.Int("inserted", n))
	return n, nil
}
