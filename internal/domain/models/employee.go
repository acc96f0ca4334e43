package models

import "time"

// Gender values accepted for employees.
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// Employee mirrors the employees table.
type Employee struct {
	ID        int64     `db:"id"`
	EmpNo     int64     `db:"emp_no"`
	BirthDate time.Time `db:"birth_date"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Gender    string    `db:"gender"`
	HireDate  time.Time `db:"hire_date"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// EmployeeCreate carries the columns written on insert.
type EmployeeCreate struct {
	EmpNo     int64
	BirthDate time.Time
	FirstName string
	LastName  string
	Gender    string
	HireDate  time.Time
}

// EmployeeUpdate supports PATCH-style updates; nil fields are left untouched.
type EmployeeUpdate struct {
	BirthDate *time.Time
	FirstName *string
	LastName  *string
	Gender    *string
	HireDate  *time.Time
}

// IsEmpty reports whether no column would change.
func (u EmployeeUpdate) IsEmpty() bool {
	return u.BirthDate == nil && u.FirstName == nil && u.LastName == nil && u.Gender == nil && u.HireDate == nil
}

// EmployeeCondition is the filter used by FindByCondition. Zero fields are ignored.
type EmployeeCondition struct {
	Gender string
	EmpNo  int64
}
