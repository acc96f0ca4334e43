package models

import "time"

// Department mirrors the departments table.
type Department struct {
	ID        int64     `db:"id"`
	DeptNo    string    `db:"dept_no"`
	DeptName  string    `db:"dept_name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type DepartmentCreate struct {
	DeptNo   string
	DeptName string
}

type DepartmentUpdate struct {
	DeptName *string
}

func (u DepartmentUpdate) IsEmpty() bool { return u.DeptName == nil }

// DepartmentCondition filters departments; zero fields are ignored.
type DepartmentCondition struct {
	DeptNo   string
	DeptName string
}
