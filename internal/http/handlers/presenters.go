package handlers

import (
	"time"

	"hrms/internal/domain/models"
	"hrms/internal/http/validation"
	"hrms/internal/services"
	"hrms/internal/utils"
)

// ---- requests ----

type createEmployeeReq struct {
	BirthDate string `json:"birthDate" binding:"required,datetime=2006-01-02"`
	FirstName string `json:"firstName" binding:"required,min=1,max=14"`
	LastName  string `json:"lastName" binding:"required,min=1,max=16"`
	Gender    string `json:"gender" binding:"required,oneof=M F"`
	HireDate  string `json:"hireDate" binding:"required,datetime=2006-01-02"`
}

func (r createEmployeeReq) toInput() (models.EmployeeCreate, error) {
	birth, err := parseDate("birthDate", r.BirthDate)
	if err != nil {
		return models.EmployeeCreate{}, err
	}
	hire, err := parseDate("hireDate", r.HireDate)
	if err != nil {
		return models.EmployeeCreate{}, err
	}
	return models.EmployeeCreate{
		BirthDate: birth,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Gender:    r.Gender,
		HireDate:  hire,
	}, nil
}

// updateEmployeeReq fields are optional; empty strings are treated as absent.
type updateEmployeeReq struct {
	BirthDate *string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=14"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=16"`
	Gender    *string `json:"gender" binding:"omitempty,oneof=M F"`
	HireDate  *string `json:"hireDate" binding:"omitempty,datetime=2006-01-02"`
}

func (r updateEmployeeReq) toPatch() (models.EmployeeUpdate, error) {
	var out models.EmployeeUpdate
	if present(r.BirthDate) {
		t, err := parseDate("birthDate", *r.BirthDate)
		if err != nil {
			return out, err
		}
		out.BirthDate = &t
	}
	if present(r.HireDate) {
		t, err := parseDate("hireDate", *r.HireDate)
		if err != nil {
			return out, err
		}
		out.HireDate = &t
	}
	if present(r.FirstName) {
		out.FirstName = r.FirstName
	}
	if present(r.LastName) {
		out.LastName = r.LastName
	}
	if present(r.Gender) {
		out.Gender = r.Gender
	}
	return out, nil
}

type genderQuery struct {
	Gender string `form:"gender" binding:"required,oneof=M F"`
}

type rosterQuery struct {
	Gender string `form:"gender" binding:"omitempty,oneof=M F"`
}

type createDepartmentReq struct {
	DeptNo   string `json:"deptNo" binding:"required,len=4"`
	DeptName string `json:"deptName" binding:"required,min=1,max=40"`
}

type updateDepartmentReq struct {
	DeptName *string `json:"deptName" binding:"omitempty,min=1,max=40"`
}

type createUserReq struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	FullName string `json:"fullName" binding:"omitempty,max=100"`
}

type updateUserReq struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=50"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	FullName *string `json:"fullName" binding:"omitempty,max=100"`
}

func (r updateUserReq) toPatch() services.UserPatch {
	return services.UserPatch{
		Username: r.Username,
		Password: r.Password,
		Email:    r.Email,
		Phone:    r.Phone,
		FullName: r.FullName,
	}
}

type registerReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"omitempty,max=100"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func present(s *string) bool { return s != nil && *s != "" }

func parseDate(field, s string) (time.Time, error) {
	t, err := utils.ParseDate(s)
	if err != nil {
		return time.Time{}, validation.Failed(field + " must be a valid date (YYYY-MM-DD)")
	}
	return t, nil
}

// ---- responses ----

type employeeResp struct {
	ID        int64  `json:"id"`
	EmpNo     int64  `json:"empNo"`
	BirthDate string `json:"birthDate"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
	HireDate  string `json:"hireDate"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toEmployeeResp(e models.Employee) employeeResp {
	return employeeResp{
		ID:        e.ID,
		EmpNo:     e.EmpNo,
		BirthDate: utils.FormatISO(e.BirthDate),
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Gender:    e.Gender,
		HireDate:  utils.FormatISO(e.HireDate),
		CreatedAt: utils.FormatISO(e.CreatedAt),
		UpdatedAt: utils.FormatISO(e.UpdatedAt),
	}
}

type departmentResp struct {
	ID        int64  `json:"id"`
	DeptNo    string `json:"deptNo"`
	DeptName  string `json:"deptName"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toDepartmentResp(d models.Department) departmentResp {
	return departmentResp{
		ID:        d.ID,
		DeptNo:    d.DeptNo,
		DeptName:  d.DeptName,
		CreatedAt: utils.FormatISO(d.CreatedAt),
		UpdatedAt: utils.FormatISO(d.UpdatedAt),
	}
}

// userResp never carries the password hash.
type userResp struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	FullName  *string `json:"fullName"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

func toUserResp(u models.User) userResp {
	out := userResp{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: utils.FormatISO(u.CreatedAt),
		UpdatedAt: utils.FormatISO(u.UpdatedAt),
	}
	if u.Phone.Valid {
		out.Phone = &u.Phone.String
	}
	if u.FullName.Valid {
		out.FullName = &u.FullName.String
	}
	return out
}

type authUserResp struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName *string `json:"fullName"`
}

type authResp struct {
	AccessToken string       `json:"accessToken"`
	User        authUserResp `json:"user"`
}

func toAuthResp(r *services.AuthResult) authResp {
	out := authResp{
		AccessToken: r.AccessToken,
		User: authUserResp{
			ID:       r.User.ID,
			Username: r.User.Username,
			Email:    r.User.Email,
		},
	}
	if r.User.FullName.Valid {
		out.User.FullName = &r.User.FullName.String
	}
	return out
}

func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
