package models

import (
	"database/sql"
	"time"
)

// User mirrors the users table. PasswordHash never leaves the service layer.
type User struct {
	ID           int64          `db:"id"`
	Username     string         `db:"username"`
	PasswordHash string         `db:"password_hash"`
	Email        string         `db:"email"`
	Phone        sql.NullString `db:"phone"`
	FullName     sql.NullString `db:"full_name"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type UserCreate struct {
	Username     string
	PasswordHash string
	Email        string
	Phone        string
	FullName     string
}

type UserUpdate struct {
	Username     *string
	PasswordHash *string
	Email        *string
	Phone        *string
	FullName     *string
}

func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.PasswordHash == nil && u.Email == nil && u.Phone == nil && u.FullName == nil
}

// UserCondition filters users; zero fields are ignored.
type UserCondition struct {
	Username string
	Email    string
}
