package repositories

import (
	"context"
	"strings"

	intdb "hrms/internal/db"
	"hrms/internal/domain"
	"hrms/internal/domain/models"

	"github.com/jmoiron/sqlx"
)

const userColumns = "id, username, password_hash, email, phone, full_name, created_at, updated_at"

const userConflict = "Username or email already exists"

type UserRepository struct {
	DB *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindAll(ctx context.Context, p *domain.Pagination) ([]models.User, error) {
	return selectWindow[models.User](ctx, r.DB,
		"SELECT "+userColumns+" FROM users ORDER BY id ASC", p)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.DB, "users")
}

func (r *UserRepository) FindOne(ctx context.Context, id int64) (*models.User, error) {
	return findUser(ctx, r.DB, id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return getOne[models.User](ctx, r.DB,
		"SELECT "+userColumns+" FROM users WHERE username = ? LIMIT 1", strings.TrimSpace(username))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return getOne[models.User](ctx, r.DB,
		"SELECT "+userColumns+" FROM users WHERE email = ? LIMIT 1", strings.TrimSpace(email))
}

func (r *UserRepository) FindByCondition(ctx context.Context, cond models.UserCondition, p *domain.Pagination) ([]models.User, error) {
	var w whereBuilder
	if cond.Username != "" {
		w.add("username = ?", cond.Username)
	}
	if cond.Email != "" {
		w.add("email = ?", cond.Email)
	}
	return selectWindow[models.User](ctx, r.DB,
		"SELECT "+userColumns+" FROM users"+w.String()+" ORDER BY id ASC", p, w.args...)
}

func (r *UserRepository) Create(ctx context.Context, in models.UserCreate) (*models.User, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, email, phone, full_name)
		 VALUES (?, ?, ?, ?, ?)`,
		strings.TrimSpace(in.Username), in.PasswordHash, strings.TrimSpace(in.Email),
		intdb.NullIfEmpty(strings.TrimSpace(in.Phone)), intdb.NullIfEmpty(strings.TrimSpace(in.FullName)),
	)
	if err != nil {
		return nil, classifyWrite(err, userConflict)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return findUser(ctx, r.DB, id)
}

func (r *UserRepository) Update(ctx context.Context, id int64, patch models.UserUpdate) (*models.User, error) {
	var s setBuilder
	if patch.Username != nil {
		s.add("username", strings.TrimSpace(*patch.Username))
	}
	if patch.PasswordHash != nil {
		s.add("password_hash", *patch.PasswordHash)
	}
	if patch.Email != nil {
		s.add("email", strings.TrimSpace(*patch.Email))
	}
	if patch.Phone != nil {
		s.add("phone", intdb.NullIfEmpty(strings.TrimSpace(*patch.Phone)))
	}
	if patch.FullName != nil {
		s.add("full_name", intdb.NullIfEmpty(strings.TrimSpace(*patch.FullName)))
	}

	if !s.empty() {
		args := append(s.args, id)
		if _, err := r.DB.ExecContext(ctx, "UPDATE users SET "+s.String()+" WHERE id = ?", args...); err != nil {
			return nil, classifyWrite(err, userConflict)
		}
	}
	return findUser(ctx, r.DB, id)
}

func (r *UserRepository) Remove(ctx context.Context, id int64) (int64, error) {
	return remove(ctx, r.DB, "users", id)
}

func findUser(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.User, error) {
	return getOne[models.User](ctx, q,
		"SELECT "+userColumns+" FROM users WHERE id = ? LIMIT 1", id)
}
