package services

import (
	"context"
	"errors"
	"strconv"

	"hrms/internal/auth"
	"hrms/internal/domain"
	"hrms/internal/domain/models"
	"hrms/internal/pagination"
	"hrms/internal/repositories"

	"github.com/jmoiron/sqlx"
)

// NewUser is the input to UserService.Create. A non-empty PasswordHash is
// stored as is; otherwise Password is hashed.
type NewUser struct {
	Username     string
	Password     string
	PasswordHash string
	Email        string
	Phone        string
	FullName     string
}

// UserPatch carries optional changes; Password is re-hashed when present.
type UserPatch struct {
	Username *string
	Password *string
	Email    *string
	Phone    *string
	FullName *string
}

type UserService struct {
	Users  *repositories.UserRepository
	Hasher auth.PasswordHasher
}

func NewUserService(db *sqlx.DB) *UserService {
	return &UserService{
		Users:  repositories.NewUserRepository(db),
		Hasher: auth.PasswordHasher{Cost: auth.UserCost},
	}
}

func (s *UserService) FindAll(ctx context.Context, page domain.PageRequest) ([]models.User, error) {
	if page.Active() {
		total, err := s.Users.Count(ctx)
		if err != nil {
			return nil, domain.HandleServiceError(err, "Failed to count users")
		}
		pagination.RecordTotal(ctx, total)
	}
	out, err := s.Users.FindAll(ctx, page.Window())
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to fetch users")
	}
	return out, nil
}

func (s *UserService) FindOne(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.Users.FindOne(ctx, id)
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to fetch user")
	}
	if u == nil {
		return nil, domain.NewNotFound("User with ID " + strconv.FormatInt(id, 10))
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, in NewUser) (*models.User, error) {
	hash := in.PasswordHash
	if hash == "" {
		if in.Password == "" {
			return nil, domain.HandleServiceError(
				errors.New("Either password or passwordHash must be provided"), "Failed to create user")
		}
		var err error
		if hash, err = s.Hasher.Hash(in.Password); err != nil {
			return nil, domain.HandleServiceError(err, "Failed to create user")
		}
	}

	u, err := s.Users.Create(ctx, models.UserCreate{
		Username:     in.Username,
		PasswordHash: hash,
		Email:        in.Email,
		Phone:        in.Phone,
		FullName:     in.FullName,
	})
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to create user")
	}
	return u, nil
}

// Update requires the user to exist, applies the patch and returns the fresh row.
func (s *UserService) Update(ctx context.Context, id int64, patch UserPatch) (*models.User, error) {
	if _, err := s.FindOne(ctx, id); err != nil {
		return nil, err
	}

	upd := models.UserUpdate{
		Username: patch.Username,
		Email:    patch.Email,
		Phone:    patch.Phone,
		FullName: patch.FullName,
	}
	if patch.Password != nil {
		hash, err := s.Hasher.Hash(*patch.Password)
		if err != nil {
			return nil, domain.HandleServiceError(err, "Failed to update user")
		}
		upd.PasswordHash = &hash
	}

	if !upd.IsEmpty() {
		if _, err := s.Users.Update(ctx, id, upd); err != nil {
			return nil, domain.HandleServiceError(err, "Failed to update user")
		}
	}
	return s.FindOne(ctx, id)
}

func (s *UserService) Remove(ctx context.Context, id int64) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}
	if _, err := s.Users.Remove(ctx, id); err != nil {
		return domain.HandleServiceError(err, "Failed to remove user")
	}
	return nil
}

// FindByUsername returns nil, nil when nobody has that username.
func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := s.Users.FindByUsername(ctx, username)
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to fetch user")
	}
	return u, nil
}

// FindByEmail returns nil, nil when nobody has that email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to fetch user")
	}
	return u, nil
}
