package services

import (
	"context"

	"hrms/internal/auth"
	"hrms/internal/domain"
	"hrms/internal/domain/models"
	"hrms/internal/utils"

	"go.uber.org/zap"
)

const msgBadCredentials = "Username or password is incorrect"

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Phone    string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	AccessToken string
	User        *models.User
}

type AuthService struct {
	Users  *UserService
	Tokens *auth.TokenManager
	Hasher auth.PasswordHasher
	Log    *zap.Logger
}

func NewAuthService(users *UserService, tokens *auth.TokenManager, log *zap.Logger) *AuthService {
	return &AuthService{
		Users:  users,
		Tokens: tokens,
		Hasher: auth.PasswordHasher{Cost: auth.RegisterCost},
		Log:    log,
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	existing, err := s.Users.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflict("Username already exists")
	}

	existing, err = s.Users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflict("Email already exists")
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, domain.HandleServiceError(err, "Failed to register user")
	}

	u, err := s.Users.Create(ctx, NewUser{
		Username:     in.Username,
		PasswordHash: hash,
		Email:        in.Email,
		Phone:        in.Phone,
		FullName:     in.FullName,
	})
	if err != nil {
		return nil, err
	}

	utils.LogEvent(s.Log, utils.RequestIDFrom(ctx), "auth", "register", "user registered", zap.Int64("user_id", u.ID))
	return s.issue(u)
}

// Login answers unknown user and wrong password with the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	u, err := s.Users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NewUnauthorized(msgBadCredentials)
	}

	ok, err := s.Hasher.Compare(u.PasswordHash, password)
	if err != nil || !ok {
		return nil, domain.NewUnauthorized(msgBadCredentials)
	}

	utils.LogEvent(s.Log, utils.RequestIDFrom(ctx), "auth", "login", "user logged in", zap.Int64("user_id", u.ID))
	return s.issue(u)
}

// Profile loads the token subject. A user deleted after the token was issued is Unauthorized.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	u, err := s.Users.FindOne(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorized("User not found")
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) issue(u *models.User) (*AuthResult, error) {
	token, _, err := s.Tokens.Issue(u.ID, u.Username)
	if err != nil {
		return nil, domain.NewInternal("Failed to issue access token", err)
	}
	return &AuthResult{AccessToken: token, User: u}, nil
}
