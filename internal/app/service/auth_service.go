package service

import (
	"context"
	"errors"

	"github.com/jwtpizza/pizza-backend/internal/app/model"
	"github.com/jwtpizza/pizza-backend/internal/app/repository"
	"github.com/jwtpizza/pizza-backend/pkg/logger"
	"github.com/jwtpizza/pizza-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUnknownUser        = errors.New("unknown user")
)

// TokenRevoker is the write side of the session revocation set.
type TokenRevoker interface {
	RevokeToken(ctx context.Context, token string) error
	RevokeUser(ctx context.Context, userID uint) error
}

type AuthService interface {
	Register(name, email, password string) (*model.User, string, error)
	Login(email, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
	IssueToken(user *model.User) (string, error)
}

type authService struct {
	userRepo    repository.UserRepository
	revocations TokenRevoker
	jwtSecret   string
}

func NewAuthService(userRepo repository.UserRepository, revocations TokenRevoker, jwtSecret string) AuthService {
	return &authService{
		userRepo:    userRepo,
		revocations: revocations,
		jwtSecret:   jwtSecret,
	}
}

func (s *authService) Register(name, email, password string) (*model.User, string, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"email": email,
		"name":  name,
	})

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": email,
		})
		return nil, "", err
	}
	if existing != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, "", ErrEmailAlreadyExists
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, "", err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Roles:        []model.UserRole{{Role: model.RoleDiner}},
	}
	if err := s.userRepo.Create(user); err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		logger.Error("Failed to issue token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, "", err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})
	return user, token, nil
}

func (s *authService) Login(email, password string) (*model.User, string, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, "", ErrUnknownUser
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"email": email,
		})
		return nil, "", err
	}

	// Wrong password reads the same as an unknown account from outside.
	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"email":   email,
			"user_id": user.ID,
		})
		return nil, "", ErrUnknownUser
	}

	token, err := s.IssueToken(user)
	if err != nil {
		logger.Error("Failed to issue token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, "", err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})
	return user, token, nil
}

// Logout adds the bearer token to the revocation set. Revoking an already
// revoked token succeeds quietly.
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.revocations.RevokeToken(ctx, token)
}

// IssueToken signs a bearer token carrying the user's identity and role
// list. Always succeeds for a valid user record.
func (s *authService) IssueToken(user *model.User) (string, error) {
	roles := make([]util.RoleClaim, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, util.RoleClaim{Role: string(r.Role), FranchiseID: r.FranchiseID})
	}
	return util.GenerateToken(user.ID, user.Name, user.Email, roles, s.jwtSecret)
}
