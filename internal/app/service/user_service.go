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

type UserService interface {
	GetByID(id uint) (*model.User, error)
	List(page, limit int) ([]model.User, bool, error)
	UpdateProfile(userID uint, name, email, password string) (*model.User, error)
	Delete(ctx context.Context, userID uint) error
}

type userService struct {
	userRepo    repository.UserRepository
	revocations TokenRevoker
}

func NewUserService(userRepo repository.UserRepository, revocations TokenRevoker) UserService {
	return &userService{
		userRepo:    userRepo,
		revocations: revocations,
	}
}

func (s *userService) GetByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUser
		}
		logger.Error("Failed to fetch user", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return user, nil
}

func (s *userService) List(page, limit int) ([]model.User, bool, error) {
	return s.userRepo.List(page, limit)
}

// UpdateProfile changes name, email, or password. Empty fields are left
// untouched.
func (s *userService) UpdateProfile(userID uint, name, email, password string) (*model.User, error) {
	logger.Info("Updating user profile", map[string]interface{}{
		"user_id": userID,
	})

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUser
		}
		logger.Error("Failed to fetch user for profile update", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	updated := false
	if name != "" && name != user.Name {
		user.Name = name
		updated = true
	}
	if email != "" && email != user.Email {
		user.Email = email
		updated = true
	}
	if password != "" {
		hashed, err := util.HashPassword(password)
		if err != nil {
			logger.Error("Failed to hash password", err, map[string]interface{}{
				"user_id": userID,
			})
			return nil, err
		}
		user.PasswordHash = hashed
		updated = true
	}

	if !updated {
		return user, nil
	}

	if err := s.userRepo.Update(user); err != nil {
		logger.Error("Failed to update user profile", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User profile updated successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, nil
}

// Delete removes the user and invalidates every session ever issued to
// them. A later login with the deleted credentials fails as unknown user.
func (s *userService) Delete(ctx context.Context, userID uint) error {
	logger.Info("Deleting user", map[string]interface{}{
		"user_id": userID,
	})

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownUser
		}
		return err
	}

	if err := s.userRepo.Delete(userID); err != nil {
		return err
	}

	if err := s.revocations.RevokeUser(ctx, userID); err != nil {
		logger.Error("Failed to revoke sessions for deleted user", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	logger.Info("User deleted", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}
