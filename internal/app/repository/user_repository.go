package repository

import (
	"github.com/jwtpizza/pizza-backend/internal/app/model"
	"github.com/jwtpizza/pizza-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	List(page, limit int) ([]model.User, bool, error)
	Update(user *model.User) error
	Delete(id uint) error
	GrantRole(userID uint, role model.RoleName, franchiseID *uint) error
	FindFranchiseAdmins(franchiseID uint) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"email": user.Email,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": user.Email,
		})
		return err
	}
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Roles").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Roles").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns one page of users plus a flag indicating whether more pages
// follow. Page numbering is zero-indexed.
func (r *userRepository) List(page, limit int) ([]model.User, bool, error) {
	if limit <= 0 {
		limit = 10
	}
	if page < 0 {
		page = 0
	}

	var users []model.User
	// Fetch one extra row to detect whether another page exists.
	err := r.db.Preload("Roles").
		Order("id ASC").
		Offset(page * limit).
		Limit(limit + 1).
		Find(&users).Error
	if err != nil {
		logger.Error("Failed to list users in database", err, map[string]interface{}{
			"page":  page,
			"limit": limit,
		})
		return nil, false, err
	}

	more := len(users) > limit
	if more {
		users = users[:limit]
	}
	return users, more, nil
}

func (r *userRepository) Update(user *model.User) error {
	logger.Debug("Updating user in database", map[string]interface{}{
		"user_id": user.ID,
	})

	if err := r.db.Save(user).Error; err != nil {
		logger.Error("Failed to update user in database", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}
	return nil
}

// Delete removes the user and all of their role grants.
func (r *userRepository) Delete(id uint) error {
	logger.Debug("Deleting user from database", map[string]interface{}{
		"user_id": id,
	})

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.UserRole{}).Error; err != nil {
			logger.Error("Failed to delete user roles from database", err, map[string]interface{}{
				"user_id": id,
			})
			return err
		}
		if err := tx.Delete(&model.User{}, id).Error; err != nil {
			logger.Error("Failed to delete user from database", err, map[string]interface{}{
				"user_id": id,
			})
			return err
		}
		return nil
	})
}

// GrantRole adds a role grant to the user. Granting a role the user already
// holds is a no-op.
func (r *userRepository) GrantRole(userID uint, role model.RoleName, franchiseID *uint) error {
	query := r.db.Where("user_id = ? AND role = ?", userID, role)
	if franchiseID != nil {
		query = query.Where("franchise_id = ?", *franchiseID)
	} else {
		query = query.Where("franchise_id IS NULL")
	}

	var existing model.UserRole
	err := query.First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	grant := model.UserRole{
		UserID:      userID,
		Role:        role,
		FranchiseID: franchiseID,
	}
	if err := r.db.Create(&grant).Error; err != nil {
		logger.Error("Failed to grant role in database", err, map[string]interface{}{
			"user_id": userID,
			"role":    role,
		})
		return err
	}

	logger.Debug("Role granted", map[string]interface{}{
		"user_id": userID,
		"role":    role,
	})
	return nil
}

// FindFranchiseAdmins returns every user holding a franchisee role scoped
// to the given franchise.
func (r *userRepository) FindFranchiseAdmins(franchiseID uint) ([]model.User, error) {
	var users []model.User
	err := r.db.
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Where("user_roles.role = ? AND user_roles.franchise_id = ?", model.RoleFranchisee, franchiseID).
		Distinct("users.*").
		Find(&users).Error
	if err != nil {
		logger.Error("Failed to find franchise admins in database", err, map[string]interface{}{
			"franchise_id": franchiseID,
		})
		return nil, err
	}
	return users, nil
}
