package repository

import (
	"strings"

	"github.com/jwtpizza/pizza-backend/internal/app/model"
	"github.com/jwtpizza/pizza-backend/pkg/logger"
	"gorm.io/gorm"
)

type FranchiseRepository interface {
	Create(franchise *model.Franchise) error
	FindByID(id uint) (*model.Franchise, error)
	List(page, limit int, namePattern string) ([]model.Franchise, bool, error)
	ListForUser(userID uint) ([]model.Franchise, error)
	Delete(id uint) error
	CreateStore(store *model.Store) error
	FindStore(franchiseID, storeID uint) (*model.Store, error)
	DeleteStore(franchiseID, storeID uint) error
}

type franchiseRepository struct {
	db *gorm.DB
}

func NewFranchiseRepository(db *gorm.DB) FranchiseRepository {
	return &franchiseRepository{db: db}
}

func (r *franchiseRepository) Create(franchise *model.Franchise) error {
	logger.Debug("Creating franchise in database", map[string]interface{}{
		"name": franchise.Name,
	})

	if err := r.db.Create(franchise).Error; err != nil {
		logger.Error("Failed to create franchise in database", err, map[string]interface{}{
			"name": franchise.Name,
		})
		return err
	}
	return nil
}

func (r *franchiseRepository) FindByID(id uint) (*model.Franchise, error) {
	var franchise model.Franchise
	err := r.db.Preload("Stores").First(&franchise, id).Error
	if err != nil {
		return nil, err
	}
	return &franchise, nil
}

// List returns one page of franchises whose name matches the glob pattern
// ("*" matches everything), with stores nested, plus a more-pages flag.
func (r *franchiseRepository) List(page, limit int, namePattern string) ([]model.Franchise, bool, error) {
	if limit <= 0 {
		limit = 10
	}
	if page < 0 {
		page = 0
	}

	query := r.db.Preload("Stores").Order("id ASC")
	if namePattern != "" && namePattern != "*" {
		// Glob to SQL LIKE: * is the only wildcard in the pattern grammar.
		like := strings.ReplaceAll(namePattern, "%", "\\%")
		like = strings.ReplaceAll(like, "_", "\\_")
		like = strings.ReplaceAll(like, "*", "%")
		query = query.Where("name LIKE ?", like)
	}

	var franchises []model.Franchise
	err := query.Offset(page * limit).Limit(limit + 1).Find(&franchises).Error
	if err != nil {
		logger.Error("Failed to list franchises in database", err, map[string]interface{}{
			"page":  page,
			"limit": limit,
			"name":  namePattern,
		})
		return nil, false, err
	}

	more := len(franchises) > limit
	if more {
		franchises = franchises[:limit]
	}
	return franchises, more, nil
}

// ListForUser returns every live franchise where the user holds a
// franchise-scoped role. Grants pointing at deleted franchises drop out of
// the join naturally.
func (r *franchiseRepository) ListForUser(userID uint) ([]model.Franchise, error) {
	// Initialized so an empty result serializes as [] rather than null.
	franchises := []model.Franchise{}
	err := r.db.Preload("Stores").
		Joins("JOIN user_roles ON user_roles.franchise_id = franchises.id").
		Where("user_roles.user_id = ?", userID).
		Distinct("franchises.*").
		Find(&franchises).Error
	if err != nil {
		logger.Error("Failed to list franchises for user in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return franchises, nil
}

// Delete removes the franchise and cascades to its stores. Role grants
// referencing the franchise are intentionally left in place.
func (r *franchiseRepository) Delete(id uint) error {
	logger.Debug("Deleting franchise from database", map[string]interface{}{
		"franchise_id": id,
	})

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("franchise_id = ?", id).Delete(&model.Store{}).Error; err != nil {
			logger.Error("Failed to delete franchise stores from database", err, map[string]interface{}{
				"franchise_id": id,
			})
			return err
		}
		if err := tx.Delete(&model.Franchise{}, id).Error; err != nil {
			logger.Error("Failed to delete franchise from database", err, map[string]interface{}{
				"franchise_id": id,
			})
			return err
		}
		return nil
	})
}

func (r *franchiseRepository) CreateStore(store *model.Store) error {
	logger.Debug("Creating store in database", map[string]interface{}{
		"franchise_id": store.FranchiseID,
		"name":         store.Name,
	})

	if err := r.db.Create(store).Error; err != nil {
		logger.Error("Failed to create store in database", err, map[string]interface{}{
			"franchise_id": store.FranchiseID,
			"name":         store.Name,
		})
		return err
	}
	return nil
}

func (r *franchiseRepository) FindStore(franchiseID, storeID uint) (*model.Store, error) {
	var store model.Store
	err := r.db.Where("franchise_id = ? AND id = ?", franchiseID, storeID).First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *franchiseRepository) DeleteStore(franchiseID, storeID uint) error {
	logger.Debug("Deleting store from database", map[string]interface{}{
		"franchise_id": franchiseID,
		"store_id":     storeID,
	})

	result := r.db.Where("franchise_id = ? AND id = ?", franchiseID, storeID).Delete(&model.Store{})
	if result.Error != nil {
		logger.Error("Failed to delete store from database", result.Error, map[string]interface{}{
			"franchise_id": franchiseID,
			"store_id":     storeID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
