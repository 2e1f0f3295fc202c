package repository

import (
	"github.com/jwtpizza/pizza-backend/internal/app/model"
	"github.com/jwtpizza/pizza-backend/pkg/logger"
	"gorm.io/gorm"
)

type MenuRepository interface {
	Create(item *model.MenuItem) error
	List() ([]model.MenuItem, error)
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(item *model.MenuItem) error {
	logger.Debug("Adding menu item to database", map[string]interface{}{
		"title": item.Title,
		"price": item.Price,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to add menu item to database", err, map[string]interface{}{
			"title": item.Title,
		})
		return err
	}
	return nil
}

func (r *menuRepository) List() ([]model.MenuItem, error) {
	// Initialized so an empty catalog serializes as [] rather than null.
	items := []model.MenuItem{}
	if err := r.db.Order("id ASC").Find(&items).Error; err != nil {
		logger.Error("Failed to list menu items in database", err, nil)
		return nil, err
	}
	return items, nil
}
