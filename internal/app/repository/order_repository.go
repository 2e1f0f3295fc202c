package repository

import (
	"github.com/jwtpizza/pizza-backend/internal/app/model"
	"github.com/jwtpizza/pizza-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *model.Order) error
	Update(order *model.Order) error
	FindByUserID(userID uint, page, limit int) ([]model.Order, bool, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"user_id":      order.UserID,
		"franchise_id": order.FranchiseID,
		"store_id":     order.StoreID,
		"items":        len(order.Items),
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"user_id":  order.UserID,
			"store_id": order.StoreID,
		})
		return err
	}
	return nil
}

func (r *orderRepository) Update(order *model.Order) error {
	if err := r.db.Save(order).Error; err != nil {
		logger.Error("Failed to update order in database", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return err
	}
	return nil
}

// FindByUserID returns one page of the user's own orders, newest first,
// plus a more-pages flag.
func (r *orderRepository) FindByUserID(userID uint, page, limit int) ([]model.Order, bool, error) {
	if limit <= 0 {
		limit = 10
	}
	if page < 0 {
		page = 0
	}

	var orders []model.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(page * limit).
		Limit(limit + 1).
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, false, err
	}

	more := len(orders) > limit
	if more {
		orders = orders[:limit]
	}
	return orders, more, nil
}
