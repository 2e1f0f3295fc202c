package service

import (
	"context"
	"errors"

	"github.com/jwtpizza/pizza-backend/internal/app/model"
	"github.com/jwtpizza/pizza-backend/internal/app/repository"
	"github.com/jwtpizza/pizza-backend/pkg/factory"
	"github.com/jwtpizza/pizza-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInvalidOrder      = errors.New("invalid order")
	ErrFulfillmentFailed = errors.New("failed to fulfill order at factory")
)

// Fulfiller forwards a placed order to the external factory. The concrete
// implementation is pkg/factory.Client; tests substitute doubles.
type Fulfiller interface {
	Fulfill(ctx context.Context, req factory.FulfillRequest) (*factory.FulfillResponse, error)
}

// OrderItemInput is a client-supplied line item. Prices are taken as
// submitted and not re-checked against the catalog.
type OrderItemInput struct {
	MenuID      uint
	Description string
	Price       float64
}

type OrderService interface {
	Create(ctx context.Context, user *model.User, franchiseID, storeID uint, items []OrderItemInput) (*model.Order, error)
	ListForUser(userID uint, page, limit int) ([]model.Order, bool, error)
}

type orderService struct {
	orderRepo     repository.OrderRepository
	franchiseRepo repository.FranchiseRepository
	fulfiller     Fulfiller
	db            *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	franchiseRepo repository.FranchiseRepository,
	fulfiller Fulfiller,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		franchiseRepo: franchiseRepo,
		fulfiller:     fulfiller,
		db:            db,
	}
}

// Create persists the order and forwards it to the factory in one unit.
// If the factory call fails the transaction rolls back and no order is
// visible to the caller.
func (s *orderService) Create(ctx context.Context, user *model.User, franchiseID, storeID uint, items []OrderItemInput) (*model.Order, error) {
	if franchiseID == 0 || storeID == 0 || len(items) == 0 {
		return nil, ErrInvalidOrder
	}

	if _, err := s.franchiseRepo.FindStore(franchiseID, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	order := &model.Order{
		UserID:      user.ID,
		FranchiseID: franchiseID,
		StoreID:     storeID,
	}
	for _, item := range items {
		order.Items = append(order.Items, model.OrderItem{
			MenuID:      item.MenuID,
			Description: item.Description,
			Price:       item.Price,
		})
	}

	logger.Info("Creating order", map[string]interface{}{
		"user_id":      user.ID,
		"franchise_id": franchiseID,
		"store_id":     storeID,
		"items":        len(items),
	})

	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := repository.NewOrderRepository(tx)
		if err := txRepo.Create(order); err != nil {
			return err
		}

		req := factory.FulfillRequest{
			Diner: factory.Diner{
				ID:    user.ID,
				Name:  user.Name,
				Email: user.Email,
			},
		}
		req.Order.ID = order.ID
		req.Order.FranchiseID = franchiseID
		req.Order.StoreID = storeID
		for _, item := range order.Items {
			req.Order.Items = append(req.Order.Items, factory.OrderLine{
				MenuID:      item.MenuID,
				Description: item.Description,
				Price:       item.Price,
			})
		}

		resp, err := s.fulfiller.Fulfill(ctx, req)
		if err != nil {
			logger.Warn("Factory fulfillment failed", map[string]interface{}{
				"order_id": order.ID,
				"user_id":  user.ID,
				"error":    err.Error(),
			})
			return ErrFulfillmentFailed
		}

		order.FactoryJWT = resp.JWT
		order.ReportURL = resp.ReportURL
		return txRepo.Update(order)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order created and fulfilled", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  user.ID,
	})
	return order, nil
}

func (s *orderService) ListForUser(userID uint, page, limit int) ([]model.Order, bool, error) {
	return s.orderRepo.FindByUserID(userID, page, limit)
}
