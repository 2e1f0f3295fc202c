package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jwtpizza/pizza-backend/internal/app/model"
	"github.com/jwtpizza/pizza-backend/internal/app/service"
	"github.com/jwtpizza/pizza-backend/internal/authz"
	apperrors "github.com/jwtpizza/pizza-backend/internal/errors"
	"github.com/jwtpizza/pizza-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
	menuService  service.MenuService
}

func NewOrderController(orderService service.OrderService, menuService service.MenuService) *OrderController {
	return &OrderController{
		orderService: orderService,
		menuService:  menuService,
	}
}

type AddMenuItemRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	FranchiseID uint               `json:"franchise_id"`
	StoreID     uint               `json:"store_id"`
	Items       []OrderItemRequest `json:"items"`
}

type OrderItemRequest struct {
	MenuID      uint    `json:"menu_id"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// GetMenu returns the global pizza catalog; open to everyone
// GET /api/order/menu
func (ctrl *OrderController) GetMenu(c *gin.Context) {
	items, err := ctrl.menuService.List()
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list menu", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, items)
}

// AddMenuItem appends an item to the catalog and returns the updated menu
// (admin only)
// PUT /api/order/menu
func (ctrl *OrderController) AddMenuItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	actor, _ := middleware.GetUser(c)

	if decision := authz.Authorize(actor, authz.ActionUpdateMenu, authz.Resource{}); !decision.Allowed {
		respondDenied(c, decision)
		return
	}

	var req AddMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "title and a positive price are required")
		return
	}

	menu, err := ctrl.menuService.Add(&model.MenuItem{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidMenuItem) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid menu item")
			return
		}
		log.Error("Failed to add menu item", err, map[string]interface{}{
			"title": req.Title,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, menu)
}

// Create places an order and fulfills it at the factory in one unit
// POST /api/order
func (ctrl *OrderController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	actor, ok := middleware.GetUser(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	if decision := authz.Authorize(actor, authz.ActionCreateOrder, authz.Resource{}); !decision.Allowed {
		respondDenied(c, decision)
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid order body")
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{
			MenuID:      item.MenuID,
			Description: item.Description,
			Price:       item.Price,
		})
	}

	order, err := ctrl.orderService.Create(c.Request.Context(), actor, req.FranchiseID, req.StoreID, items)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrder):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "franchise, store, and at least one item are required")
		case errors.Is(err, service.ErrStoreNotFound):
			apperrors.NotFound(c, apperrors.StoreNotFound, "store not found")
		case errors.Is(err, service.ErrFulfillmentFailed):
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.FactoryFulfillmentFailed, "Failed to fulfill order at factory")
		default:
			log.Error("Failed to create order", err, map[string]interface{}{
				"user_id": actor.ID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":      order,
		"jwt":        order.FactoryJWT,
		"report_url": order.ReportURL,
	})
}

// List returns the requesting user's own order history
// GET /api/order
func (ctrl *OrderController) List(c *gin.Context) {
	actor, ok := middleware.GetUser(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	if decision := authz.Authorize(actor, authz.ActionListOrders, authz.Resource{OwnerID: actor.ID}); !decision.Allowed {
		respondDenied(c, decision)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	orders, more, err := ctrl.orderService.ListForUser(actor.ID, page, limit)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list orders", err, map[string]interface{}{
			"user_id": actor.ID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"page":   page,
		"more":   more,
	})
}
