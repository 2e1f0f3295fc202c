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

type FranchiseController struct {
	franchiseService service.FranchiseService
}

func NewFranchiseController(franchiseService service.FranchiseService) *FranchiseController {
	return &FranchiseController{franchiseService: franchiseService}
}

type CreateFranchiseRequest struct {
	Name        string   `json:"name" binding:"required"`
	AdminEmails []string `json:"admin_emails" binding:"required,min=1"`
}

type CreateStoreRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create makes a new franchise (admin only)
// POST /api/franchise
func (ctrl *FranchiseController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	actor, _ := middleware.GetUser(c)

	if decision := authz.Authorize(actor, authz.ActionCreateFranchise, authz.Resource{}); !decision.Allowed {
		respondDenied(c, decision)
		return
	}

	var req CreateFranchiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "name and admin_emails are required")
		return
	}

	franchise, err := ctrl.franchiseService.Create(req.Name, req.AdminEmails)
	if err != nil {
		if errors.Is(err, service.ErrUnknownUser) {
			apperrors.NotFound(c, apperrors.UserNotFound, err.Error())
			return
		}
		log.Error("Failed to create franchise", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, franchise)
}

// List returns a page of franchises with nested stores; open to everyone
// GET /api/franchise?page=&limit=&name=
func (ctrl *FranchiseController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	name := c.DefaultQuery("name", "*")

	franchises, more, err := ctrl.franchiseService.List(page, limit, name)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list franchises", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"franchises": franchises,
		"more":       more,
	})
}

// ListForUser returns the franchises a user holds a scoped role in.
// Non-admins asking about someone else get an empty list, not an error.
// GET /api/franchise/:userId
func (ctrl *FranchiseController) ListForUser(c *gin.Context) {
	actor, ok := middleware.GetUser(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid user id")
		return
	}

	decision := authz.Authorize(actor, authz.ActionViewFranchises, authz.Resource{OwnerID: uint(userID)})
	if !decision.Allowed {
		c.JSON(http.StatusOK, []model.Franchise{})
		return
	}

	franchises, err := ctrl.franchiseService.ListForUser(uint(userID))
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list franchises for user", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, franchises)
}

// Delete removes a franchise and its stores (admin only)
// DELETE /api/franchise/:id
func (ctrl *FranchiseController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	actor, _ := middleware.GetUser(c)

	franchiseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid franchise id")
		return
	}

	if decision := authz.Authorize(actor, authz.ActionDeleteFranchise, authz.Resource{}); !decision.Allowed {
		respondDenied(c, decision)
		return
	}

	if err := ctrl.franchiseService.Delete(uint(franchiseID)); err != nil {
		if errors.Is(err, service.ErrFranchiseNotFound) {
			apperrors.NotFound(c, apperrors.FranchiseNotFound, "franchise not found")
			return
		}
		log.Error("Failed to delete franchise", err, map[string]interface{}{
			"franchise_id": franchiseID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "franchise deleted"})
}

// CreateStore adds a store under a franchise (admin or that franchise's
// franchisee)
// POST /api/franchise/:id/store
func (ctrl *FranchiseController) CreateStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	actor, _ := middleware.GetUser(c)

	franchiseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid franchise id")
		return
	}

	decision := authz.Authorize(actor, authz.ActionCreateStore, authz.Resource{FranchiseID: uint(franchiseID)})
	if !decision.Allowed {
		respondDenied(c, decision)
		return
	}

	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "name is required")
		return
	}

	store, err := ctrl.franchiseService.CreateStore(uint(franchiseID), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrFranchiseNotFound) {
			apperrors.NotFound(c, apperrors.FranchiseNotFound, "franchise not found")
			return
		}
		log.Error("Failed to create store", err, map[string]interface{}{
			"franchise_id": franchiseID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, store)
}

// DeleteStore removes a store (admin or that franchise's franchisee)
// DELETE /api/franchise/:id/store/:storeId
func (ctrl *FranchiseController) DeleteStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	actor, _ := middleware.GetUser(c)

	franchiseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid franchise id")
		return
	}
	storeID, err := strconv.ParseUint(c.Param("storeId"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid store id")
		return
	}

	decision := authz.Authorize(actor, authz.ActionDeleteStore, authz.Resource{FranchiseID: uint(franchiseID)})
	if !decision.Allowed {
		respondDenied(c, decision)
		return
	}

	if err := ctrl.franchiseService.DeleteStore(uint(franchiseID), uint(storeID)); err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "store not found")
			return
		}
		log.Error("Failed to delete store", err, map[string]interface{}{
			"franchise_id": franchiseID,
			"store_id":     storeID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "store deleted"})
}
