package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jwtpizza/pizza-backend/internal/app/service"
	"github.com/jwtpizza/pizza-backend/internal/authz"
	apperrors "github.com/jwtpizza/pizza-backend/internal/errors"
	"github.com/jwtpizza/pizza-backend/internal/middleware"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GetMe returns the authenticated user's profile
// GET /api/user/me
func (ctrl *UserController) GetMe(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, user)
}

// List returns a page of all users (admin only)
// GET /api/user
func (ctrl *UserController) List(c *gin.Context) {
	actor, _ := middleware.GetUser(c)

	if decision := authz.Authorize(actor, authz.ActionListUsers, authz.Resource{}); !decision.Allowed {
		respondDenied(c, decision)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	users, more, err := ctrl.userService.List(page, limit)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list users", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"more":  more,
	})
}

// Update changes a user's profile (self or admin)
// PUT /api/user/:id
func (ctrl *UserController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	actor, _ := middleware.GetUser(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid user id")
		return
	}

	decision := authz.Authorize(actor, authz.ActionUpdateProfile, authz.Resource{OwnerID: uint(targetID)})
	if !decision.Allowed {
		respondDenied(c, decision)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request body")
		return
	}

	user, err := ctrl.userService.UpdateProfile(uint(targetID), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnknownUser) {
			apperrors.NotFound(c, apperrors.UserNotFound, "unknown user")
			return
		}
		log.Error("Failed to update user", err, map[string]interface{}{
			"user_id": targetID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Delete removes a user and revokes all their sessions (admin only)
// DELETE /api/user/:id
func (ctrl *UserController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	actor, _ := middleware.GetUser(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid user id")
		return
	}

	decision := authz.Authorize(actor, authz.ActionDeleteUser, authz.Resource{})
	if !decision.Allowed {
		respondDenied(c, decision)
		return
	}

	if err := ctrl.userService.Delete(c.Request.Context(), uint(targetID)); err != nil {
		if errors.Is(err, service.ErrUnknownUser) {
			apperrors.NotFound(c, apperrors.UserNotFound, "unknown user")
			return
		}
		log.Error("Failed to delete user", err, map[string]interface{}{
			"user_id": targetID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User %d deleted", targetID)})
}

// respondDenied maps a guard denial to 401 or 403.
func respondDenied(c *gin.Context, decision authz.Decision) {
	if decision.Reason == authz.ReasonUnauthenticated {
		apperrors.Unauthorized(c, "")
		return
	}
	apperrors.Forbidden(c, "")
}
