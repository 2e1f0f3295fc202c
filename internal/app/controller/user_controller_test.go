package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jwtpizza/pizza-backend/internal/app/model"
	"github.com/jwtpizza/pizza-backend/internal/app/repository"
	"github.com/jwtpizza/pizza-backend/internal/app/service"
	"github.com/jwtpizza/pizza-backend/internal/db"
	"github.com/jwtpizza/pizza-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserControllerTest(t *testing.T) (*gin.Engine, repository.UserRepository) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	revocations := setupTestRevocations(t)
	userService := service.NewUserService(userRepo, revocations)

	ctrl := NewUserController(userService)
	authMiddleware := middleware.NewAuthMiddleware(testSecret, userRepo, revocations)

	router := gin.New()
	user := router.Group("/api/user")
	user.Use(authMiddleware.Authenticate())
	{
		user.GET("/me", ctrl.GetMe)
		user.GET("", ctrl.List)
		user.PUT("/:id", ctrl.Update)
		user.DELETE("/:id", ctrl.Delete)
	}

	return router, userRepo
}

func TestUserController_GetMe(t *testing.T) {
	router, userRepo := setupUserControllerTest(t)

	user, token := createUserWithToken(t, userRepo, "test@example.com")

	w := jsonRequest(t, router, "GET", "/api/user/me", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(user.ID), response["id"])
	assert.Equal(t, "test@example.com", response["email"])

	// Unauthenticated access is rejected
	w = jsonRequest(t, router, "GET", "/api/user/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserController_List(t *testing.T) {
	router, userRepo := setupUserControllerTest(t)

	_, dinerToken := createUserWithToken(t, userRepo, "diner@example.com")
	_, adminToken := createUserWithToken(t, userRepo, "admin@example.com", model.UserRole{Role: model.RoleAdmin})

	// Non-admins may not list users
	w := jsonRequest(t, router, "GET", "/api/user", nil, dinerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = jsonRequest(t, router, "GET", "/api/user", nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response["users"], 2)
	assert.Equal(t, false, response["more"])
}

func TestUserController_List_Pagination(t *testing.T) {
	router, userRepo := setupUserControllerTest(t)

	_, adminToken := createUserWithToken(t, userRepo, "admin@example.com", model.UserRole{Role: model.RoleAdmin})
	for i := 0; i < 3; i++ {
		createUserWithToken(t, userRepo, fmt.Sprintf("user%d@example.com", i))
	}

	w := jsonRequest(t, router, "GET", "/api/user?page=0&limit=2", nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response["users"], 2)
	assert.Equal(t, true, response["more"])
}

func TestUserController_Update(t *testing.T) {
	router, userRepo := setupUserControllerTest(t)

	user, token := createUserWithToken(t, userRepo, "test@example.com")
	other, otherToken := createUserWithToken(t, userRepo, "other@example.com")
	_, adminToken := createUserWithToken(t, userRepo, "admin@example.com", model.UserRole{Role: model.RoleAdmin})

	// A user may update their own profile
	w := jsonRequest(t, router, "PUT", fmt.Sprintf("/api/user/%d", user.ID), UpdateUserRequest{Name: "Renamed"}, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Renamed")

	// But not someone else's
	w = jsonRequest(t, router, "PUT", fmt.Sprintf("/api/user/%d", user.ID), UpdateUserRequest{Name: "Hacked"}, otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admins may update anyone
	w = jsonRequest(t, router, "PUT", fmt.Sprintf("/api/user/%d", other.ID), UpdateUserRequest{Name: "Admin Renamed"}, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	// Invalid id in the path
	w = jsonRequest(t, router, "PUT", "/api/user/abc", UpdateUserRequest{Name: "X"}, adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserController_Delete(t *testing.T) {
	router, userRepo := setupUserControllerTest(t)

	user, token := createUserWithToken(t, userRepo, "test@example.com")
	_, adminToken := createUserWithToken(t, userRepo, "admin@example.com", model.UserRole{Role: model.RoleAdmin})

	// Only admins may delete users, even their own account
	w := jsonRequest(t, router, "DELETE", fmt.Sprintf("/api/user/%d", user.ID), nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = jsonRequest(t, router, "DELETE", fmt.Sprintf("/api/user/%d", user.ID), nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf("User %d deleted", user.ID))

	// The deleted user's token stops working everywhere
	w = jsonRequest(t, router, "GET", "/api/user/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Deleting an unknown user reports not found
	w = jsonRequest(t, router, "DELETE", "/api/user/9999", nil, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
