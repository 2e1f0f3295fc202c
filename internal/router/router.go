package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jwtpizza/pizza-backend/config"
	"github.com/jwtpizza/pizza-backend/internal/app/controller"
	apperrors "github.com/jwtpizza/pizza-backend/internal/errors"
	"github.com/jwtpizza/pizza-backend/internal/middleware"
)

type Router struct {
	authController      *controller.AuthController
	userController      *controller.UserController
	franchiseController *controller.FranchiseController
	orderController     *controller.OrderController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	franchiseController *controller.FranchiseController,
	orderController *controller.OrderController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		userController:      userController,
		franchiseController: franchiseController,
		orderController:     orderController,
		authMiddleware:      authMiddleware,
		config:              cfg,
	}
}

var endpoints = []string{
	"POST /api/auth",
	"PUT /api/auth",
	"DELETE /api/auth",
	"GET /api/user/me",
	"GET /api/user",
	"PUT /api/user/:id",
	"DELETE /api/user/:id",
	"GET /api/order/menu",
	"PUT /api/order/menu",
	"POST /api/order",
	"GET /api/order",
	"POST /api/franchise",
	"GET /api/franchise",
	"GET /api/franchise/:userId",
	"DELETE /api/franchise/:id",
	"POST /api/franchise/:id/store",
	"DELETE /api/franchise/:id/store/:storeId",
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "welcome to JWT Pizza",
			"version": r.config.Server.Version,
		})
	})

	router.GET("/api/docs", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":   r.config.Server.Version,
			"endpoints": endpoints,
		})
	})

	auth := router.Group("/api/auth")
	{
		auth.POST("", r.authController.Register)
		auth.PUT("", r.authController.Login)
		auth.DELETE("", r.authMiddleware.Authenticate(), r.authController.Logout)
	}

	user := router.Group("/api/user")
	user.Use(r.authMiddleware.Authenticate())
	{
		user.GET("/me", r.userController.GetMe)
		user.GET("", r.userController.List)
		user.PUT("/:id", r.userController.Update)
		user.DELETE("/:id", r.userController.Delete)
	}

	order := router.Group("/api/order")
	{
		order.GET("/menu", r.orderController.GetMenu)
		order.PUT("/menu", r.authMiddleware.Authenticate(), r.orderController.AddMenuItem)
		order.POST("", r.authMiddleware.Authenticate(), r.orderController.Create)
		order.GET("", r.authMiddleware.Authenticate(), r.orderController.List)
	}

	franchise := router.Group("/api/franchise")
	{
		franchise.GET("", r.authMiddleware.OptionalAuthenticate(), r.franchiseController.List)
		franchise.POST("", r.authMiddleware.Authenticate(), r.franchiseController.Create)
		franchise.GET("/:userId", r.authMiddleware.Authenticate(), r.franchiseController.ListForUser)
		franchise.DELETE("/:id", r.authMiddleware.Authenticate(), r.franchiseController.Delete)
		franchise.POST("/:id/store", r.authMiddleware.Authenticate(), r.franchiseController.CreateStore)
		franchise.DELETE("/:id/store/:storeId", r.authMiddleware.Authenticate(), r.franchiseController.DeleteStore)
	}

	router.NoRoute(func(c *gin.Context) {
		apperrors.NotFound(c, apperrors.EndpointNotFound, "unknown endpoint")
	})

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
