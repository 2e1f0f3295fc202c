package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jwtpizza/pizza-backend/internal/app/model"
	apperrors "github.com/jwtpizza/pizza-backend/internal/errors"
	"github.com/jwtpizza/pizza-backend/pkg/util"
	"gorm.io/gorm"
)

// Context keys for authenticated request state
const (
	UserKey  = "user"
	TokenKey = "token"
)

// UserResolver re-resolves the token's identity against current state so
// role changes take effect without re-login.
type UserResolver interface {
	FindByID(id uint) (*model.User, error)
}

// RevocationChecker is the read side of the session revocation set.
type RevocationChecker interface {
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
	IsUserRevoked(ctx context.Context, userID uint) (bool, error)
}

type AuthMiddleware struct {
	jwtSecret   string
	users       UserResolver
	revocations RevocationChecker
}

func NewAuthMiddleware(jwtSecret string, users UserResolver, revocations RevocationChecker) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret:   jwtSecret,
		users:       users,
		revocations: revocations,
	}
}

// Authenticate validates the bearer token (required). Missing, malformed,
// or revoked tokens all answer 401.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		user, token, ok := m.resolve(c)
		if !ok {
			log.Warn("Authentication failed", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "unauthorized")
			c.Abort()
			return
		}

		c.Set(UserKey, user)
		c.Set(TokenKey, token)

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": user.ID,
			"email":   user.Email,
		})
		c.Next()
	}
}

// OptionalAuthenticate validates the bearer token if present; requests
// without a usable token continue as guests.
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, token, ok := m.resolve(c); ok {
			c.Set(UserKey, user)
			c.Set(TokenKey, token)
		}
		c.Next()
	}
}

// resolve extracts and verifies the bearer token, checks the revocation
// set, and loads the current user record.
func (m *AuthMiddleware) resolve(c *gin.Context) (*model.User, string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "", false
	}
	token := parts[1]

	claims, err := util.ValidateToken(token, m.jwtSecret)
	if err != nil {
		return nil, "", false
	}

	ctx := c.Request.Context()
	if revoked, err := m.revocations.IsTokenRevoked(ctx, token); err != nil || revoked {
		return nil, "", false
	}
	if revoked, err := m.revocations.IsUserRevoked(ctx, claims.UserID); err != nil || revoked {
		return nil, "", false
	}

	user, err := m.users.FindByID(claims.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			GetLoggerFromContext(c).Error("Failed to resolve token user", err, map[string]interface{}{
				"user_id": claims.UserID,
			})
		}
		return nil, "", false
	}

	return user, token, true
}

// GetUser extracts the authenticated user from context
func GetUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}

// GetToken extracts the raw bearer token from context
func GetToken(c *gin.Context) (string, bool) {
	value, exists := c.Get(TokenKey)
	if !exists {
		return "", false
	}
	token, ok := value.(string)
	return token, ok
}
