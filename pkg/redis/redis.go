package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/jwtpizza/pizza-backend/config"
	"github.com/jwtpizza/pizza-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// RevocationStore tracks logged-out bearer tokens and deleted users.
// Entries have no TTL because issued tokens never expire on their own.
type RevocationStore struct {
	client *redis.Client
}

// NewRevocationStore creates a store backed by the given Redis client.
func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

func tokenKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

func userKey(userID uint) string {
	return fmt.Sprintf("revoked_user:%d", userID)
}

// RevokeToken marks a single bearer token as revoked. Revoking an already
// revoked token is a no-op.
func (s *RevocationStore) RevokeToken(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, tokenKey(token), "revoked", 0).Err(); err != nil {
		logger.Error("Failed to revoke token", err, nil)
		return err
	}

	logger.Debug("Token revoked", nil)
	return nil
}

// IsTokenRevoked checks whether a bearer token has been revoked.
func (s *RevocationStore) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	val, err := s.client.Get(ctx, tokenKey(token)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token revocation", err, nil)
		return false, err
	}
	return val == "revoked", nil
}

// RevokeUser invalidates every token ever issued to the user. Called when
// the user record is deleted.
func (s *RevocationStore) RevokeUser(ctx context.Context, userID uint) error {
	if err := s.client.Set(ctx, userKey(userID), "revoked", 0).Err(); err != nil {
		logger.Error("Failed to revoke user sessions", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	logger.Debug("User sessions revoked", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

// IsUserRevoked checks whether all of a user's sessions were invalidated.
func (s *RevocationStore) IsUserRevoked(ctx context.Context, userID uint) (bool, error) {
	val, err := s.client.Get(ctx, userKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check user revocation", err, map[string]interface{}{
			"user_id": userID,
		})
		return false, err
	}
	return val == "revoked", nil
}
