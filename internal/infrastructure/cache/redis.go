package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/meeting-autopilot/pkg/config"
)

const (
	keyPrefixChatID = "chatid:" // email -> chat user id
	chatIDTTL       = 24 * time.Hour
)

// RedisCache fronts the mapping table for email-to-chat-id lookups so
// repeated directory resolutions within a day stay off both the chat
// API and the database.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache client and verifies connectivity
func NewRedisCache(cfg *config.Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// GetChatID returns the cached chat user id for an email; empty on miss
func (c *RedisCache) GetChatID(ctx context.Context, email string) (string, error) {
	val, err := c.client.Get(ctx, keyPrefixChatID+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

// SetChatID caches an email to chat user id mapping
func (c *RedisCache) SetChatID(ctx context.Context, email, chatID string) error {
	return c.client.Set(ctx, keyPrefixChatID+email, chatID, chatIDTTL).Err()
}

// Close releases the underlying connection pool
func (c *RedisCache) Close() error {
	return c.client.Close()
}
