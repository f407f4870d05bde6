package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionChecker looks up sessions issued by Service.
type SessionChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewSessionChecker(ttl time.Duration, redisClient *redis.Client) *SessionChecker {
	return &SessionChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

func (c *SessionChecker) UserID(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}

	fields, err := c.redisClient.HGetAll(ctx, SessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrInvalidSession
		}
		return "", fmt.Errorf("get session: %w", err)
	}

	userID := fields[fieldUserID]
	if userID == "" {
		return "", ErrInvalidSession
	}

	createdAtUnix, err := strconv.ParseInt(fields[fieldCreatedAt], 10, 64)
	if err != nil {
		return "", fmt.Errorf("parse session created at: %w", err)
	}
	if time.Since(time.Unix(createdAtUnix, 0)) > c.ttl {
		return "", ErrInvalidSession
	}

	return userID, nil
}
