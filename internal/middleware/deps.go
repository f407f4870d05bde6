package middleware

import (
	"context"

	"github.com/go-redis/redis_rate/v9"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=middleware_test

type sessionChecker interface {
	UserID(ctx context.Context, token string) (string, error)
}

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}
