package redisprofile

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/workoutcal/internal/gateway"

	"github.com/go-redis/redis/v8"
)

const profileKeyPrefix = "workoutcal-profile||"

// Store keeps one redis hash per user, one field per profile column.
type Store struct {
	redisClient *redis.Client
}

var _ gateway.ProfileStore = (*Store)(nil)

func NewStore(redisClient *redis.Client) *Store {
	return &Store{
		redisClient: redisClient,
	}
}

func ProfileKey(userID string) string {
	return profileKeyPrefix + userID
}

func (s *Store) FetchColumn(ctx context.Context, userID, column string, dst any, loading *gateway.LoadingFlag) error {
	defer gateway.Track(loading)()

	if err := gateway.ValidateColumn(column); err != nil {
		return err
	}

	raw, err := s.redisClient.HGet(ctx, ProfileKey(userID), column).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis hget %s: %w", column, err)
	}

	return gateway.DecodeColumn(raw, dst)
}

func (s *Store) PersistColumn(ctx context.Context, userID, column string, value any, loading *gateway.LoadingFlag) error {
	defer gateway.Track(loading)()

	if err := gateway.ValidateColumn(column); err != nil {
		return err
	}
	doc, err := gateway.EncodeColumn(value)
	if err != nil {
		return err
	}

	if err := s.redisClient.HSet(ctx, ProfileKey(userID), column, string(doc)).Err(); err != nil {
		return fmt.Errorf("redis hset %s: %w", column, err)
	}
	return nil
}
