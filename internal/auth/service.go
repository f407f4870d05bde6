package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/workoutcal/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "workoutcal-session||"
	tokensSetKey     = "workoutcal-sessions"

	fieldUserID    = "user_id"
	fieldCreatedAt = "created_at"
)

var ErrEmptyUserID = errors.New("empty user id")

// Service issues and revokes session tokens. The login flow itself lives
// outside this module; it calls Issue once the user is authenticated.
type Service struct {
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func SessionKey(token string) string {
	return sessionKeyPrefix + token
}

// Issue creates a new session token bound to userID.
func (s *Service) Issue(ctx context.Context, userID string, createdAt time.Time) (string, error) {
	if userID == "" {
		return "", ErrEmptyUserID
	}

	token, err := s.RandStringFunc(35)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	if err := s.redisClient.HSet(
		ctx,
		SessionKey(token),
		fieldUserID, userID,
		fieldCreatedAt, createdAt.Unix(),
	).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	// add token to list of sessions
	if err := s.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", fmt.Errorf("register session: %w", err)
	}

	return token, nil
}

// Revoke removes the session. Revoking an unknown token is not an error.
func (s *Service) Revoke(ctx context.Context, token string) error {
	if err := s.redisClient.Del(ctx, SessionKey(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return fmt.Errorf("unregister session: %w", err)
	}
	return nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (s *Service) ScanAndClean(ctx context.Context) {
	sessionTokens, err := s.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	if len(sessionTokens) == 0 {
		log.Debugln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("=> auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		createdAtUnixStr, err := s.redisClient.HGet(ctx, SessionKey(token), fieldCreatedAt).Result()
		if errors.Is(err, redis.Nil) {
			toRemove = append(toRemove, token)
			continue
		}
		if err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}

		createdAtUnix, err := strconv.ParseInt(createdAtUnixStr, 10, 64)
		if err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}

		if time.Since(time.Unix(createdAtUnix, 0)) > s.ttl {
			log.Debugf("=>\twill clean the session with token: %s", token)
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if err := s.Revoke(ctx, token); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
		}
	}
}
