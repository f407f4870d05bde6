package auth

import (
	"context"

	"github.com/2beens/workoutcal/internal/gateway"
)

type userIDKey struct{}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey{}).(string)
	return userID
}

// ContextIdentity is the gateway.Identity of an authenticated request.
type ContextIdentity struct{}

var _ gateway.Identity = ContextIdentity{}

func (ContextIdentity) CurrentUserID(ctx context.Context) (string, error) {
	userID := UserIDFromContext(ctx)
	if userID == "" {
		return "", gateway.ErrNoUser
	}
	return userID, nil
}
