package auth

import (
	"context"
	"errors"
)

var ErrInvalidSession = errors.New("invalid or expired session")

var _ Checker = (*SessionChecker)(nil)
var _ Checker = (*StaticChecker)(nil)

// Checker resolves a session token to the user it belongs to.
type Checker interface {
	UserID(ctx context.Context, token string) (string, error)
}
