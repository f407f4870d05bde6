package auth

import "context"

// StaticChecker resolves tokens from a fixed map. DevUserID, when set,
// is returned for any token, including an empty one.
type StaticChecker struct {
	Sessions  map[string]string
	DevUserID string
}

func NewStaticChecker(devUserID string) *StaticChecker {
	return &StaticChecker{
		Sessions:  map[string]string{},
		DevUserID: devUserID,
	}
}

func (c *StaticChecker) UserID(_ context.Context, token string) (string, error) {
	if userID, ok := c.Sessions[token]; ok {
		return userID, nil
	}
	if c.DevUserID != "" {
		return c.DevUserID, nil
	}
	return "", ErrInvalidSession
}
