package auth

import (
	"context"

	"vesseldocs-backend/pkg/errors"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SetSessionInContext attaches a validated session to the request context.
func SetSessionInContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// GetSessionFromContext extracts the session placed by the auth middleware.
func GetSessionFromContext(ctx context.Context) (*Session, error) {
	s, ok := ctx.Value(sessionContextKey).(*Session)
	if !ok || s == nil {
		return nil, errors.NewSessionNotFoundError()
	}
	return s, nil
}

// HasRole reports whether the context carries a session with the role.
func HasRole(ctx context.Context, role Role) bool {
	s, err := GetSessionFromContext(ctx)
	return err == nil && s.Role == role
}
