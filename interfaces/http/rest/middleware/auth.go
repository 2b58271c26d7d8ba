package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"vesseldocs-backend/pkg/auth"
	"vesseldocs-backend/pkg/common"
	"vesseldocs-backend/pkg/errors"
)

// SessionAuth validates the bearer session id on every request and places
// the session in the request context. Session-not-found and
// session-expired are surfaced with distinguishable error types so the
// calling layer can decide between silent retry and asking the user to
// re-authenticate.
func SessionAuth(authenticator *auth.Authenticator, ipLimiter *auth.IPRateLimiter, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)
			if !ipLimiter.Allow(clientIP) {
				common.RespondAppError(w, errors.NewRateLimitError(100, "minute"))
				return
			}

			sessionID := extractSessionID(r)
			if sessionID == "" {
				common.RespondAppError(w, errors.NewAuthError("missing session token"))
				return
			}

			session, err := authenticator.Validate(sessionID)
			if err != nil {
				logger.Debug("session validation failed",
					zap.String("ip", clientIP),
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				common.RespondAppError(w, err)
				return
			}

			ctx := auth.SetSessionInContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route on the session role placed by SessionAuth.
func RequireRole(role auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := auth.GetSessionFromContext(r.Context())
			if err != nil {
				common.RespondAppError(w, err)
				return
			}
			if session.Role != role {
				common.RespondAppError(w, errors.NewForbiddenError(""))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractSessionID pulls the opaque session id out of the Authorization
// header, with or without the Bearer prefix.
func extractSessionID(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return header
}

// getClientIP extracts the client IP address behind proxies.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
