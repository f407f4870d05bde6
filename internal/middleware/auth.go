package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/workoutcal/internal/auth"
	"github.com/2beens/workoutcal/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const TokenHeader = "X-WORKOUTCAL-TOKEN"

type AuthMiddlewareHandler struct {
	checker              sessionChecker
	allowedPaths         map[string]bool
	allowedPathsPrefixes []string
}

func NewAuthMiddlewareHandler(checker sessionChecker) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		checker: checker,
		allowedPaths: map[string]bool{
			"/":                        true,
			"/version":                 true,
			"/body-params/definitions": true,
		},
		allowedPathsPrefixes: []string{},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	if h.allowedPaths[path] {
		return true
	}
	for _, prefix := range h.allowedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// AuthCheck resolves the session token to a user and stores the user id in
// the request context.
func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authToken := r.Header.Get(TokenHeader)
			userID, err := h.checker.UserID(ctx, authToken)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidSession) {
					log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
					span.SetStatus(codes.Error, "not-logged")
				} else {
					log.Errorf("[failed session check] => %s: %s", r.URL.Path, err)
					span.SetStatus(codes.Error, "check-session-err")
					span.RecordError(err)
				}
				http.Error(w, "no can do", http.StatusUnauthorized)
				return
			}

			span.SetAttributes(attribute.String("user", userID))
			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}
