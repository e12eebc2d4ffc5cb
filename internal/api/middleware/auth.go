package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hugh/taskhive/internal/auth"
	"github.com/hugh/taskhive/internal/database/models"
)

type contextKey string

const (
	UserKey    contextKey = "user"
	SessionKey contextKey = "session"
)

// Auth resolves the bearer envelope to an authenticated user. The session is
// validated against the store and the associated user loaded; any failure is
// a bare 401 with no detail.
func Auth(sessions auth.SessionStore, users auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			envelope := strings.TrimPrefix(authHeader, "Bearer ")

			session, err := sessions.Validate(r.Context(), envelope)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := users.GetUserByID(r.Context(), session.UserID)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, UserKey, user)
			ctx = context.WithValue(ctx, SessionKey, session)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireActive rejects deactivated accounts. A valid session is not enough
// on its own; every protected route composes Auth then RequireActive.
func RequireActive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r.Context())
		if user == nil || !user.IsActive {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUser returns the authenticated user from the request context.
func GetUser(ctx context.Context) *models.User {
	if user, ok := ctx.Value(UserKey).(*models.User); ok {
		return user
	}
	return nil
}

// GetSession returns the validated session from the request context.
func GetSession(ctx context.Context) *models.AuthSession {
	if session, ok := ctx.Value(SessionKey).(*models.AuthSession); ok {
		return session
	}
	return nil
}
