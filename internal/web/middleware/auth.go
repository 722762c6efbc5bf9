package middleware

import (
	"context"
	"log/slog"
	"net/http"

	apimw "github.com/gamehub/gamehub-go/internal/api/middleware"
	"github.com/gamehub/gamehub-go/internal/model"
)

type contextKey string

const (
	userContextKey contextKey = "user"
)

// GetUser retrieves the signed-in user from the request context
// Returns nil if the visitor is anonymous
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// OptionalUser returns middleware that resolves the session cookie if present.
// Pages render for anonymous visitors too, so resolution failures are logged
// and treated as anonymous.
func OptionalUser(resolver apimw.Resolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.Resolve(r.Context(), apimw.TokenFromRequest(r))
			if err != nil {
				logger.Warn("could not resolve session", slog.String("error", err.Error()))
				user = nil
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
