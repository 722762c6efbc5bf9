package middleware

import (
	"context"
	"net/http"

	"github.com/gamehub/gamehub-go/internal/api/apierr"
	"github.com/gamehub/gamehub-go/internal/model"
)

// SessionCookieName is the cookie carrying the session token (the user ID)
const SessionCookieName = "user_id"

// Resolver maps a session token to a user.
// A nil user with a nil error means the token does not resolve.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*model.User, error)
}

// UserHandlerFunc is a handler that runs on behalf of an authenticated user
type UserHandlerFunc func(w http.ResponseWriter, r *http.Request, user *model.User)

// RequireUser returns a gate for handlers that need an authenticated user.
// Requests whose session does not resolve get 401 and never reach the
// wrapped handler; storage failures during resolution get 500.
func RequireUser(resolver Resolver) func(UserHandlerFunc) http.HandlerFunc {
	return func(next UserHandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.Resolve(r.Context(), TokenFromRequest(r))
			if err != nil {
				apierr.WriteError(w, err)
				return
			}
			if user == nil {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			next(w, r, user)
		}
	}
}

// TokenFromRequest extracts the session token from the request cookie.
// Returns "" when no session cookie is present.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
