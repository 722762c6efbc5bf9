package handler

import (
	"net/http"
	"time"

	"github.com/gamehub/gamehub-go/internal/api/middleware"
	"github.com/gamehub/gamehub-go/internal/model"
)

// setSessionCookie issues the session for user. The token is the user ID.
func setSessionCookie(w http.ResponseWriter, user *model.User, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    string(user.ID),
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie tells the client to drop its session cookie
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
