package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gamehub/gamehub-go/internal/api/request"
	"github.com/gamehub/gamehub-go/internal/api/response"
	"github.com/gamehub/gamehub-go/internal/model"
	"github.com/gamehub/gamehub-go/internal/observability"
	"github.com/gamehub/gamehub-go/internal/services/auth"
)

// AuthHandler handles signup, login, logout and current-user endpoints
type AuthHandler struct {
	authService *auth.Service
	metrics     *observability.Metrics
}

// NewAuthHandler creates a new auth handler. metrics may be nil.
func NewAuthHandler(authService *auth.Service, metrics *observability.Metrics) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		metrics:     metrics,
	}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	user, err := h.authService.Signup(r.Context(), req.Username, req.Email, req.Password)
	h.metrics.RecordAuth(observability.AuthEventSignup, err)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.issueSession(w, user)
	response.JSON(w, http.StatusCreated, response.AuthResponse{
		Message: "User created successfully!",
		User:    response.UserFromModel(user),
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	h.metrics.RecordAuth(observability.AuthEventLogin, err)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.issueSession(w, user)
	response.JSON(w, http.StatusOK, response.AuthResponse{
		Message: "Login successful!",
		User:    response.UserFromModel(user),
	})
}

// Logout handles POST /api/auth/logout.
// There is no server-side session, so logging out only clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request, _ *model.User) {
	clearSessionCookie(w)
	response.JSON(w, http.StatusOK, response.Message{Message: "Logged out successfully!"})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request, user *model.User) {
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

func (h *AuthHandler) issueSession(w http.ResponseWriter, user *model.User) {
	setSessionCookie(w, user, h.authService.SessionMaxAge())
}
