package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/gamehub/gamehub-go/internal/api/handler"
	"github.com/gamehub/gamehub-go/internal/api/middleware"
	"github.com/gamehub/gamehub-go/internal/api/response"
	sharedmw "github.com/gamehub/gamehub-go/internal/middleware"
	"github.com/gamehub/gamehub-go/internal/observability"
	"github.com/gamehub/gamehub-go/internal/services/auth"
	"github.com/gamehub/gamehub-go/internal/services/catalog"
	"github.com/gamehub/gamehub-go/internal/services/play"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	CatalogService *catalog.Service
	PlayService    *play.Service
	// Metrics is optional; nil disables request metrics
	Metrics *observability.Metrics

	// AllowedOrigins lists browser origins allowed to make credentialed requests
	AllowedOrigins []string
	// AuthRateLimitRPS and AuthRateLimitBurst throttle signup and login per
	// client IP. A non-positive RPS disables throttling.
	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Metrics)
	gameHandler := handler.NewGameHandler(cfg.CatalogService, cfg.PlayService, cfg.Metrics)

	// Create middleware
	requireUser := middleware.RequireUser(cfg.AuthService)
	authRateLimit := middleware.RateLimit(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)
	loggingMiddleware := sharedmw.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	if cfg.Metrics != nil {
		api.Use(sharedmw.Metrics(cfg.Metrics))
	}

	// Credential routes (no session required, throttled)
	api.Handle("/auth/signup", authRateLimit(http.HandlerFunc(authHandler.Signup))).Methods(http.MethodPost)
	api.Handle("/auth/login", authRateLimit(http.HandlerFunc(authHandler.Login))).Methods(http.MethodPost)

	// Session routes (gated)
	api.HandleFunc("/auth/logout", requireUser(authHandler.Logout)).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", requireUser(authHandler.Me)).Methods(http.MethodGet)
	api.HandleFunc("/auth/current-user", requireUser(authHandler.Me)).Methods(http.MethodGet)

	// Catalog routes
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/history", requireUser(gameHandler.History)).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/play", requireUser(gameHandler.Play)).Methods(http.MethodPost)

	// Placeholder artwork
	api.HandleFunc("/placeholder/{width:[0-9]+}/{height:[0-9]+}", handler.Placeholder).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Accept"}),
		handlers.AllowCredentials(),
	)

	return cors(r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
