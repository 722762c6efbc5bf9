package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gamehub/gamehub-go/internal/services/auth"
	"github.com/gamehub/gamehub-go/internal/services/catalog"
	"github.com/gamehub/gamehub-go/internal/web/handler"
	"github.com/gamehub/gamehub-go/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	CatalogService *catalog.Service
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Apply global middleware to all routes
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.OptionalUser(cfg.AuthService, cfg.Logger))

	homeHandler := handler.NewHomeHandler(cfg.CatalogService, cfg.Logger)
	r.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)

	return r
}
