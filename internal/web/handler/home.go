package handler

import (
	"log/slog"
	"net/http"

	"github.com/gamehub/gamehub-go/internal/services/catalog"
	"github.com/gamehub/gamehub-go/internal/web/middleware"
	"github.com/gamehub/gamehub-go/internal/web/templates/layout"
	"github.com/gamehub/gamehub-go/internal/web/templates/pages"
)

// HomeHandler handles the landing page
type HomeHandler struct {
	catalog *catalog.Service
	logger  *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(catalogService *catalog.Service, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		catalog: catalogService,
		logger:  logger,
	}
}

// Home renders the landing page with the game catalog
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	games, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list games", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pages.HomeData{
		PageData: layout.PageData{
			Title: "GameHub",
			User:  middleware.GetUser(r.Context()),
		},
		Games: games,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Home(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
