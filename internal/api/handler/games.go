package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gamehub/gamehub-go/internal/api/response"
	"github.com/gamehub/gamehub-go/internal/model"
	"github.com/gamehub/gamehub-go/internal/observability"
	"github.com/gamehub/gamehub-go/internal/services/catalog"
	"github.com/gamehub/gamehub-go/internal/services/play"
)

// GameHandler handles catalog and play endpoints
type GameHandler struct {
	catalog *catalog.Service
	play    *play.Service
	metrics *observability.Metrics
}

// NewGameHandler creates a new game handler. metrics may be nil.
func NewGameHandler(catalogService *catalog.Service, playService *play.Service, metrics *observability.Metrics) *GameHandler {
	return &GameHandler{
		catalog: catalogService,
		play:    playService,
		metrics: metrics,
	}
}

// List handles GET /api/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.catalog.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// Play handles POST /api/games/{id}/play
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request, user *model.User) {
	gameID := model.GameID(mux.Vars(r)["id"])

	result, err := h.play.Start(r.Context(), user, gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.metrics.RecordPlay(result.Game.ID)
	response.JSON(w, http.StatusOK, response.PlayResponseFromResult(result))
}

// History handles GET /api/games/history
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request, user *model.User) {
	sessions, err := h.play.History(r.Context(), user)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameSessionsFromModel(sessions))
}
