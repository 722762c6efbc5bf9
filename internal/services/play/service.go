package play

import (
	"context"
	"log/slog"

	"github.com/gamehub/gamehub-go/internal/dependencies/clock"
	"github.com/gamehub/gamehub-go/internal/dependencies/ids"
	"github.com/gamehub/gamehub-go/internal/model"
	"github.com/gamehub/gamehub-go/internal/services/catalog"
	"github.com/gamehub/gamehub-go/internal/storage"
)

// Result describes a newly started game session
type Result struct {
	Session *model.GameSession
	Game    *model.Game
}

// Service records play sessions for authenticated users
type Service struct {
	catalog *catalog.Service
	storage storage.Storage
	clock   clock.Clock
	ids     ids.Generator
	logger  *slog.Logger
}

// New creates a new play Service
func New(games *catalog.Service, storage storage.Storage, clock clock.Clock, ids ids.Generator, logger *slog.Logger) *Service {
	return &Service{
		catalog: games,
		storage: storage,
		clock:   clock,
		ids:     ids,
		logger:  logger,
	}
}

// Start records that user started the game with gameID.
// Returns model.ErrGameNotFound, without writing anything, if the game does not exist.
func (s *Service) Start(ctx context.Context, user *model.User, gameID model.GameID) (*Result, error) {
	game, err := s.catalog.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	session := &model.GameSession{
		ID:        model.GameSessionID(s.ids.NewID()),
		UserID:    user.ID,
		GameID:    game.ID,
		StartedAt: s.clock.Now().UTC(),
		Status:    model.GameSessionStatusActive,
	}

	if err := s.storage.CreateGameSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("game session started",
		slog.String("session_id", string(session.ID)),
		slog.String("user_id", string(user.ID)),
		slog.String("game_id", string(game.ID)),
	)

	return &Result{Session: session, Game: game}, nil
}

// History returns the game sessions user has started, oldest first
func (s *Service) History(ctx context.Context, user *model.User) ([]*model.GameSession, error) {
	return s.storage.GetGameSessionsForUser(ctx, user.ID)
}
