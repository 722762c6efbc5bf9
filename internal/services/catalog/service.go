package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gamehub/gamehub-go/internal/model"
	"github.com/gamehub/gamehub-go/internal/storage"
)

// Service serves the read-only game catalog
type Service struct {
	storage storage.Storage
	games   []model.Game
	logger  *slog.Logger
}

// New creates a catalog Service that seeds the given games.
// If games is nil, DefaultGames is used.
func New(storage storage.Storage, games []model.Game, logger *slog.Logger) *Service {
	if games == nil {
		games = DefaultGames()
	}
	return &Service{
		storage: storage,
		games:   games,
		logger:  logger,
	}
}

// Seed stores the catalog if the store holds no games yet and returns how
// many games were inserted. Running it again is a no-op.
func (s *Service) Seed(ctx context.Context) (int, error) {
	count, err := s.storage.CountGames(ctx)
	if err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	if count > 0 {
		s.logger.Debug("game catalog already seeded", slog.Int64("count", count))
		return 0, nil
	}

	if err := s.storage.SaveGames(ctx, s.games); err != nil {
		return 0, fmt.Errorf("seed games: %w", err)
	}

	s.logger.Info("game catalog seeded", slog.Int("count", len(s.games)))
	return len(s.games), nil
}

// List returns every game in the catalog, ordered by ID
func (s *Service) List(ctx context.Context) ([]model.Game, error) {
	return s.storage.ListGames(ctx)
}

// Get returns a single game or model.ErrGameNotFound
func (s *Service) Get(ctx context.Context, id model.GameID) (*model.Game, error) {
	return s.storage.GetGame(ctx, id)
}
