package storage

import (
	"context"

	"github.com/gamehub/gamehub-go/internal/model"
)

// Storage defines the interface for data persistence.
// Implementations must provide atomic single-record writes; they are the
// only serialization point in the application.
type Storage interface {
	// User operations
	// CreateUser returns model.ErrDuplicateEmail if the email is taken
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// Game catalog operations
	// SaveGames upserts by game ID, so saving the same game twice keeps one copy
	SaveGames(ctx context.Context, games []model.Game) error
	CountGames(ctx context.Context) (int64, error)
	ListGames(ctx context.Context) ([]model.Game, error)
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)

	// Game session operations (append-only)
	CreateGameSession(ctx context.Context, session *model.GameSession) error
	GetGameSessionsForUser(ctx context.Context, userID model.UserID) ([]*model.GameSession, error)
}
