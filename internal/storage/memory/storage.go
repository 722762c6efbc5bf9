package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gamehub/gamehub-go/internal/model"
	"github.com/gamehub/gamehub-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users        map[model.UserID]*model.User
	emailIndex   map[string]model.UserID
	games        map[model.GameID]model.Game
	gameSessions map[model.GameSessionID]*model.GameSession
	userSessions map[model.UserID][]model.GameSessionID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:        make(map[model.UserID]*model.User),
		emailIndex:   make(map[string]model.UserID),
		games:        make(map[model.GameID]model.Game),
		gameSessions: make(map[model.GameSessionID]*model.GameSession),
		userSessions: make(map[model.UserID][]model.GameSessionID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.emailIndex[user.Email]; ok {
		return model.ErrDuplicateEmail
	}
	u := *user
	s.users[user.ID] = &u
	s.emailIndex[user.Email] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

// Game catalog operations

func (s *Storage) SaveGames(ctx context.Context, games []model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range games {
		s.games[g.ID] = g
	}
	return nil
}

func (s *Storage) CountGames(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.games)), nil
}

func (s *Storage) ListGames(ctx context.Context) ([]model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]model.Game, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return &game, nil
}

// Game session operations

func (s *Storage) CreateGameSession(ctx context.Context, session *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs := *session
	s.gameSessions[session.ID] = &gs
	s.userSessions[session.UserID] = append(s.userSessions[session.UserID], session.ID)
	return nil
}

func (s *Storage) GetGameSessionsForUser(ctx context.Context, userID model.UserID) ([]*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.userSessions[userID]
	sessions := make([]*model.GameSession, 0, len(ids))
	for _, id := range ids {
		if gs, ok := s.gameSessions[id]; ok {
			copied := *gs
			sessions = append(sessions, &copied)
		}
	}
	return sessions, nil
}
