package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gamehub/gamehub-go/internal/model"
	"github.com/gamehub/gamehub-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Every record is stored as a JSON document under its own key.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Claim the email first; SETNX makes the uniqueness check atomic
	claimed, err := s.client.SetNX(ctx, emailIndexKey(user.Email), string(user.ID), 0).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrDuplicateEmail
	}

	if err := s.client.Set(ctx, userKey(user.ID), data, 0).Err(); err != nil {
		// Release the claim so the email is not orphaned
		_ = s.client.Del(ctx, emailIndexKey(user.Email)).Err()
		return err
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	// Look up user ID from email index
	userID, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(userID))
}

// Game catalog operations

func (s *Storage) SaveGames(ctx context.Context, games []model.Game) error {
	if len(games) == 0 {
		return nil
	}

	fields := make(map[string]any, len(games))
	for _, g := range games {
		data, err := json.Marshal(g)
		if err != nil {
			return err
		}
		fields[string(g.ID)] = data
	}

	return s.client.HSet(ctx, gamesKey(), fields).Err()
}

func (s *Storage) CountGames(ctx context.Context) (int64, error) {
	return s.client.HLen(ctx, gamesKey()).Result()
}

func (s *Storage) ListGames(ctx context.Context) ([]model.Game, error) {
	values, err := s.client.HGetAll(ctx, gamesKey()).Result()
	if err != nil {
		return nil, err
	}

	games := make([]model.Game, 0, len(values))
	for _, val := range values {
		var game model.Game
		if err := json.Unmarshal([]byte(val), &game); err != nil {
			continue // Skip invalid data
		}
		games = append(games, game)
	}

	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.HGet(ctx, gamesKey(), string(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// Game session operations

func (s *Storage) CreateGameSession(ctx context.Context, session *model.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	key := gameSessionKey(session.ID)

	// Use transaction pipeline for atomic save + index append
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.RPush(ctx, userSessionsIndexKey(session.UserID), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGameSessionsForUser(ctx context.Context, userID model.UserID) ([]*model.GameSession, error) {
	keys, err := s.client.LRange(ctx, userSessionsIndexKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.GameSession{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.GameSession, 0, len(values))
	for _, val := range values {
		str, ok := val.(string)
		if !ok {
			continue
		}
		var gs model.GameSession
		if err := json.Unmarshal([]byte(str), &gs); err != nil {
			continue // Skip invalid data
		}
		sessions = append(sessions, &gs)
	}

	return sessions, nil
}
