package testutil

import (
	"context"
	"sync"

	"github.com/gamehub/gamehub-go/internal/model"
	"github.com/gamehub/gamehub-go/internal/storage"
)

// CountingStorage wraps a Storage, counting calls per method and
// optionally failing the next call to a method with a given error.
type CountingStorage struct {
	inner storage.Storage

	mu    sync.Mutex
	calls map[string]int
	fail  map[string]error
}

var _ storage.Storage = (*CountingStorage)(nil)

// NewCountingStorage wraps inner
func NewCountingStorage(inner storage.Storage) *CountingStorage {
	return &CountingStorage{
		inner: inner,
		calls: make(map[string]int),
		fail:  make(map[string]error),
	}
}

// Calls returns how many times method has been invoked
func (c *CountingStorage) Calls(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

// FailNext makes the next call to method return err without reaching the inner storage
func (c *CountingStorage) FailNext(method string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fail[method] = err
}

func (c *CountingStorage) record(method string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[method]++
	if err, ok := c.fail[method]; ok {
		delete(c.fail, method)
		return err
	}
	return nil
}

func (c *CountingStorage) CreateUser(ctx context.Context, user *model.User) error {
	if err := c.record("CreateUser"); err != nil {
		return err
	}
	return c.inner.CreateUser(ctx, user)
}

func (c *CountingStorage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	if err := c.record("GetUser"); err != nil {
		return nil, err
	}
	return c.inner.GetUser(ctx, id)
}

func (c *CountingStorage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := c.record("GetUserByEmail"); err != nil {
		return nil, err
	}
	return c.inner.GetUserByEmail(ctx, email)
}

func (c *CountingStorage) SaveGames(ctx context.Context, games []model.Game) error {
	if err := c.record("SaveGames"); err != nil {
		return err
	}
	return c.inner.SaveGames(ctx, games)
}

func (c *CountingStorage) CountGames(ctx context.Context) (int64, error) {
	if err := c.record("CountGames"); err != nil {
		return 0, err
	}
	return c.inner.CountGames(ctx)
}

func (c *CountingStorage) ListGames(ctx context.Context) ([]model.Game, error) {
	if err := c.record("ListGames"); err != nil {
		return nil, err
	}
	return c.inner.ListGames(ctx)
}

func (c *CountingStorage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	if err := c.record("GetGame"); err != nil {
		return nil, err
	}
	return c.inner.GetGame(ctx, id)
}

func (c *CountingStorage) CreateGameSession(ctx context.Context, session *model.GameSession) error {
	if err := c.record("CreateGameSession"); err != nil {
		return err
	}
	return c.inner.CreateGameSession(ctx, session)
}

func (c *CountingStorage) GetGameSessionsForUser(ctx context.Context, userID model.UserID) ([]*model.GameSession, error) {
	if err := c.record("GetGameSessionsForUser"); err != nil {
		return nil, err
	}
	return c.inner.GetGameSessionsForUser(ctx, userID)
}
