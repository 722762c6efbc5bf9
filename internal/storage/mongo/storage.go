package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gamehub/gamehub-go/internal/model"
	"github.com/gamehub/gamehub-go/internal/storage"
)

// Collection names
const (
	usersCollection        = "users"
	gamesCollection        = "games"
	gameSessionsCollection = "game_sessions"
)

// Storage is a MongoDB-backed implementation of the storage interface
type Storage struct {
	client       *mongo.Client
	users        *mongo.Collection
	games        *mongo.Collection
	gameSessions *mongo.Collection
}

// New connects to MongoDB and ensures the required indexes exist
func New(ctx context.Context, cfg Config) (*Storage, error) {
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = DefaultConfig().ConnectTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	// Verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	s := NewWithClient(client, cfg.databaseName())
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// NewWithClient creates a MongoDB storage with an existing client (for testing).
// Indexes are not created; call EnsureIndexes.
func NewWithClient(client *mongo.Client, database string) *Storage {
	db := client.Database(database)
	return &Storage{
		client:       client,
		users:        db.Collection(usersCollection),
		games:        db.Collection(gamesCollection),
		gameSessions: db.Collection(gameSessionsCollection),
	}
}

// EnsureIndexes creates the unique email index on users and the lookup
// indexes on games and game_sessions. It is safe to call repeatedly.
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}

	if _, err := s.games.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("create games id index: %w", err)
	}

	if _, err := s.gameSessions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "started_at", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create game_sessions user index: %w", err)
	}

	return nil
}

// Close disconnects from MongoDB
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *Storage) findUser(ctx context.Context, filter bson.M) (*model.User, error) {
	var user model.User
	if err := s.users.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Game catalog operations

func (s *Storage) SaveGames(ctx context.Context, games []model.Game) error {
	if len(games) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(games))
	for _, g := range games {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"id": g.ID}).
			SetReplacement(g).
			SetUpsert(true))
	}

	_, err := s.games.BulkWrite(ctx, writes)
	return err
}

func (s *Storage) CountGames(ctx context.Context) (int64, error) {
	return s.games.CountDocuments(ctx, bson.M{})
}

func (s *Storage) ListGames(ctx context.Context) ([]model.Game, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetSort(bson.D{{Key: "id", Value: 1}})

	cursor, err := s.games.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	games := []model.Game{}
	if err := cursor.All(ctx, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var game model.Game
	if err := s.games.FindOne(ctx, bson.M{"id": id}).Decode(&game); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

// Game session operations

func (s *Storage) CreateGameSession(ctx context.Context, session *model.GameSession) error {
	_, err := s.gameSessions.InsertOne(ctx, session)
	return err
}

func (s *Storage) GetGameSessionsForUser(ctx context.Context, userID model.UserID) ([]*model.GameSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: 1}})

	cursor, err := s.gameSessions.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}

	sessions := []*model.GameSession{}
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
