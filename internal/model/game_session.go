package model

import "time"

// GameSessionID uniquely identifies a recorded play
type GameSessionID string

// GameSessionStatus is the lifecycle state of a play record
type GameSessionStatus string

const (
	GameSessionStatusActive GameSessionStatus = "active"
)

// GameSession records that a user started a game.
// Records are append-only; nothing ends or removes them.
type GameSession struct {
	ID        GameSessionID     `json:"id" bson:"_id"`
	UserID    UserID            `json:"user_id" bson:"user_id"`
	GameID    GameID            `json:"game_id" bson:"game_id"`
	StartedAt time.Time         `json:"started_at" bson:"started_at"`
	Status    GameSessionStatus `json:"status" bson:"status"`
}
