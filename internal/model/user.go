package model

import "time"

// UserID uniquely identifies a user. It doubles as the session token.
type UserID string

// User is a registered portal account
type User struct {
	ID           UserID    `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"` // unique across users
	PasswordHash string    `json:"password_hash" bson:"password"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
