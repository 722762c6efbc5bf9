package redis

import (
	"fmt"

	"github.com/gamehub/gamehub-go/internal/model"
)

// Key prefix for all portal data
const keyPrefix = "gamehub"

// userKey returns the Redis key for a User document
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// gamesKey returns the Redis key for the HASH of game_id -> Game document
func gamesKey() string {
	return fmt.Sprintf("%s:games", keyPrefix)
}

// gameSessionKey returns the Redis key for a GameSession document
func gameSessionKey(id model.GameSessionID) string {
	return fmt.Sprintf("%s:game_session:%s", keyPrefix, id)
}

// userSessionsIndexKey returns the Redis key for the LIST of a user's game session keys
func userSessionsIndexKey(userID model.UserID) string {
	return fmt.Sprintf("%s:idx:game_sessions_for_user:%s", keyPrefix, userID)
}
