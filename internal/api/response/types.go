package response

import (
	"time"

	"github.com/gamehub/gamehub-go/internal/model"
	"github.com/gamehub/gamehub-go/internal/services/play"
)

// User is the public summary of an account; it never carries the password hash
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:       string(u.ID),
		Username: u.Username,
		Email:    u.Email,
	}
}

// Message is a response carrying only a human-readable message
type Message struct {
	Message string `json:"message"`
}

// AuthResponse is the response for signup and login
type AuthResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// Game represents a catalog entry in API responses
type Game struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Difficulty  string `json:"difficulty"`
}

// GameFromModel converts a model.Game
func GameFromModel(g model.Game) Game {
	return Game{
		ID:          string(g.ID),
		Title:       g.Title,
		Description: g.Description,
		ImageURL:    g.ImageURL,
		Difficulty:  string(g.Difficulty),
	}
}

// GamesFromModel converts a slice of games, never returning nil
func GamesFromModel(games []model.Game) []Game {
	result := make([]Game, 0, len(games))
	for _, g := range games {
		result = append(result, GameFromModel(g))
	}
	return result
}

// PlayResponse is the response for starting a game
type PlayResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	GameID    string `json:"game_id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
}

// PlayResponseFromResult converts a play.Result
func PlayResponseFromResult(r *play.Result) PlayResponse {
	return PlayResponse{
		Message:   "Game session started!",
		SessionID: string(r.Session.ID),
		GameID:    string(r.Game.ID),
		Title:     r.Game.Title,
		Status:    string(r.Session.Status),
	}
}

// GameSession is one entry in a user's play history
type GameSession struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	StartedAt time.Time `json:"started_at"`
	Status    string    `json:"status"`
}

// GameSessionsFromModel converts a play history, never returning nil
func GameSessionsFromModel(sessions []*model.GameSession) []GameSession {
	result := make([]GameSession, 0, len(sessions))
	for _, gs := range sessions {
		result = append(result, GameSession{
			ID:        string(gs.ID),
			GameID:    string(gs.GameID),
			StartedAt: gs.StartedAt,
			Status:    string(gs.Status),
		})
	}
	return result
}

// Health is the response for the health check
type Health struct {
	Status string `json:"status"`
}
