package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case GameList:
		o.printGameList(v)
	case PlayResult:
		o.printPlayResult(v)
	case PlayHistory:
		o.printPlayHistory(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResult is the signup and login response
type AuthResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// MessageResult is a response carrying only a message
type MessageResult struct {
	Message string `json:"message"`
}

// Game response type
type Game struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Difficulty  string `json:"difficulty"`
}

// GameList is the catalog listing
type GameList []Game

// PlayResult response type
type PlayResult struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	GameID    string `json:"game_id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
}

// PlayHistoryEntry is one recorded play
type PlayHistoryEntry struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	StartedAt time.Time `json:"started_at"`
	Status    string    `json:"status"`
}

// PlayHistory lists the caller's plays, oldest first
type PlayHistory []PlayHistoryEntry

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.Username, u.ID)
	fmt.Printf("Email: %s\n", u.Email)
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Println(a.Message)
	o.printUser(a.User)
}

func (o *Output) printGameList(games GameList) {
	if len(games) == 0 {
		fmt.Println("No games available")
		return
	}
	for _, g := range games {
		fmt.Printf("%-8s %-16s %-7s %s\n", g.ID, g.Title, g.Difficulty, g.Description)
	}
}

func (o *Output) printPlayResult(p PlayResult) {
	fmt.Println(p.Message)
	fmt.Printf("Game: %s (%s)\n", p.Title, p.GameID)
	fmt.Printf("Session: %s [%s]\n", p.SessionID, p.Status)
}

func (o *Output) printPlayHistory(history PlayHistory) {
	if len(history) == 0 {
		fmt.Println("No games played yet")
		return
	}
	for _, p := range history {
		fmt.Printf("%s  %-8s %-6s %s\n", p.StartedAt.Format(time.RFC3339), p.GameID, p.Status, p.ID)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
