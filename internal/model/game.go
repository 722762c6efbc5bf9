package model

// GameID uniquely identifies a catalog game
type GameID string

// Difficulty is the advertised difficulty of a game
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// IsValid reports whether d is one of the known difficulties
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Game is an entry in the static catalog. Games are immutable once seeded.
type Game struct {
	ID          GameID     `json:"id" bson:"id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	ImageURL    string     `json:"imageUrl" bson:"imageUrl"`
	Difficulty  Difficulty `json:"difficulty" bson:"difficulty"`
}
