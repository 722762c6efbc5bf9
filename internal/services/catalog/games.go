package catalog

import "github.com/gamehub/gamehub-go/internal/model"

// PlaceholderImageURL is the artwork every seeded game points at
const PlaceholderImageURL = "/api/placeholder/400/320"

// DefaultGames returns the static catalog seeded on first startup
func DefaultGames() []model.Game {
	return []model.Game{
		{
			ID:          "game1",
			Title:       "Snake Classic",
			Description: "Navigate the snake to collect food and grow longer without hitting walls or yourself.",
			ImageURL:    PlaceholderImageURL,
			Difficulty:  model.DifficultyEasy,
		},
		{
			ID:          "game2",
			Title:       "Memory Match",
			Description: "Test your memory by matching pairs of cards in this classic concentration game.",
			ImageURL:    PlaceholderImageURL,
			Difficulty:  model.DifficultyMedium,
		},
		{
			ID:          "game3",
			Title:       "Space Shooter",
			Description: "Defend Earth from alien invaders in this action-packed space adventure.",
			ImageURL:    PlaceholderImageURL,
			Difficulty:  model.DifficultyHard,
		},
		{
			ID:          "game4",
			Title:       "Puzzle Master",
			Description: "Solve challenging puzzles and train your brain with this addictive game.",
			ImageURL:    PlaceholderImageURL,
			Difficulty:  model.DifficultyMedium,
		},
	}
}
