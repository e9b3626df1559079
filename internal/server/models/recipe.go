package models

import "time"

// Difficulty levels a recipe may carry. DifficultyEasy is the default when
// a client omits the field.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// ValidDifficulty reports whether d is one of the three allowed levels.
func ValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Recipe is a persisted recipe record. UserID references the single owning
// user and is immutable after creation.
type Recipe struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Ingredients  string    `json:"ingredients"`
	Instructions string    `json:"instructions"`
	Difficulty   string    `json:"difficulty"`
	Image        string    `json:"image,omitempty"`
	UserID       string    `json:"userId"`
	CreatedAt    time.Time `json:"createdAt"`

	// AuthorName is the owning user's username, populated by read queries
	// that join the users table. It is never written back.
	AuthorName string `json:"author,omitempty"`
}
