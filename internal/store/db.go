package store

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("score not found")

// DB represents the score storage interface
type DB interface {
	Close() error
	Migrate() error
	SaveScore(score *Score) error
	ListScores(player string) ([]Score, error)
	RevealScore(player, id string) (*Score, error)
}

// Score is one sealed score submission. Value is only meaningful once
// Revealed is set; listings zero it for sealed entries.
type Score struct {
	ID         string     `json:"id" db:"id"`
	Player     string     `json:"player" db:"player"`
	Value      uint32     `json:"value" db:"value"`
	Revealed   bool       `json:"revealed" db:"revealed"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	RevealedAt *time.Time `json:"revealed_at,omitempty" db:"revealed_at"`
}
