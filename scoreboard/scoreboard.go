// Package scoreboard hands finished game scores to the external score
// storage service and reads back a player's score handles.
//
// The storage service keeps every submitted score sealed. A listing only says
// that a score exists and in which order it was submitted; the value of a
// handle is known once the owner has revealed it.
package scoreboard

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// PlayerHeader carries the id of the player a request acts for. The service
// only lets a player read and reveal their own scores.
const PlayerHeader = "X-Player-ID"

var ErrRejected = errors.New("score service rejected request")

type Receipt struct {
	ID          string    `json:"id"`
	Player      string    `json:"player"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type Handle struct {
	ID        string    `json:"id"`
	Revealed  bool      `json:"revealed"`
	Value     uint32    `json:"value,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h Handle) String() string {
	if !h.Revealed {
		return h.ID + " (sealed)"
	}
	return fmt.Sprintf("%s = %d", h.ID, h.Value)
}

type SubmitRequest struct {
	Score uint32 `json:"score"`
}

type HandleList struct {
	Player string   `json:"player"`
	Count  int      `json:"count"`
	Scores []Handle `json:"scores"`
}

type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Submitter interface {
	SubmitScore(ctx context.Context, score uint32) (Receipt, error)
}

type History interface {
	ScoreHistory(ctx context.Context) ([]Handle, error)
}

// ScoreSource is anything holding a final score, such as a finished game or a
// snapshot of one.
type ScoreSource interface {
	FinalScore() (uint32, error)
}

// Report submits the final score of src. It fails without contacting the
// service while the game is still in progress, and does not retry.
func Report(ctx context.Context, src ScoreSource, submitter Submitter) (Receipt, error) {
	score, err := src.FinalScore()
	if err != nil {
		return Receipt{}, fmt.Errorf("cannot read final score: %w", err)
	}

	receipt, err := submitter.SubmitScore(ctx, score)
	if err != nil {
		return Receipt{}, fmt.Errorf("cannot submit score %d: %w", score, err)
	}
	return receipt, nil
}
