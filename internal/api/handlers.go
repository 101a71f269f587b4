package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jauhararifin/sealedtris/internal/store"
	"github.com/jauhararifin/sealedtris/scoreboard"
)

const maxBodyBytes = 1 << 10

type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")

	var req scoreboard.SubmitRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "body must be {\"score\": <uint32>}")
		return
	}

	score := &store.Score{Player: player, Value: req.Score}
	if err := s.db.SaveScore(score); err != nil {
		s.internalError(w, r, err)
		return
	}

	s.logger.Printf("score stored: request_id=%s player=%s id=%s\n", middleware.GetReqID(r.Context()), player, score.ID)
	s.writeJSON(w, http.StatusCreated, scoreboard.Receipt{
		ID:          score.ID,
		Player:      player,
		SubmittedAt: score.CreatedAt,
	})
}

func (s *Server) handleListScores(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")

	scores, err := s.db.ListScores(player)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	handles := make([]scoreboard.Handle, 0, len(scores))
	for _, score := range scores {
		handles = append(handles, toHandle(score))
	}
	s.writeJSON(w, http.StatusOK, scoreboard.HandleList{
		Player: player,
		Count:  len(handles),
		Scores: handles,
	})
}

func (s *Server) handleRevealScore(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")
	id := chi.URLParam(r, "id")

	score, err := s.db.RevealScore(player, id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, ErrTypeNotFound, "no such score")
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toHandle(*score))
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Printf("request failed: request_id=%s path=%s err=%v\n", middleware.GetReqID(r.Context()), r.URL.Path, err)
	s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, "internal server error")
}

func toHandle(score store.Score) scoreboard.Handle {
	h := scoreboard.Handle{
		ID:        score.ID,
		Revealed:  score.Revealed,
		CreatedAt: score.CreatedAt,
	}
	if score.Revealed {
		h.Value = score.Value
	}
	return h
}
