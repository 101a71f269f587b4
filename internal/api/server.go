package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jauhararifin/sealedtris/internal/store"
	"github.com/jauhararifin/sealedtris/scoreboard"
)

const (
	ErrTypeValidation = "validation_error"
	ErrTypeForbidden  = "forbidden"
	ErrTypeNotFound   = "not_found"
	ErrTypeInternal   = "internal_error"
)

// Server serves the score storage API
type Server struct {
	db        store.DB
	logger    *log.Logger
	startTime time.Time
}

type ServerOption func(*Server)

func WithLogger(logger *log.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new API server
func NewServer(db store.DB, options ...ServerOption) *Server {
	s := &Server{
		db:        db,
		logger:    log.New(os.Stdout, "[API] ", log.LstdFlags|log.Lshortfile),
		startTime: time.Now(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Routes sets up the HTTP routes with middleware
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1/players/{player}/scores", func(r chi.Router) {
		r.Use(s.requireOwner)
		r.Post("/", s.handleSubmitScore)
		r.Get("/", s.handleListScores)
		r.Post("/{id}/reveal", s.handleRevealScore)
	})

	return r
}

// requireOwner only lets a player act on their own score list.
func (s *Server) requireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := chi.URLParam(r, "player")
		if player == "" || r.Header.Get(scoreboard.PlayerHeader) != player {
			s.logger.Printf("forbidden: request_id=%s path=%s caller=%q\n",
				middleware.GetReqID(r.Context()), r.URL.Path, r.Header.Get(scoreboard.PlayerHeader))
			s.writeError(w, http.StatusForbidden, ErrTypeForbidden, "scores can only be accessed by their owner")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response with proper headers
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("cannot encode response: %v\n", err)
	}
}

// writeError writes a structured error response
func (s *Server) writeError(w http.ResponseWriter, status int, errType, message string) {
	s.writeJSON(w, status, scoreboard.ErrorResponse{
		Type:    errType,
		Message: message,
	})
}
