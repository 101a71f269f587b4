package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements the DB interface using SQLite
type SQLiteDB struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteDB creates a new SQLite database connection
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive across queries
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate creates the schema. It is safe to run repeatedly.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS scores (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			value INTEGER NOT NULL,
			revealed INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			revealed_at INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player, seq)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SaveScore stores a new sealed score, filling in ID and CreatedAt when unset
func (s *SQLiteDB) SaveScore(score *Score) error {
	if score.ID == "" {
		score.ID = uuid.New().String()
	}
	if score.CreatedAt.IsZero() {
		score.CreatedAt = s.now().UTC()
	}
	score.Revealed = false
	score.RevealedAt = nil

	_, err := s.db.Exec(
		`INSERT INTO scores (id, player, value, revealed, created_at) VALUES (?, ?, ?, 0, ?)`,
		score.ID, score.Player, int64(score.Value), score.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save score: %w", err)
	}
	return nil
}

// ListScores returns the player's scores in submission order
func (s *SQLiteDB) ListScores(player string) ([]Score, error) {
	rows, err := s.db.Query(
		`SELECT id, player, value, revealed, created_at, revealed_at
		FROM scores WHERE player = ? ORDER BY seq ASC`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	defer rows.Close()

	scores := []Score{}
	for rows.Next() {
		score, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		if !score.Revealed {
			score.Value = 0
		}
		scores = append(scores, *score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	return scores, nil
}

// RevealScore marks the player's score as revealed and returns it with its
// value. Revealing twice keeps the first reveal time.
func (s *SQLiteDB) RevealScore(player, id string) (*Score, error) {
	_, err := s.db.Exec(
		`UPDATE scores SET revealed = 1, revealed_at = ? WHERE id = ? AND player = ? AND revealed = 0`,
		s.now().UTC().UnixNano(), id, player,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reveal score: %w", err)
	}

	row := s.db.QueryRow(
		`SELECT id, player, value, revealed, created_at, revealed_at
		FROM scores WHERE id = ? AND player = ?`,
		id, player,
	)
	score, err := scanScore(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return score, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanScore(row scanner) (*Score, error) {
	var (
		score      Score
		value      int64
		createdAt  int64
		revealedAt sql.NullInt64
	)
	if err := row.Scan(&score.ID, &score.Player, &value, &score.Revealed, &createdAt, &revealedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan score: %w", err)
	}

	score.Value = uint32(value)
	score.CreatedAt = time.Unix(0, createdAt).UTC()
	if revealedAt.Valid {
		t := time.Unix(0, revealedAt.Int64).UTC()
		score.RevealedAt = &t
	}
	return &score, nil
}
