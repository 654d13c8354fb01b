package diagnostics

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// PostgresSink persists every event as a row for after-the-fact turn
// history review, grounded on the teacher's repository/postgres package
// (one sql.DB, parameterized INSERTs, wrapped errors).
type PostgresSink struct {
	db  *sql.DB
	log zerolog.Logger
}

// ConnectPostgres opens a connection pool to databaseURL, matching the
// teacher's postgres.Connect pool sizing.
func ConnectPostgres(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: postgres open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("diagnostics: postgres ping: %w", err)
	}
	return db, nil
}

// NewPostgresSink wraps an open pool.
func NewPostgresSink(db *sql.DB, log zerolog.Logger) *PostgresSink {
	return &PostgresSink{db: db, log: log}
}

// EnsureSchema creates the turn_events table if absent. Called once at
// startup rather than via a migration tool, matching the scale of this
// single-table sink.
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS robot_turn_events (
			id SERIAL PRIMARY KEY,
			game_id TEXT NOT NULL,
			seat INT NOT NULL,
			kind TEXT NOT NULL,
			detail TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("diagnostics: ensure schema: %w", err)
	}
	return nil
}

// Record inserts e as a row. Errors are swallowed after being surfaced
// through the returned error only when called directly; the Sink
// interface method below logs instead, since a dropped diagnostics
// write must never interrupt play.
func (s *PostgresSink) record(ctx context.Context, e Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO robot_turn_events (game_id, seat, kind, detail) VALUES ($1, $2, $3, $4)`,
		e.GameID, e.Seat, e.Kind, e.Detail)
	return err
}

// Record implements Sink.
func (s *PostgresSink) Record(ctx context.Context, e Event) {
	if err := s.record(ctx, e); err != nil {
		s.log.Warn().Err(err).Msg("diagnostics: failed to record turn event")
	}
}
