// Package storage provides SQLite-based persistence for game replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/blockfall/internal/core"
)

// Lookup errors.
var (
	ErrReplayNotFound  = errors.New("storage: replay not found")
	ErrAmbiguousReplay = errors.New("storage: replay id prefix matches more than one replay")
)

// Store manages the SQLite database connection for the replay journal.
type Store struct {
	db *sql.DB
}

// ReplaySummary is one row of the replay journal without its inputs.
type ReplaySummary struct {
	ID        string
	GameID    string
	Seed      int64
	TickRate  int
	Ticks     uint64
	Score     int
	Lines     int
	Pieces    int
	Finished  bool
	CreatedAt time.Time
}

// Duration is the simulated play time.
func (r ReplaySummary) Duration() time.Duration {
	if r.TickRate <= 0 {
		return 0
	}
	return time.Duration(r.Ticks) * time.Second / time.Duration(r.TickRate)
}

// ReplayEntry is a stored replay with everything needed to re-run it.
type ReplayEntry struct {
	ReplaySummary
	Recording core.Recording
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// SSH sessions write concurrently; wait on the lock instead of failing.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			config TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			lines INTEGER NOT NULL DEFAULT 0,
			pieces INTEGER NOT NULL DEFAULT 0,
			finished INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_game_id ON replays(game_id);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);

		CREATE TABLE IF NOT EXISTS replay_inputs (
			replay_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			actions INTEGER NOT NULL,
			PRIMARY KEY (replay_id, tick)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a recording and its inputs in one transaction.
// Returns the generated replay ID.
func (s *Store) SaveReplay(rec core.Recording) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.Exec(
		`INSERT INTO replays
		 (id, game_id, seed, tick_rate, config, ticks, score, lines, pieces, finished)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		rec.GameID,
		rec.Seed,
		rec.TickRate,
		string(rec.Config),
		int64(rec.Ticks),
		rec.Score,
		rec.Lines,
		rec.Pieces,
		boolToInt(rec.Finished),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save replay: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO replay_inputs (replay_id, tick, actions) VALUES (?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("storage: cannot prepare input insert: %w", err)
	}
	defer stmt.Close()

	for _, in := range rec.Inputs {
		if _, err := stmt.Exec(id, int64(in.Tick), int64(in.Mask)); err != nil {
			return "", fmt.Errorf("storage: cannot save input at tick %d: %w", in.Tick, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

const summaryColumns = `id, game_id, seed, tick_rate, ticks, score, lines, pieces, finished, created_at`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner, extra ...any) (ReplaySummary, error) {
	var r ReplaySummary
	var ticks int64
	var createdAt any
	dest := append([]any{
		&r.ID, &r.GameID, &r.Seed, &r.TickRate, &ticks,
		&r.Score, &r.Lines, &r.Pieces, &r.Finished, &createdAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return r, err
	}
	r.Ticks = uint64(ticks)
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Replay loads a replay by ID. A unique prefix of the ID is accepted.
func (s *Store) Replay(id string) (*ReplayEntry, error) {
	id = escapeLike(strings.TrimSpace(id))
	if id == "" {
		return nil, ErrReplayNotFound
	}

	rows, err := s.db.Query(
		`SELECT `+summaryColumns+`, config
		 FROM replays
		 WHERE id LIKE ? || '%'
		 LIMIT 2`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	defer rows.Close()

	var entries []ReplayEntry
	for rows.Next() {
		var cfg string
		sum, err := scanSummary(rows, &cfg)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, ReplayEntry{
			ReplaySummary: sum,
			Recording: core.Recording{
				GameID:   sum.GameID,
				Seed:     sum.Seed,
				TickRate: sum.TickRate,
				Config:   []byte(cfg),
				Ticks:    sum.Ticks,
				Score:    sum.Score,
				Lines:    sum.Lines,
				Pieces:   sum.Pieces,
				Finished: sum.Finished,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(entries) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrReplayNotFound, id)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousReplay, id)
	}

	entry := entries[0]
	inputs, err := s.replayInputs(entry.ID)
	if err != nil {
		return nil, err
	}
	entry.Recording.Inputs = inputs
	return &entry, nil
}

func (s *Store) replayInputs(id string) ([]core.InputEvent, error) {
	rows, err := s.db.Query(
		`SELECT tick, actions FROM replay_inputs WHERE replay_id = ? ORDER BY tick`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay inputs: %w", err)
	}
	defer rows.Close()

	var inputs []core.InputEvent
	for rows.Next() {
		var tick, actions int64
		if err := rows.Scan(&tick, &actions); err != nil {
			return nil, fmt.Errorf("storage: cannot scan input: %w", err)
		}
		inputs = append(inputs, core.InputEvent{Tick: uint64(tick), Mask: core.ActionMask(actions)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return inputs, nil
}

// RecentReplays lists the newest replays, optionally for one game only.
func (s *Store) RecentReplays(gameID string, limit int) ([]ReplaySummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+summaryColumns+`
		 FROM replays
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var results []ReplaySummary
	for rows.Next() {
		r, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// ClearReplays deletes all replays for the given game, or every replay when
// gameID is empty. Returns the number of replays removed.
func (s *Store) ClearReplays(gameID string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.Exec(
		`DELETE FROM replay_inputs
		 WHERE replay_id IN (SELECT id FROM replays WHERE ? = '' OR game_id = ?)`,
		gameID, gameID,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear replay inputs: %w", err)
	}

	res, err := tx.Exec("DELETE FROM replays WHERE ? = '' OR game_id = ?", gameID, gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear replays: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted replays: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit: %w", err)
	}
	return n, nil
}

// escapeLike drops LIKE wildcards from a user-supplied prefix; UUIDs never
// contain them.
func escapeLike(s string) string {
	return strings.NewReplacer("%", "", "_", "").Replace(s)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
