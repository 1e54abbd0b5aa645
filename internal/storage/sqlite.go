// Package storage provides SQLite-based persistence for finished races.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timeLayout sorts lexically in time order.
const timeLayout = "2006-01-02 15:04:05.000000"

// Store manages the SQLite database connection for race results.
type Store struct {
	db *sql.DB
}

// RaceResult is one finished race.
type RaceResult struct {
	ID        string
	Track     string
	Moves     int
	Seats     []SeatResult
	CreatedAt time.Time
}

// SeatResult is how one active seat finished.
type SeatResult struct {
	Seat      int
	Name      string
	Automated bool
	Lap       int
	Winner    bool
}

// Winners returns the names of the winning seats.
func (r RaceResult) Winners() []string {
	var names []string
	for _, s := range r.Seats {
		if s.Winner {
			names = append(names, s.Name)
		}
	}
	return names
}

// TrackStats contains aggregated statistics for one track.
type TrackStats struct {
	Track      string
	Races      int
	BestMoves  int
	AvgMoves   float64
	LastPlayed time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS race_results (
			id TEXT PRIMARY KEY,
			track TEXT NOT NULL,
			moves INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_race_results_track ON race_results(track, moves);
		CREATE INDEX IF NOT EXISTS idx_race_results_created ON race_results(created_at);

		CREATE TABLE IF NOT EXISTS race_seats (
			result_id TEXT NOT NULL REFERENCES race_results(id) ON DELETE CASCADE,
			seat INTEGER NOT NULL,
			name TEXT NOT NULL,
			automated INTEGER NOT NULL DEFAULT 0,
			lap INTEGER NOT NULL DEFAULT 0,
			winner INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (result_id, seat)
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

// SaveResult records a finished race and returns its ID. A missing ID is
// generated and a zero CreatedAt is set to now.
func (s *Store) SaveResult(r RaceResult) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO race_results (id, track, moves, created_at) VALUES (?, ?, ?, ?)",
		r.ID, r.Track, r.Moves, r.CreatedAt.UTC().Format(timeLayout),
	); err != nil {
		return "", fmt.Errorf("storage: cannot save result: %w", err)
	}

	for _, seat := range r.Seats {
		if _, err := tx.Exec(
			`INSERT INTO race_seats (result_id, seat, name, automated, lap, winner)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, seat.Seat, seat.Name, seat.Automated, seat.Lap, seat.Winner,
		); err != nil {
			return "", fmt.Errorf("storage: cannot save seat %d: %w", seat.Seat, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit result: %w", err)
	}
	return r.ID, nil
}

// RecentResults retrieves the most recent races, newest first.
func (s *Store) RecentResults(limit int) ([]RaceResult, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryResults(
		`SELECT id, track, moves, created_at
		 FROM race_results
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
}

// BestResults retrieves the races on a track finished in the fewest moves.
func (s *Store) BestResults(trackID string, limit int) ([]RaceResult, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT id, track, moves, created_at
		 FROM race_results
		 WHERE track = ?
		 ORDER BY moves ASC, created_at ASC
		 LIMIT ?`,
		trackID, limit,
	)
}

// ResultByID retrieves one race, or nil if it does not exist.
func (s *Store) ResultByID(id string) (*RaceResult, error) {
	results, err := s.queryResults(
		`SELECT id, track, moves, created_at FROM race_results WHERE id = ?`,
		id,
	)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// TrackStats retrieves aggregated statistics for a track.
func (s *Store) TrackStats(trackID string) (*TrackStats, error) {
	stats := &TrackStats{Track: trackID}
	var last sql.NullString

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(moves), 0), COALESCE(AVG(moves), 0), MAX(created_at)
		 FROM race_results WHERE track = ?`,
		trackID,
	).Scan(&stats.Races, &stats.BestMoves, &stats.AvgMoves, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get track stats: %w", err)
	}
	if last.Valid {
		stats.LastPlayed = parseTime(last.String)
	}
	return stats, nil
}

func (s *Store) queryResults(query string, args ...any) ([]RaceResult, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}

	var results []RaceResult
	for rows.Next() {
		var r RaceResult
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Track, &r.Moves, &createdAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			r.CreatedAt = parseTime(v)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	rows.Close()

	for i := range results {
		seats, err := s.seats(results[i].ID)
		if err != nil {
			return nil, err
		}
		results[i].Seats = seats
	}
	return results, nil
}

func (s *Store) seats(resultID string) ([]SeatResult, error) {
	rows, err := s.db.Query(
		`SELECT seat, name, automated, lap, winner
		 FROM race_seats
		 WHERE result_id = ?
		 ORDER BY seat`,
		resultID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query seats: %w", err)
	}
	defer rows.Close()

	var seats []SeatResult
	for rows.Next() {
		var seat SeatResult
		if err := rows.Scan(&seat.Seat, &seat.Name, &seat.Automated, &seat.Lap, &seat.Winner); err != nil {
			return nil, fmt.Errorf("storage: cannot scan seat: %w", err)
		}
		seats = append(seats, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: seat iteration error: %w", err)
	}
	return seats, nil
}

// parseTime reads a stored timestamp, returning the zero time when it is
// not recognized.
func parseTime(v string) time.Time {
	for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}
