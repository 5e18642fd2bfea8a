package persistence

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP,
	duration_seconds REAL NOT NULL DEFAULT 0,
	final_cookies REAL NOT NULL DEFAULT 0,
	final_cps REAL NOT NULL DEFAULT 0,
	buildings_bought INTEGER NOT NULL DEFAULT 0,
	upgrades_bought INTEGER NOT NULL DEFAULT 0,
	ascensions INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS snapshots (
	run_id TEXT NOT NULL REFERENCES runs(id),
	elapsed_seconds REAL NOT NULL,
	state TEXT NOT NULL,
	PRIMARY KEY (run_id, elapsed_seconds)
);
`

// RunSummary is one row of run history.
type RunSummary struct {
	ID              string     `db:"id"`
	StartedAt       time.Time  `db:"started_at"`
	FinishedAt      *time.Time `db:"finished_at"`
	DurationSeconds float64    `db:"duration_seconds"`
	FinalCookies    float64    `db:"final_cookies"`
	FinalCPS        float64    `db:"final_cps"`
	BuildingsBought int        `db:"buildings_bought"`
	UpgradesBought  int        `db:"upgrades_bought"`
	Ascensions      int        `db:"ascensions"`
}

// Store records run history and periodic snapshots in sqlite.
type Store struct {
	conn *sqlx.DB
}

// OpenStore opens (creating if needed) a sqlite database at path.
func OpenStore(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.conn.Close()
}

// BeginRun registers a new run and returns its id.
func (s *Store) BeginRun() (string, error) {
	id := uuid.NewString()
	_, err := s.conn.Exec(
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		id, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to begin run: %w", err)
	}
	return id, nil
}

// RecordSnapshot stores the serialized state at an elapsed offset.
func (s *Store) RecordSnapshot(runID string, elapsed float64, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	_, err = s.conn.Exec(
		`INSERT OR REPLACE INTO snapshots (run_id, elapsed_seconds, state) VALUES (?, ?, ?)`,
		runID, elapsed, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to record snapshot: %w", err)
	}
	return nil
}

// Snapshots returns a run's snapshots in elapsed order.
func (s *Store) Snapshots(runID string) ([]Snapshot, error) {
	var rows []string
	err := s.conn.Select(&rows,
		`SELECT state FROM snapshots WHERE run_id = ? ORDER BY elapsed_seconds`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}

	snaps := make([]Snapshot, 0, len(rows))
	for _, raw := range rows {
		var snap Snapshot
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			return nil, fmt.Errorf("failed to parse stored snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// FinishRun closes out a run with its final figures.
func (s *Store) FinishRun(runID string, summary RunSummary) error {
	now := time.Now().UTC()
	_, err := s.conn.Exec(
		`UPDATE runs SET finished_at = ?, duration_seconds = ?, final_cookies = ?,
			final_cps = ?, buildings_bought = ?, upgrades_bought = ?, ascensions = ?
		 WHERE id = ?`,
		now, summary.DurationSeconds, summary.FinalCookies, summary.FinalCPS,
		summary.BuildingsBought, summary.UpgradesBought, summary.Ascensions, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// RecentRuns returns the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunSummary, error) {
	var runs []RunSummary
	err := s.conn.Select(&runs,
		`SELECT * FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	return runs, nil
}
