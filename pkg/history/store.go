package history

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/segtimer/segtimer-go/pkg/eventlog"
	"github.com/segtimer/segtimer-go/pkg/timer"
)

// Outcome is how a run ended.
type Outcome string

const (
	// OutcomeNone marks a run that is still counting down.
	OutcomeNone      Outcome = ""
	OutcomeExpired   Outcome = "expired"
	OutcomeStopped   Outcome = "stopped"
	OutcomeRestarted Outcome = "restarted"
)

// Run is one countdown.
type Run struct {
	ID        string     `json:"id"`
	Seconds   int        `json:"seconds"`
	Source    string     `json:"source,omitempty"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Outcome   Outcome    `json:"outcome,omitempty"`
	Duration  string     `json:"duration,omitempty"`
}

// Stats summarises the stored runs.
type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Expired   int `json:"expired"`
	Stopped   int `json:"stopped"`
	Restarted int `json:"restarted"`
}

// Store provides SQLite persistence for countdown runs.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewStore opens the database at dbPath, creating the schema if needed.
// Use ":memory:" for an in-memory database.
func NewStore(dbPath string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{db: db, logger: logger}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seconds INTEGER NOT NULL,
		source TEXT,
		started_at DATETIME NOT NULL,
		ended_at DATETIME,
		outcome TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_runs_outcome ON runs(outcome);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Log records state transitions. Other events are ignored.
func (s *Store) Log(event eventlog.Event) {
	if event.Category != eventlog.CategoryState || event.StateChange == nil {
		return
	}
	if err := s.apply(event); err != nil {
		s.logger.Warn("history update failed", "run_id", event.RunID, "error", err)
	}
}

var _ eventlog.Logger = (*Store)(nil)

func (s *Store) apply(event eventlog.Event) error {
	sc := event.StateChange
	switch sc.NewState {
	case timer.PhaseRunning.String():
		if sc.Reason == timer.ReasonRestart {
			if err := s.closeOthers(event.RunID, event.Timestamp, OutcomeRestarted); err != nil {
				return err
			}
		}
		return s.StartRun(Run{
			ID:        event.RunID,
			Seconds:   sc.Seconds,
			Source:    event.Source.String(),
			StartedAt: event.Timestamp,
		})
	case timer.PhaseExpiring.String():
		return s.EndRun(event.RunID, event.Timestamp, OutcomeExpired)
	case timer.PhaseStopped.String():
		if sc.OldState == timer.PhaseRunning.String() {
			return s.EndRun(event.RunID, event.Timestamp, OutcomeStopped)
		}
	}
	return nil
}

// StartRun inserts an open run.
func (s *Store) StartRun(run Run) error {
	if run.ID == "" {
		return errors.New("run id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO runs (id, seconds, source, started_at)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.Seconds, run.Source, run.StartedAt.UTC())
	return err
}

// EndRun closes an open run. Runs that are already closed are left alone.
func (s *Store) EndRun(id string, at time.Time, outcome Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		UPDATE runs SET ended_at = ?, outcome = ?
		WHERE id = ? AND ended_at IS NULL
	`, at.UTC(), string(outcome), id)
	return err
}

func (s *Store) closeOthers(keep string, at time.Time, outcome Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		UPDATE runs SET ended_at = ?, outcome = ?
		WHERE id != ? AND ended_at IS NULL
	`, at.UTC(), string(outcome), keep)
	return err
}

// GetRun retrieves a run by ID. It returns nil if the run does not exist.
func (s *Store) GetRun(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, seconds, source, started_at, ended_at, outcome
		FROM runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns returns runs, most recent first.
func (s *Store) ListRuns(limit, offset int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(`
		SELECT id, seconds, source, started_at, ended_at, outcome
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Stats counts runs by outcome.
func (s *Store) Stats() (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT COALESCE(outcome, ''), COUNT(*) FROM runs GROUP BY 1`)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()

	var st Stats
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return Stats{}, err
		}
		st.Total += n
		switch Outcome(outcome) {
		case OutcomeNone:
			st.Active += n
		case OutcomeExpired:
			st.Expired += n
		case OutcomeStopped:
			st.Stopped += n
		case OutcomeRestarted:
			st.Restarted += n
		}
	}
	return st, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var run Run
	var source, outcome sql.NullString
	var endedAt sql.NullTime

	if err := sc.Scan(&run.ID, &run.Seconds, &source, &run.StartedAt, &endedAt, &outcome); err != nil {
		return Run{}, err
	}

	run.Source = source.String
	run.Outcome = Outcome(outcome.String)
	if endedAt.Valid {
		t := endedAt.Time
		run.EndedAt = &t
		run.Duration = t.Sub(run.StartedAt).Round(time.Millisecond).String()
	}
	return run, nil
}
