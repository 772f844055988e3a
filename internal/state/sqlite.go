package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // sqlite driver
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BeginRun records a new run in running state.
func (s *SQLiteStore) BeginRun(policy string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &Run{
		ID:        uuid.New().String(),
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
		Policy:    policy,
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, status, started_at, policy) VALUES (?, ?, ?, ?)`,
		run.ID, run.Status, run.StartedAt, run.Policy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	return run, nil
}

// CompleteRun marks a run successful and stores its figures.
func (s *SQLiteStore) CompleteRun(id string, res Result) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	result, err := s.db.Exec(
		`UPDATE runs SET
			status = ?, completed_at = ?,
			households = ?, expenses = ?, products = ?,
			dropped_no_product = ?, dropped_no_household = ?,
			gini = ?, bottom50 = ?
		WHERE id = ?`,
		RunStatusSuccess, time.Now().UTC(),
		res.Households, res.Expenses, res.Products,
		res.DroppedNoProduct, res.DroppedNoHousehold,
		res.Gini, res.Bottom50,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return requireOneRow(result, id)
}

// FailRun marks a run failed with an error message.
func (s *SQLiteStore) FailRun(id string, errMsg string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	result, err := s.db.Exec(
		`UPDATE runs SET status = ?, completed_at = ?, error = ? WHERE id = ?`,
		RunStatusFailed, time.Now().UTC(), errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark run failed: %w", err)
	}
	return requireOneRow(result, id)
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(limit int) ([]Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, status, started_at, completed_at, policy,
			households, expenses, products,
			dropped_no_product, dropped_no_household,
			gini, bottom50, error
		FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var completedAt sql.NullTime
		var errMsg sql.NullString
		if err := rows.Scan(
			&r.ID, &r.Status, &r.StartedAt, &completedAt, &r.Policy,
			&r.Households, &r.Expenses, &r.Products,
			&r.DroppedNoProduct, &r.DroppedNoHousehold,
			&r.Gini, &r.Bottom50, &errMsg,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if completedAt.Valid {
			r.CompletedAt = &completedAt.Time
		}
		if errMsg.Valid {
			r.Error = errMsg.String
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

func requireOneRow(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// Ensure SQLiteStore implements Store interface
var _ Store = (*SQLiteStore)(nil)
