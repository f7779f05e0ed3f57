// Package datasource provides the relational store the agent reads its
// metrics from. It is backed by SQLite through the pure Go modernc driver.
package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Cyclone1070/vizagent/internal/models"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const driverName = "sqlite"

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// DefaultMetrics is the mock performance data loaded by Seed.
var DefaultMetrics = []models.DataPoint{
	{X: 1, Y: 10},
	{X: 2, Y: 15},
	{X: 3, Y: 12},
	{X: 4, Y: 18},
	{X: 5, Y: 22},
	{X: 6, Y: 20},
	{X: 7, Y: 25},
}

const createMetrics = `CREATE TABLE IF NOT EXISTS metrics (
	id INTEGER PRIMARY KEY,
	x INTEGER,
	y INTEGER
)`

// Store is a handle on the metrics database. The caller owns its lifecycle
// and must Close it.
type Store struct {
	db *sql.DB

	mu     sync.Mutex
	closed bool
}

// Open acquires a database handle for dsn and checks it is reachable.
// An empty dsn means MemoryDSN.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDataUnavailable, dsn, err)
	}
	// Every pooled connection to :memory: gets its own empty database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrDataUnavailable, dsn, err)
	}

	return &Store{db: db}, nil
}

// Seed replaces the contents of the metrics table with points, in order.
func (s *Store) Seed(ctx context.Context, points []models.DataPoint) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin seed", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.ExecContext(ctx, createMetrics); err != nil {
		return unavailable("create metrics", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM metrics"); err != nil {
		return unavailable("clear metrics", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO metrics (x, y) VALUES (?, ?)")
	if err != nil {
		return unavailable("prepare insert", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, p.X, p.Y); err != nil {
			return unavailable("insert metric", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit seed", err)
	}

	slog.Debug("datasource: seeded", "rows", len(points))
	return nil
}

// Fetch runs a read-only query returning (x, y) rows and converts them to
// data points in row order.
func (s *Store) Fetch(ctx context.Context, query string) ([]models.DataPoint, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	q, err := normalizeQuery(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, unavailable("query", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, unavailable("columns", err)
	}
	if len(cols) != 2 {
		return nil, fmt.Errorf("%w: %v (got %d)", ErrDataUnavailable, errWrongColumnSet, len(cols))
	}

	var points []models.DataPoint
	for rows.Next() {
		var p models.DataPoint
		if err := rows.Scan(&p.X, &p.Y); err != nil {
			return nil, unavailable("scan", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate rows", err)
	}

	slog.Info("datasource: fetched", "query", q, "rows", len(points))
	return points, nil
}

// Close releases the database handle. It is safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return unavailable("close", err)
	}
	return nil
}

func (s *Store) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("%w: %v", ErrDataUnavailable, errClosed)
	}
	return nil
}

// normalizeQuery accepts exactly one SELECT statement, with an optional
// trailing semicolon.
func normalizeQuery(query string) (string, error) {
	q := strings.TrimSpace(query)
	q = strings.TrimSpace(strings.TrimSuffix(q, ";"))
	if q == "" || strings.Contains(q, ";") {
		return "", errNotSelect
	}
	fields := strings.Fields(q)
	if !strings.EqualFold(fields[0], "SELECT") {
		return "", errNotSelect
	}
	return q, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrDataUnavailable, op, err)
}
