// Package history persists the query log: every answered or abandoned
// question, with the entities the resolver settled on. The log exists so the
// resolution heuristics can be checked against real questions later.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/tabletalk/tabletalk/internal/contract"
	"github.com/tabletalk/tabletalk/schema"
	_ "modernc.org/sqlite" // SQLite driver
)

// StoreImpl handles durable query-log storage over several database
// backends.
type StoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = (*StoreImpl)(nil) // Compile-time check

// NewStore opens a query-log store for the given backend. NoneBackend
// returns a store that drops everything.
func NewStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		return &StoreImpl{backend: backend}, nil
	}

	// Bring the schema up to date before handing out the store, so a fresh
	// database works without an explicit migrate run.
	if err := Migrate(backend, connStr, -1); err != nil {
		return nil, err
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	return &StoreImpl{db: db, backend: backend}, nil
}

func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	switch backend {
	case schema.SQLiteBackend:
		path := connStr
		if path == "" {
			path = DefaultDBFilePath()
		}
		db, err := sql.Open("sqlite", path)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite query log at %q: %w", path, err)
		}
		// Single connection avoids "database is locked" errors.
		db.SetMaxOpenConns(1)
		return db, nil

	case schema.MySQLBackend:
		// connStr: user:password@tcp(host:port)/dbname?parseTime=true
		db, err := sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL query log: %w", err)
		}
		return db, nil

	case schema.PostgreSQLBackend:
		// connStr: host=localhost port=5432 user=postgres dbname=tabletalk
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL query log: %w", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported history backend %q", backend)
	}
}

// Record appends one entry to the query log.
func (s *StoreImpl) Record(ctx context.Context, e schema.HistoryEntry) error {
	if s.db == nil {
		return nil
	}
	query := s.rebind(`INSERT INTO tabletalk_history
		(id, conversation_id, asked_at, question, dataset_id, metric, dimension, aggregation, chart_type, answered, answer, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.ConversationID, e.AskedAt.UTC(), e.Query, e.DatasetID,
		e.Metric, e.Dimension, e.Aggregation, e.ChartType,
		e.Answered, e.Answer, e.DurationMs)
	if err != nil {
		return fmt.Errorf("failed to record history entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (s *StoreImpl) Recent(ctx context.Context, limit int) ([]schema.HistoryEntry, error) {
	if s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	query := s.rebind(`SELECT id, conversation_id, asked_at, question, dataset_id,
		metric, dimension, aggregation, chart_type, answered, answer, duration_ms
		FROM tabletalk_history ORDER BY asked_at DESC LIMIT ?`)
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []schema.HistoryEntry
	for rows.Next() {
		var e schema.HistoryEntry
		var askedAt time.Time
		if err := rows.Scan(&e.ID, &e.ConversationID, &askedAt, &e.Query, &e.DatasetID,
			&e.Metric, &e.Dimension, &e.Aggregation, &e.ChartType,
			&e.Answered, &e.Answer, &e.DurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.AskedAt = askedAt
		out = append(out, e)
	}
	return out, rows.Err()
}

// Clear deletes all entries.
func (s *StoreImpl) Clear(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM tabletalk_history"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *StoreImpl) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// rebind converts ?-style placeholders to $n for PostgreSQL.
func (s *StoreImpl) rebind(query string) string {
	if s.backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DefaultDBFilePath returns the SQLite file used when no connection string
// is configured.
func DefaultDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tabletalk_history.db"
	}
	return filepath.Join(homeDir, ".tabletalk_history.db")
}
