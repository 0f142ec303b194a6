// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/tabletalk/tabletalk/schema"
)

// DatasetStore defines the dataset fetch contract the engine consumes.
// This allows the core pipeline to be tested without touching disk or a
// database.
type DatasetStore interface {
	// Resolve maps a user-facing data source name to a concrete dataset id,
	// trying the name-matching fallbacks in order (exact, +.csv,
	// spaces-to-underscore, spaces-to-hyphen, case-insensitive). It returns
	// an empty id, not an error, when nothing matches.
	Resolve(ctx context.Context, name string) (string, error)

	// Fetch loads up to limit rows for a previously resolved dataset id.
	Fetch(ctx context.Context, id string, limit int) (*schema.Dataset, error)

	// List returns all dataset ids the store can resolve.
	List(ctx context.Context) ([]string, error)
}

// HistoryStore defines the query-log storage contract.
// This allows mocking the store for testing.
type HistoryStore interface {
	Record(ctx context.Context, entry schema.HistoryEntry) error
	Recent(ctx context.Context, limit int) ([]schema.HistoryEntry, error)
	Clear(ctx context.Context) error
	Close() error
}

// Tracer receives engine decision points so tests and debugging sessions can
// see which resolution branch fired without scraping console output.
type Tracer interface {
	Event(stage string, format string, args ...any)
}
