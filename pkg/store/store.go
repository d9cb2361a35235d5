// Package store keeps a history of computed layouts.
//
// Every layout the pipeline computes can be saved as a [Record] holding the
// input labels, the engine configuration and the resulting placements, so
// it can be listed, re-rendered or compared later.
//
// # Backends
//
//   - [SQLStore] on SQLite (modernc.org/sqlite, pure Go) for the CLI
//   - [SQLStore] on PostgreSQL (pgx) for shared deployments
//   - [MongoStore] for deployments that already run MongoDB
//
// [Open] picks a backend from a [Config]. IDs are random UUIDs assigned on
// save.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("layout not found")

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 20

// Record is one stored layout.
type Record struct {
	ID        string         `json:"id" bson:"_id"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	Config    cloud.Config   `json:"config" bson:"config"`
	Seed      uint64         `json:"seed" bson:"-"`
	Order     string         `json:"order" bson:"order"`
	Measurer  string         `json:"measurer" bson:"measurer"`
	Labels    []cloud.Label  `json:"labels" bson:"labels"`
	Words     []cloud.Placed `json:"words" bson:"words"`
	Stats     cloud.Stats    `json:"stats" bson:"stats"`
}

// Store persists layout records.
type Store interface {
	// Save assigns an ID and creation time when missing and stores rec.
	Save(ctx context.Context, rec *Record) error

	// Get returns the record with id or an error wrapping [ErrNotFound].
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)

	// Close releases backend resources.
	Close() error
}

// Drivers accepted by [Open].
const (
	DriverNone     = "none"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Driver string `json:"driver" toml:"driver" yaml:"driver"`
	// DSN is a file path for sqlite, a postgres:// URL for postgres and a
	// mongodb:// URI for mongo. Empty selects [DefaultSQLitePath] for sqlite.
	DSN string `json:"dsn" toml:"dsn" yaml:"dsn"`
	// Database names the MongoDB database (default "wordcloud").
	Database string `json:"database" toml:"database" yaml:"database"`
}

// Open connects to the configured backend. It returns a nil Store and no
// error for the "none" driver or an empty one.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverNone:
		return nil, nil
	case DriverSQLite:
		path := cfg.DSN
		if path == "" {
			p, err := DefaultSQLitePath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return OpenSQLite(ctx, path)
	case DriverPostgres, "postgresql", "pgx":
		return OpenPostgres(ctx, cfg.DSN)
	case DriverMongo, "mongodb":
		return OpenMongo(ctx, cfg.DSN, cfg.Database)
	}
	return nil, fmt.Errorf("unknown store driver %q (want none, sqlite, postgres or mongo)", cfg.Driver)
}

// DefaultSQLitePath returns the per-user history database path.
func DefaultSQLitePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(base, "wordcloud", "history.db"), nil
}

// prepare fills ID and CreatedAt when unset.
func prepare(rec *Record) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	rec.CreatedAt = rec.CreatedAt.UTC().Truncate(time.Microsecond)
	if rec.Labels == nil {
		rec.Labels = []cloud.Label{}
	}
	if rec.Words == nil {
		rec.Words = []cloud.Placed{}
	}
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
