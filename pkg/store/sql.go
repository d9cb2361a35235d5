package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	// Pure-Go SQLite driver, registered as "sqlite".
	_ "modernc.org/sqlite"
	// PostgreSQL driver, registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
)

// dialect captures the differences between SQLite and PostgreSQL that the
// store cares about.
type dialect struct {
	name        string
	numbered    bool // $1, $2 instead of ?
	createTable string
}

var (
	sqliteDialect = dialect{
		name: DriverSQLite,
		createTable: `CREATE TABLE IF NOT EXISTS layouts (
			id         TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL,
			config     TEXT NOT NULL,
			seed       INTEGER NOT NULL,
			order_name TEXT NOT NULL,
			measurer   TEXT NOT NULL,
			labels     TEXT NOT NULL,
			words      TEXT NOT NULL,
			stats      TEXT NOT NULL
		)`,
	}
	postgresDialect = dialect{
		name:     DriverPostgres,
		numbered: true,
		createTable: `CREATE TABLE IF NOT EXISTS layouts (
			id         TEXT PRIMARY KEY,
			created_at BIGINT NOT NULL,
			config     TEXT NOT NULL,
			seed       BIGINT NOT NULL,
			order_name TEXT NOT NULL,
			measurer   TEXT NOT NULL,
			labels     TEXT NOT NULL,
			words      TEXT NOT NULL,
			stats      TEXT NOT NULL
		)`,
	}
)

const createIndex = `CREATE INDEX IF NOT EXISTS layouts_created_at ON layouts (created_at DESC)`

// rebind rewrites ? placeholders for dialects with numbered parameters.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SQLStore stores records in a SQL database.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

// OpenSQLite opens (creating if needed) a SQLite history database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single writer avoids SQLITE_BUSY under the server's concurrency.
	db.SetMaxOpenConns(1)
	return newSQLStore(ctx, db, sqliteDialect)
}

// OpenPostgres connects to PostgreSQL through pgx.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	if dsn == "" {
		return nil, errors.New("postgres store requires a DSN")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return newSQLStore(ctx, db, postgresDialect)
}

func newSQLStore(ctx context.Context, db *sql.DB, d dialect) (*SQLStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.name, err)
	}
	s := &SQLStore{db: db, dialect: d}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) migrate(ctx context.Context) error {
	for _, stmt := range []string{s.dialect.createTable, createIndex} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", s.dialect.name, err)
		}
	}
	return nil
}

// Save implements [Store].
func (s *SQLStore) Save(ctx context.Context, rec *Record) error {
	prepare(rec)
	cols, err := encodeColumns(rec)
	if err != nil {
		return err
	}
	q := s.dialect.rebind(`INSERT INTO layouts
		(id, created_at, config, seed, order_name, measurer, labels, words, stats)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = s.db.ExecContext(ctx, q,
		rec.ID, rec.CreatedAt.UnixMicro(), cols.config, int64(rec.Seed),
		rec.Order, rec.Measurer, cols.labels, cols.words, cols.stats)
	if err != nil {
		return fmt.Errorf("insert layout: %w", err)
	}
	return nil
}

// Get implements [Store].
func (s *SQLStore) Get(ctx context.Context, id string) (*Record, error) {
	q := s.dialect.rebind(`SELECT id, created_at, config, seed, order_name, measurer, labels, words, stats
		FROM layouts WHERE id = ?`)
	rec, err := scanRecord(s.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("get layout: %w", err)
	}
	return rec, nil
}

// List implements [Store].
func (s *SQLStore) List(ctx context.Context, limit int) ([]Record, error) {
	q := s.dialect.rebind(`SELECT id, created_at, config, seed, order_name, measurer, labels, words, stats
		FROM layouts ORDER BY created_at DESC, id LIMIT ?`)
	rows, err := s.db.QueryContext(ctx, q, listLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list layouts: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	return out, nil
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

type columns struct {
	config, labels, words, stats string
}

func encodeColumns(rec *Record) (columns, error) {
	var c columns
	for _, f := range []struct {
		dst *string
		v   any
	}{
		{&c.config, rec.Config},
		{&c.labels, rec.Labels},
		{&c.words, rec.Words},
		{&c.stats, rec.Stats},
	} {
		data, err := json.Marshal(f.v)
		if err != nil {
			return c, fmt.Errorf("encode record: %w", err)
		}
		*f.dst = string(data)
	}
	return c, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*Record, error) {
	var (
		rec     Record
		created int64
		seed    int64
		c       columns
	)
	if err := sc.Scan(&rec.ID, &created, &c.config, &seed, &rec.Order, &rec.Measurer, &c.labels, &c.words, &c.stats); err != nil {
		return nil, err
	}
	rec.CreatedAt = time.UnixMicro(created).UTC()
	rec.Seed = uint64(seed)
	for _, f := range []struct {
		src string
		v   any
	}{
		{c.config, &rec.Config},
		{c.labels, &rec.Labels},
		{c.words, &rec.Words},
		{c.stats, &rec.Stats},
	} {
		if err := json.Unmarshal([]byte(f.src), f.v); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", rec.ID, err)
		}
	}
	return &rec, nil
}

var _ Store = (*SQLStore)(nil)
