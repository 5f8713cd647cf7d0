package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	"resqnet/internal/domain/repository"
)

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// SQLEntityStore keeps every collection as one row of the collections table.
type SQLEntityStore struct {
	db      *sql.DB
	dialect dialect
}

var _ repository.EntityStore = (*SQLEntityStore)(nil)

// NewSQLiteEntityStore opens (or creates) the database file at path.
func NewSQLiteEntityStore(ctx context.Context, path string) (*SQLEntityStore, error) {
	if path == "" {
		path = "resqnet.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	s := newSQLEntityStore(db, dialectSQLite)
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresEntityStore connects through the pgx database/sql driver.
func NewPostgresEntityStore(ctx context.Context, dsn string) (*SQLEntityStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := newSQLEntityStore(db, dialectPostgres)
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func newSQLEntityStore(db *sql.DB, d dialect) *SQLEntityStore {
	return &SQLEntityStore{db: db, dialect: d}
}

// Close releases the connection pool.
func (s *SQLEntityStore) Close() error { return s.db.Close() }

func (s *SQLEntityStore) migrate(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS collections (
		collection_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		revision BIGINT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure collections table: %w", err)
	}
	return nil
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *SQLEntityStore) rebind(query string) string {
	if s.dialect != dialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLEntityStore) Load(ctx context.Context, key repository.CollectionKey) (repository.Record, bool, error) {
	var rec repository.Record
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT payload, revision FROM collections WHERE collection_key = ?`),
		string(key),
	).Scan(&rec.Payload, &rec.Revision)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.Record{}, false, nil
	}
	if err != nil {
		return repository.Record{}, false, fmt.Errorf("select %s: %w", key, err)
	}
	return rec, true, nil
}

func (s *SQLEntityStore) Save(ctx context.Context, key repository.CollectionKey, payload []byte, expectedRevision int64) (int64, error) {
	now := time.Now().UTC()

	var (
		query string
		args  []any
	)
	switch expectedRevision {
	case repository.AnyRevision:
		query = `INSERT INTO collections (collection_key, payload, revision, updated_at) VALUES (?, ?, 1, ?)
			ON CONFLICT (collection_key) DO UPDATE SET payload = excluded.payload, revision = collections.revision + 1, updated_at = excluded.updated_at
			RETURNING revision`
		args = []any{string(key), string(payload), now}
	case 0:
		query = `INSERT INTO collections (collection_key, payload, revision, updated_at) VALUES (?, ?, 1, ?)
			ON CONFLICT (collection_key) DO NOTHING
			RETURNING revision`
		args = []any{string(key), string(payload), now}
	default:
		query = `UPDATE collections SET payload = ?, revision = revision + 1, updated_at = ?
			WHERE collection_key = ? AND revision = ?
			RETURNING revision`
		args = []any{string(payload), now, string(key), expectedRevision}
	}

	var next int64
	err := s.db.QueryRowContext(ctx, s.rebind(query), args...).Scan(&next)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, repository.RevisionConflict(key, expectedRevision, s.currentRevision(ctx, key))
	}
	if err != nil {
		return 0, fmt.Errorf("save %s: %w", key, err)
	}
	return next, nil
}

// currentRevision is only used to word conflict errors; lookup failures read as 0.
func (s *SQLEntityStore) currentRevision(ctx context.Context, key repository.CollectionKey) int64 {
	var rev int64
	_ = s.db.QueryRowContext(ctx,
		s.rebind(`SELECT revision FROM collections WHERE collection_key = ?`),
		string(key),
	).Scan(&rev)
	return rev
}
