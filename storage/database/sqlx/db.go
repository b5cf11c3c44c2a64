package sqlxdb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/clubboard/core"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated_at_unix INTEGER
	);`,
}

type blobRow struct {
	Key       string     `db:"key"`
	Data      []byte     `db:"data"`
	UpdatedAt null.Int64 `db:"updated_at_unix"`
}

type DB struct {
	db *sqlx.DB

	now func() time.Time // mockable
}

var _ core.BlobStore = (*DB)(nil)

// Open opens (or creates) the SQLite file at path.
func Open(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		path = "board.sqlite"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "creating data dir")
		}
	}

	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite db")
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "setting busy timeout")
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, "creating schema")
		}
	}
	return &DB{db: db, now: time.Now}, nil
}

func (s *DB) Get(ctx context.Context, key string) ([]byte, error) {
	var row blobRow
	err := s.db.GetContext(ctx, &row, `SELECT key, data, updated_at_unix FROM blobs WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return nil, core.ErrBlobNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "selecting blob")
	}
	return row.Data, nil
}

// UpdatedAt reports when key was last written; it is invalid when never written.
func (s *DB) UpdatedAt(ctx context.Context, key string) (null.Time, error) {
	var ts null.Int64
	err := s.db.GetContext(ctx, &ts, `SELECT updated_at_unix FROM blobs WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return null.Time{}, nil
	}
	if err != nil {
		return null.Time{}, errors.Wrap(err, "selecting blob timestamp")
	}
	if !ts.Valid {
		return null.Time{}, nil
	}
	return null.TimeFrom(time.Unix(ts.Int64, 0)), nil
}

func (s *DB) Set(ctx context.Context, key string, data []byte) error {
	row := blobRow{Key: key, Data: data, UpdatedAt: null.Int64From(s.now().Unix())}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO blobs (key, data, updated_at_unix) VALUES (:key, :data, :updated_at_unix)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at_unix = excluded.updated_at_unix`,
		row,
	)
	return errors.Wrap(err, "upserting blob")
}

func (s *DB) Close() error {
	return s.db.Close()
}
