package inmemdb

import (
	"context"
	"sync"

	"github.com/trezcool/clubboard/core"
)

type DB struct {
	sync.RWMutex
	table map[string][]byte
}

var _ core.BlobStore = (*DB)(nil)

func Open() *DB {
	return &DB{table: make(map[string][]byte)}
}

func (db *DB) Get(_ context.Context, key string) ([]byte, error) {
	db.RLock()
	defer db.RUnlock()

	data, ok := db.table[key]
	if !ok {
		return nil, core.ErrBlobNotFound
	}
	return append([]byte(nil), data...), nil
}

func (db *DB) Set(_ context.Context, key string, data []byte) error {
	db.Lock()
	defer db.Unlock()
	db.table[key] = append([]byte(nil), data...)
	return nil
}

func (db *DB) Close() error { return nil }
