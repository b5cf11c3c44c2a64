package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/clubboard/core"
)

func openStore(t *testing.T, driver, path string) core.BlobStore {
	conf := core.NewTestConfig()
	conf.Storage.Driver = driver
	conf.Storage.Path = path
	store, err := Open(conf)
	require.NoError(t, err, "Open(%q)", driver)
	return store
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name       string
		driver     string
		path       string
		persistent bool
	}{
		{name: "bolt", driver: core.DriverBolt, path: filepath.Join(dir, "nested", "board.db"), persistent: true},
		{name: "default is bolt", driver: "", path: filepath.Join(dir, "default.db"), persistent: true},
		{name: "sqlite", driver: core.DriverSQLite, path: filepath.Join(dir, "board.sqlite"), persistent: true},
		{name: "memory", driver: core.DriverMemory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openStore(t, tt.driver, tt.path)

			_, err := store.Get(ctx, "board")
			assert.Equal(t, core.ErrBlobNotFound, err)

			require.NoError(t, store.Set(ctx, "board", []byte(`{"v":1}`)))
			require.NoError(t, store.Set(ctx, "board", []byte(`{"v":2}`)))
			require.NoError(t, store.Set(ctx, "other", []byte(`x`)))

			data, err := store.Get(ctx, "board")
			require.NoError(t, err)
			assert.Equal(t, `{"v":2}`, string(data))

			data[0] = '!'
			again, err := store.Get(ctx, "board")
			require.NoError(t, err)
			assert.Equal(t, `{"v":2}`, string(again), "returned bytes are a copy")

			require.NoError(t, store.Close())
			if !tt.persistent {
				return
			}

			reopened := openStore(t, tt.driver, tt.path)
			defer func() { _ = reopened.Close() }()
			data, err = reopened.Get(ctx, "board")
			require.NoError(t, err)
			assert.Equal(t, `{"v":2}`, string(data))
		})
	}

	t.Run("unknown driver", func(t *testing.T) {
		conf := core.NewTestConfig()
		conf.Storage.Driver = "mongo"
		_, err := Open(conf)
		assert.EqualError(t, err, `unknown storage driver "mongo"`)
	})
}
