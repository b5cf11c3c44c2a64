package database

import (
	"github.com/pkg/errors"

	"github.com/trezcool/clubboard/core"
	"github.com/trezcool/clubboard/storage/database/bolt"
	"github.com/trezcool/clubboard/storage/database/inmem"
	"github.com/trezcool/clubboard/storage/database/sqlx"
)

// Open returns the blob store selected by conf.Storage.Driver.
func Open(conf *core.Config) (core.BlobStore, error) {
	switch conf.Storage.Driver {
	case core.DriverBolt, "":
		db, err := boltdb.Open(conf.Storage.Path)
		if err != nil {
			return nil, err
		}
		return db, nil
	case core.DriverSQLite:
		db, err := sqlxdb.Open(conf.Storage.Path)
		if err != nil {
			return nil, err
		}
		return db, nil
	case core.DriverMemory:
		return inmemdb.Open(), nil
	default:
		return nil, errors.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
}
