package main

import (
	"context"

	"go.uber.org/zap"
)

const (
	StorageBackendCSV  = "csv"
	StorageBackendBolt = "boltdb"
)

// CatalogStorage defines possible operations on the persisted book table.
// The table is the unit of storage: Save rewrites it completely and Load
// retrieves it completely. A missing store yields an empty table.
type CatalogStorage interface {
	Load(ctx context.Context) ([]Book, error)
	Save(ctx context.Context, books []Book) error
	Close() error
}

// OpenCatalogStorage builds the catalog storage matching the configured
// backend. The backend value was validated at configs initialization.
func OpenCatalogStorage(logger *zap.Logger, config *Config) (CatalogStorage, error) {
	switch config.Storage.Backend {
	case StorageBackendBolt:
		client, err := GetBoltDBClient(config)
		if err != nil {
			return nil, err
		}
		return NewBoltBookStorage(logger, &config.BoltDB, client), nil
	default:
		return NewCSVBookStorage(logger, &config.Storage), nil
	}
}
