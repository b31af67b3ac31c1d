package main

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

var _ CatalogStorage = (*boltBookStorage)(nil) // ensure boltBookStorage implements CatalogStorage.

type boltBookStorage struct {
	logger *zap.Logger
	client *bolt.DB
	config *BoltDBConfig
}

// GetBoltDBClient setup the database and the bucket then provides a ready to use client.
func GetBoltDBClient(config *Config) (*bolt.DB, error) {
	db, err := bolt.Open(config.BoltDB.FilePath, 0o600, &bolt.Options{Timeout: config.BoltDB.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.BoltDB.BucketName)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.BoltDB.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up bucket: %v", err)
	}
	return db, nil
}

// NewBoltBookStorage provides an instance of bolt-based catalog storage.
func NewBoltBookStorage(logger *zap.Logger, boltConfig *BoltDBConfig, client *bolt.DB) CatalogStorage {
	return &boltBookStorage{
		logger: logger,
		client: client,
		config: boltConfig,
	}
}

// Close shuts down the bolt-based catalog storage.
func (bs *boltBookStorage) Close() error {
	return bs.client.Close()
}

// Load retrieves the full list of books stored in the bolt database,
// in the order they were saved.
func (bs *boltBookStorage) Load(_ context.Context) ([]Book, error) {
	// initialize a readable transaction.
	tx, err := bs.client.Begin(false)
	if err != nil {
		return nil, &StorageError{Op: "load", Path: bs.config.FilePath, Err: err}
	}
	defer tx.Rollback()

	// Create a cursor on the catalog bucket.
	c := tx.Bucket([]byte(bs.config.BucketName)).Cursor()

	books := []Book{}
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var book Book
		if err = json.Unmarshal(v, &book); err != nil {
			return nil, &StorageError{Op: "load", Path: bs.config.FilePath, Err: err}
		}
		books = append(books, book)
	}

	bs.logger.Info("storage: catalog database loaded", zap.String("storage.file", bs.config.FilePath), zap.Int("books.count", len(books)))
	return books, nil
}

// Save rewrites the whole catalog bucket from the given table. Each
// book is keyed by its position so a later Load preserves the order.
func (bs *boltBookStorage) Save(_ context.Context, books []Book) error {
	err := bs.client.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bs.config.BucketName)); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		bucket, err := tx.CreateBucketIfNotExists([]byte(bs.config.BucketName))
		if err != nil {
			return err
		}
		for i, book := range books {
			bookBytes, err := json.Marshal(book)
			if err != nil {
				return err
			}
			if err = bucket.Put(itob(uint64(i+1)), bookBytes); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &StorageError{Op: "save", Path: bs.config.FilePath, Err: err}
	}

	bs.logger.Info("storage: catalog database saved", zap.String("storage.file", bs.config.FilePath), zap.Int("books.count", len(books)))
	return nil
}

// itob returns an 8-byte big endian representation of v.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
