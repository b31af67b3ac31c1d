package main

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestBoltStore returns a new instance of bolt store in a temporary path.
func newTestBoltStore() (*boltBookStorage, error) {
	f, err := os.CreateTemp("", "tmp.bolt.db-")
	if err != nil {
		return nil, err
	}
	f.Close()
	testConfig := &Config{
		BoltDB: BoltDBConfig{
			FilePath:   f.Name(),
			Timeout:    5 * time.Second,
			BucketName: "test.books",
		},
	}

	client, err := GetBoltDBClient(testConfig)

	return &boltBookStorage{
		logger: zap.NewNop(),
		client: client,
		config: &testConfig.BoltDB,
	}, err
}

// closeTestBoltStore closes the temporary bolt store and removes the underlying data file.
func (bs *boltBookStorage) closeTestBoltStore() error {
	defer os.Remove(bs.config.FilePath)
	return bs.Close()
}

// Ensure bolt store keeps content and order across a save then load.
func TestBoltStore_SaveLoad(t *testing.T) {
	bs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer bs.closeTestBoltStore()

	added := time.Date(2023, 0o7, 0o2, 0, 0, 0, 0, time.UTC)
	books := []Book{
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", ISBN: "9780261103344", Quantity: 2, AddedAt: added},
		{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Quantity: 3, AddedAt: added},
		{Title: "The Silmarillion", Author: "J.R.R. Tolkien", ISBN: "9780261102736", Quantity: 1, AddedAt: added},
	}
	require.NoError(t, bs.Save(context.TODO(), books))

	loaded, err := bs.Load(context.TODO())
	require.NoError(t, err)
	assert.Equal(t, books, loaded)
}

// Ensure the position based keys keep the table order beyond ten records.
func TestBoltStore_LoadOrder(t *testing.T) {
	bs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer bs.closeTestBoltStore()

	books := make([]Book, 0, 15)
	for i := 0; i < 15; i++ {
		books = append(books, Book{Title: fmt.Sprintf("Book %02d", i), ISBN: fmt.Sprintf("I%02d", i), Quantity: 1})
	}
	require.NoError(t, bs.Save(context.TODO(), books))

	loaded, err := bs.Load(context.TODO())
	require.NoError(t, err)
	require.Len(t, loaded, len(books))
	for i, b := range loaded {
		assert.Equal(t, fmt.Sprintf("I%02d", i), b.ISBN)
	}
}

// Ensure each save is a full rewrite of the bucket.
func TestBoltStore_SaveOverwrites(t *testing.T) {
	bs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer bs.closeTestBoltStore()

	require.NoError(t, bs.Save(context.TODO(), []Book{
		{Title: "The Hobbit", ISBN: "9780261103344", Quantity: 2},
		{Title: "Dune", ISBN: "9780441013593", Quantity: 3},
	}))
	require.NoError(t, bs.Save(context.TODO(), []Book{
		{Title: "Dune", ISBN: "9780441013593", Quantity: 3},
	}))

	loaded, err := bs.Load(context.TODO())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "9780441013593", loaded[0].ISBN)
}

// Ensure a fresh bucket yields an empty catalog.
func TestBoltStore_LoadEmpty(t *testing.T) {
	bs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer bs.closeTestBoltStore()

	books, err := bs.Load(context.TODO())
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Len(t, books, 0)
}
