package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

var _ CatalogStorage = (*csvBookStorage)(nil) // ensure csvBookStorage implements CatalogStorage.

// csvHeader is the column contract of the catalog file. External tools
// rely on these names and this order.
var csvHeader = []string{"Title", "Author", "ISBN", "Quantity", "Date Added"}

// bookDateLayouts lists the accepted layouts for the `Date Added`
// column. The store writes the first one; external writers may have
// used the others.
var bookDateLayouts = []string{
	time.DateOnly,
	"2006-01-02 15:04:05",
	time.RFC3339,
}

type csvBookStorage struct {
	logger *zap.Logger
	config *StorageConfig
}

// NewCSVBookStorage provides an instance of csv-file based catalog storage.
func NewCSVBookStorage(logger *zap.Logger, config *StorageConfig) CatalogStorage {
	return &csvBookStorage{
		logger: logger,
		config: config,
	}
}

// Close shuts down the csv-based catalog storage. The file is only
// held open during Load and Save calls, so there is nothing to release.
func (cs *csvBookStorage) Close() error {
	return nil
}

// Load reads the whole catalog file into memory. A missing file is a
// valid empty catalog. Any unreadable or malformed content fails the
// load as a whole: the caller decides how to degrade.
func (cs *csvBookStorage) Load(_ context.Context) ([]Book, error) {
	file, err := os.Open(cs.config.CSVFile)
	if errors.Is(err, os.ErrNotExist) {
		return []Book{}, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "load", Path: cs.config.CSVFile, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, &StorageError{Op: "load", Path: cs.config.CSVFile, Err: err}
	}

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}
	for _, h := range csvHeader {
		if _, ok := headerIndex[h]; !ok {
			return nil, &StorageError{Op: "load", Path: cs.config.CSVFile, Err: fmt.Errorf("missing required column: %s", h)}
		}
	}

	books := []Book{}
	line := 1
	for {
		line++
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &StorageError{Op: "load", Path: cs.config.CSVFile, Err: err}
		}

		book, err := parseBookRecord(record, headerIndex)
		if err != nil {
			return nil, &StorageError{Op: "load", Path: cs.config.CSVFile, Err: fmt.Errorf("line %d: %v", line, err)}
		}
		books = append(books, book)
	}

	cs.logger.Info("storage: catalog file loaded", zap.String("storage.file", cs.config.CSVFile), zap.Int("books.count", len(books)))
	return books, nil
}

// Save rewrites the whole catalog file from the given table. Prior
// content is truncated first, so a failed write can leave a shorter
// file behind; the next successful save restores it.
func (cs *csvBookStorage) Save(_ context.Context, books []Book) error {
	file, err := os.Create(cs.config.CSVFile)
	if err != nil {
		return &StorageError{Op: "save", Path: cs.config.CSVFile, Err: err}
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err = writer.Write(csvHeader); err != nil {
		return &StorageError{Op: "save", Path: cs.config.CSVFile, Err: err}
	}
	for _, b := range books {
		record := []string{b.Title, b.Author, b.ISBN, strconv.Itoa(b.Quantity), b.AddedAt.Format(time.DateOnly)}
		if err = writer.Write(record); err != nil {
			return &StorageError{Op: "save", Path: cs.config.CSVFile, Err: err}
		}
	}
	writer.Flush()
	if err = writer.Error(); err != nil {
		return &StorageError{Op: "save", Path: cs.config.CSVFile, Err: err}
	}

	cs.logger.Info("storage: catalog file saved", zap.String("storage.file", cs.config.CSVFile), zap.Int("books.count", len(books)))
	return nil
}

func parseBookRecord(record []string, headerIndex map[string]int) (Book, error) {
	get := func(column string) string {
		if idx, ok := headerIndex[column]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	quantity, err := strconv.Atoi(get("Quantity"))
	if err != nil {
		return Book{}, fmt.Errorf("invalid quantity value %q", get("Quantity"))
	}

	addedAt, err := parseBookDate(get("Date Added"))
	if err != nil {
		return Book{}, err
	}

	return Book{
		Title:    get("Title"),
		Author:   get("Author"),
		ISBN:     get("ISBN"),
		Quantity: quantity,
		AddedAt:  addedAt,
	}, nil
}

func parseBookDate(value string) (time.Time, error) {
	for _, layout := range bookDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return DateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date value %q", value)
}
