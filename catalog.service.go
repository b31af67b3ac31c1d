package main

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

type CatalogServiceProvider interface {
	Add(ctx context.Context, title, author, isbn string, quantity int) (Book, error)
	Remove(ctx context.Context, isbn string) error
	Search(ctx context.Context, term string) ([]Book, error)
	List(ctx context.Context) []Book
	Statistics(ctx context.Context) (CatalogStatistics, error)
}

type CatalogService struct {
	logger  *zap.Logger
	config  *Config
	clock   Clocker
	storage CatalogStorage
	table   *BookTable
}

func NewCatalogService(logger *zap.Logger, config *Config, clock Clocker, storage CatalogStorage, table *BookTable) CatalogServiceProvider {
	return &CatalogService{
		logger:  logger,
		config:  config,
		clock:   clock,
		storage: storage,
		table:   table,
	}
}

// Add appends a new book to the table and persists it. The book keeps
// its place in the table even when persisting fails; the returned
// StorageError lets the caller report the failed save alongside the
// completed addition.
func (cs *CatalogService) Add(ctx context.Context, title, author, isbn string, quantity int) (Book, error) {
	if err := ValidateBookDetails(title, author, isbn); err != nil {
		return Book{}, err
	}

	if quantity < 1 {
		quantity = 1
	}

	if cs.table.Contains(isbn) {
		return Book{}, ErrDuplicateISBN
	}

	book := Book{
		Title:    title,
		Author:   author,
		ISBN:     isbn,
		Quantity: quantity,
		AddedAt:  DateOf(cs.clock.Now()),
	}
	cs.table.Append(book)
	cs.logger.Info("catalog: book added", zap.String("book.isbn", book.ISBN), zap.String("book.title", book.Title))
	return book, cs.persist(ctx)
}

// Remove drops every record matching the given ISBN and persists the table.
func (cs *CatalogService) Remove(ctx context.Context, isbn string) error {
	if len(isbn) == 0 {
		return missingFieldError("isbn")
	}

	if removed := cs.table.RemoveByISBN(isbn); removed == 0 {
		return ErrBookNotFound
	}
	cs.logger.Info("catalog: book removed", zap.String("book.isbn", isbn))
	return cs.persist(ctx)
}

// Search returns the books whose title or author contains the term,
// case-insensitively, in table order. The table is left untouched.
func (cs *CatalogService) Search(_ context.Context, term string) ([]Book, error) {
	if len(term) == 0 {
		return nil, ErrEmptySearchTerm
	}

	lowerTerm := strings.ToLower(term)
	return cs.table.Filter(func(b Book) bool { return b.Matches(lowerTerm) }), nil
}

// List returns all books in insertion order.
func (cs *CatalogService) List(_ context.Context) []Book {
	return cs.table.All()
}

// Statistics computes the catalog aggregates. Ties on the most common
// author resolve to the lexicographically smallest name so repeated
// runs over the same table give the same answer.
func (cs *CatalogService) Statistics(_ context.Context) (CatalogStatistics, error) {
	if cs.table.Len() == 0 {
		return CatalogStatistics{}, ErrEmptyCatalog
	}

	stats := CatalogStatistics{UniqueBooks: cs.table.Len()}
	counts := make(map[string]int)
	for _, b := range cs.table.All() {
		stats.TotalBooks += b.Quantity
		counts[b.Author]++
	}

	max := 0
	for author, n := range counts {
		if n > max || (n == max && author < stats.MostCommonAuthor) {
			stats.MostCommonAuthor = author
			max = n
		}
	}
	return stats, nil
}

func (cs *CatalogService) persist(ctx context.Context) error {
	if err := cs.storage.Save(ctx, cs.table.All()); err != nil {
		cs.logger.Error("catalog: failed to save books", zap.Error(err))
		return err
	}
	return nil
}
