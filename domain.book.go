package main

import (
	"strings"
	"time"
)

// Book represents a catalogued book entity. ISBN is the unique key.
// AddedAt carries the calendar date the book entered the catalog and
// is never updated afterwards.
type Book struct {
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	ISBN     string    `json:"isbn"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"addedAt"`
}

// Matches reports whether the book title or author contains
// the given lowercased term.
func (b Book) Matches(lowerTerm string) bool {
	return strings.Contains(strings.ToLower(b.Title), lowerTerm) ||
		strings.Contains(strings.ToLower(b.Author), lowerTerm)
}

// CatalogStatistics holds the aggregates displayed to the user.
type CatalogStatistics struct {
	TotalBooks       int
	UniqueBooks      int
	MostCommonAuthor string
}
