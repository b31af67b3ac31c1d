package main

// BookTable is the in-memory ordered collection of book records.
// It preserves insertion order and serves all lookups with a linear
// scan. It is owned by a single goroutine (the shell event loop),
// so it carries no lock.
type BookTable struct {
	books []Book
}

// NewBookTable builds a table from previously loaded records.
func NewBookTable(books []Book) *BookTable {
	t := &BookTable{books: make([]Book, 0, len(books))}
	t.books = append(t.books, books...)
	return t
}

// Len returns the number of records in the table.
func (t *BookTable) Len() int {
	return len(t.books)
}

// All returns a copy of the table records in insertion order.
func (t *BookTable) All() []Book {
	books := make([]Book, len(t.books))
	copy(books, t.books)
	return books
}

// Append adds a record at the end of the table.
func (t *BookTable) Append(book Book) {
	t.books = append(t.books, book)
}

// Contains reports whether a record with the given ISBN exists.
func (t *BookTable) Contains(isbn string) bool {
	for _, b := range t.books {
		if b.ISBN == isbn {
			return true
		}
	}
	return false
}

// RemoveByISBN drops every record matching the given ISBN while
// keeping the order of the remaining records. It returns the number
// of records removed.
func (t *BookTable) RemoveByISBN(isbn string) int {
	kept := t.books[:0]
	removed := 0
	for _, b := range t.books {
		if b.ISBN == isbn {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	t.books = kept
	return removed
}

// Filter returns the records satisfying the match function, in table order.
func (t *BookTable) Filter(match func(Book) bool) []Book {
	results := []Book{}
	for _, b := range t.books {
		if match(b) {
			results = append(results, b)
		}
	}
	return results
}
