package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testBooks() []Book {
	added := time.Date(2023, 0o7, 0o2, 0, 0, 0, 0, time.UTC)
	return []Book{
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", ISBN: "9780261103344", Quantity: 2, AddedAt: added},
		{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Quantity: 3, AddedAt: added},
		{Title: "The Silmarillion", Author: "J.R.R. Tolkien", ISBN: "9780261102736", Quantity: 1, AddedAt: added},
	}
}

// TestNewBookTable ensures the table copies the loaded records
// instead of keeping the caller's slice.
func TestNewBookTable(t *testing.T) {
	books := testBooks()
	table := NewBookTable(books)
	books[0].Title = "mutated"

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, "The Hobbit", table.All()[0].Title)
}

// TestBookTable_All ensures returned records are in insertion order
// and detached from the table internals.
func TestBookTable_All(t *testing.T) {
	table := NewBookTable(testBooks())
	all := table.All()
	assert.Equal(t, []string{"9780261103344", "9780441013593", "9780261102736"}, []string{all[0].ISBN, all[1].ISBN, all[2].ISBN})

	all[0].Title = "mutated"
	assert.Equal(t, "The Hobbit", table.All()[0].Title)
}

func TestBookTable_Append(t *testing.T) {
	table := NewBookTable(nil)
	assert.Equal(t, 0, table.Len())

	table.Append(Book{Title: "Dune", ISBN: "9780441013593"})
	assert.Equal(t, 1, table.Len())
	assert.True(t, table.Contains("9780441013593"))
}

func TestBookTable_Contains(t *testing.T) {
	table := NewBookTable(testBooks())

	t.Run("should pass: known isbn", func(t *testing.T) {
		assert.True(t, table.Contains("9780441013593"))
	})

	t.Run("should fail: unknown isbn", func(t *testing.T) {
		assert.False(t, table.Contains("0000000000000"))
	})
}

func TestBookTable_RemoveByISBN(t *testing.T) {
	t.Run("should pass: single match removed", func(t *testing.T) {
		table := NewBookTable(testBooks())
		removed := table.RemoveByISBN("9780441013593")
		assert.Equal(t, 1, removed)
		assert.Equal(t, 2, table.Len())
		assert.False(t, table.Contains("9780441013593"))

		// remaining records keep their order.
		all := table.All()
		assert.Equal(t, "9780261103344", all[0].ISBN)
		assert.Equal(t, "9780261102736", all[1].ISBN)
	})

	t.Run("should pass: every matching record removed", func(t *testing.T) {
		books := testBooks()
		books = append(books, Book{Title: "Dune (other edition)", Author: "Frank Herbert", ISBN: "9780441013593"})
		table := NewBookTable(books)

		removed := table.RemoveByISBN("9780441013593")
		assert.Equal(t, 2, removed)
		assert.False(t, table.Contains("9780441013593"))
	})

	t.Run("should fail: absent isbn leaves the table unchanged", func(t *testing.T) {
		table := NewBookTable(testBooks())
		removed := table.RemoveByISBN("0000000000000")
		assert.Equal(t, 0, removed)
		assert.Equal(t, 3, table.Len())
	})
}

func TestBookTable_Filter(t *testing.T) {
	table := NewBookTable(testBooks())

	t.Run("should pass: matches in table order", func(t *testing.T) {
		results := table.Filter(func(b Book) bool {
			return strings.Contains(strings.ToLower(b.Author), "tolkien")
		})
		assert.Len(t, results, 2)
		assert.Equal(t, "The Hobbit", results[0].Title)
		assert.Equal(t, "The Silmarillion", results[1].Title)
	})

	t.Run("should pass: no match yields an empty non-nil slice", func(t *testing.T) {
		results := table.Filter(func(Book) bool { return false })
		assert.NotNil(t, results)
		assert.Len(t, results, 0)
	})
}
