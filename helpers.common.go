package main

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrBookNotFound    = errors.New("book not found")
	ErrDuplicateISBN   = errors.New("book already exists")
	ErrEmptySearchTerm = errors.New("empty search term")
	ErrEmptyCatalog    = errors.New("catalog is empty")
	ErrInputClosed     = errors.New("input stream closed")
	ErrShellClosed     = errors.New("shell session ended")
)

type (
	ContextKey        string
	missingFieldError string
)

const (
	SessionIDPrefix        string     = "s"
	ActionIDPrefix         string     = "a"
	ActionIDContextKey     ContextKey = "action.id"
	ActionNumberContextKey ContextKey = "action.number"
)

func (m missingFieldError) Error() string {
	return string(m) + " is required"
}

// StorageError reports a failed load or save against the books store.
// The shell renders it to the user; Unwrap keeps the cause inspectable.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val := ctx.Value(contextKey); val != nil {
		return val.(string)
	}
	return ""
}

// GetActionNumberFromContext returns the action number set in
// the context. if not previously set then it returns 0.
func GetActionNumberFromContext(ctx context.Context) uint64 {
	if val := ctx.Value(ActionNumberContextKey); val != nil {
		return val.(uint64)
	}
	return 0
}

// ValidateBookDetails is a helper function to check if the details collected for a new book are complete.
func ValidateBookDetails(title, author, isbn string) error {
	if len(title) == 0 {
		return missingFieldError("title")
	}

	if len(author) == 0 {
		return missingFieldError("author")
	}

	if len(isbn) == 0 {
		return missingFieldError("isbn")
	}

	return nil
}
