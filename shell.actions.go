package main

import (
	"context"
	"errors"
	"fmt"
)

// addBookAction collects the details of a new book and adds it to the
// catalog. A failed save is reported but the book stays in the table,
// so the next successful mutation persists it too.
func (sh *Shell) addBookAction(ctx context.Context) error {
	sh.renderHeader("Add New Book")

	title, err := sh.readLine(ctx, "Title:")
	if err != nil {
		return err
	}
	author, err := sh.readLine(ctx, "Author:")
	if err != nil {
		return err
	}
	isbn, err := sh.readLine(ctx, "ISBN:")
	if err != nil {
		return err
	}
	quantity, err := sh.readQuantity(ctx)
	if err != nil {
		return err
	}

	book, err := sh.catalog.Add(ctx, title, author, isbn, quantity)
	var fieldErr missingFieldError
	var storageErr *StorageError
	switch {
	case errors.As(err, &fieldErr):
		sh.renderError("Please fill in all book details.")
		return nil
	case errors.Is(err, ErrDuplicateISBN):
		sh.renderError("Book with this ISBN already exists.")
		return nil
	case errors.As(err, &storageErr):
		sh.renderError("An error occurred while saving data: " + err.Error())
	case err != nil:
		return err
	}
	sh.renderSuccess(fmt.Sprintf("Book '%s' added successfully!", book.Title))
	return nil
}

// removeBookAction drops the book matching the collected ISBN.
func (sh *Shell) removeBookAction(ctx context.Context) error {
	sh.renderHeader("Remove Book")

	isbn, err := sh.readLine(ctx, "Enter ISBN of the book to remove:")
	if err != nil {
		return err
	}

	rerr := sh.catalog.Remove(ctx, isbn)
	var fieldErr missingFieldError
	var storageErr *StorageError
	switch {
	case errors.As(rerr, &fieldErr):
		sh.renderError("Please enter the ISBN of the book to remove.")
		return nil
	case errors.Is(rerr, ErrBookNotFound):
		sh.renderError("Book with this ISBN does not exist.")
		return nil
	case errors.As(rerr, &storageErr):
		sh.renderError("An error occurred while saving data: " + rerr.Error())
	case rerr != nil:
		return rerr
	}
	sh.renderSuccess("Book removed successfully!")
	return nil
}

// searchBookAction looks up books by title or author, case-insensitively.
func (sh *Shell) searchBookAction(ctx context.Context) error {
	sh.renderHeader("Search Book")

	term, err := sh.readLine(ctx, "Enter title or author to search:")
	if err != nil {
		return err
	}

	results, err := sh.catalog.Search(ctx, term)
	switch {
	case errors.Is(err, ErrEmptySearchTerm):
		sh.renderInfo("Please enter a search term.")
		return nil
	case err != nil:
		return err
	}
	if len(results) == 0 {
		sh.renderInfo("No matching books found.")
		return nil
	}
	return sh.renderBooks(results)
}

// displayAllBooksAction lists the whole catalog in insertion order.
func (sh *Shell) displayAllBooksAction(ctx context.Context) error {
	sh.renderHeader("All Books")

	books := sh.catalog.List(ctx)
	if len(books) == 0 {
		sh.renderInfo("The library is empty.")
		return nil
	}
	return sh.renderBooks(books)
}

// displayStatisticsAction renders the catalog aggregates.
func (sh *Shell) displayStatisticsAction(ctx context.Context) error {
	sh.renderHeader("Library Statistics")

	stats, err := sh.catalog.Statistics(ctx)
	if errors.Is(err, ErrEmptyCatalog) {
		sh.renderInfo("No books in the library to display statistics.")
		return nil
	}
	if err != nil {
		return err
	}
	sh.renderLine(fmt.Sprintf("Total Number of Books: %d", stats.TotalBooks))
	sh.renderLine(fmt.Sprintf("Number of Unique Books: %d", stats.UniqueBooks))
	sh.renderLine(fmt.Sprintf("Most Common Author: %s", stats.MostCommonAuthor))
	return nil
}

// exitAction ends the session on user request.
func (sh *Shell) exitAction(_ context.Context) error {
	sh.renderLine("Exiting the application.")
	return ErrShellClosed
}
