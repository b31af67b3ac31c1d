package main

import (
	"context"
	"fmt"
	"strconv"
)

// menuEntry binds a menu label to the action executed when picked.
type menuEntry struct {
	label  string
	action ActionFunc
}

// menuEntries returns the ordered list of choices offered to the user.
// The position in the list is the number the user types to pick one.
func (sh *Shell) menuEntries() []menuEntry {
	return []menuEntry{
		{label: "Add Book", action: sh.addBookAction},
		{label: "Remove Book", action: sh.removeBookAction},
		{label: "Search Book", action: sh.searchBookAction},
		{label: "Display All Books", action: sh.displayAllBooksAction},
		{label: "Display Statistics", action: sh.displayStatisticsAction},
		{label: "Exit", action: sh.exitAction},
	}
}

func (sh *Shell) renderMenu(entries []menuEntry) {
	sh.renderHeader("Menu")
	for i, entry := range entries {
		fmt.Fprintf(sh.out, "%d. %s\n", i+1, entry.label)
	}
}

// dispatch resolves the typed choice and executes the matching action
// through the hooks stack. An out of range or non numeric choice is
// reported to the user and ends the current iteration only.
func (sh *Shell) dispatch(ctx context.Context, entries []menuEntry, choice string) error {
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(entries) {
		sh.renderError(fmt.Sprintf("Invalid choice. Please select a number between 1 and %d.", len(entries)))
		return nil
	}
	entry := entries[n-1]
	hooks := sh.HooksStack(entry.label)
	return hooks.Chain(entry.action)(ctx)
}
