package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const appTitle = "Library Management System"

// StatusLevel represents the severity of a user facing notice.
type StatusLevel int

const (
	// LevelError indicates a failure or error condition.
	LevelError StatusLevel = iota
	// LevelInfo indicates general informational messages.
	LevelInfo
	// LevelSuccess indicates successful completion of an operation.
	LevelSuccess
)

// Color returns ANSI color codes for terminal output.
// Informational notices stay uncolored.
func (l StatusLevel) Color() string {
	switch l {
	case LevelError:
		return "\033[31m" // Red
	case LevelSuccess:
		return "\033[32m" // Green
	default:
		return ""
	}
}

// ResetColor returns the ANSI reset code.
func ResetColor() string {
	return "\033[0m"
}

// isTerminal reports whether the writer is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// renderStatus prints a one-line notice, colored by level when the
// output is an interactive terminal.
func (sh *Shell) renderStatus(level StatusLevel, message string) {
	if color := level.Color(); sh.colors && color != "" {
		fmt.Fprintf(sh.out, "%s%s%s\n", color, message, ResetColor())
		return
	}
	fmt.Fprintln(sh.out, message)
}

func (sh *Shell) renderError(message string) {
	sh.renderStatus(LevelError, message)
}

func (sh *Shell) renderSuccess(message string) {
	sh.renderStatus(LevelSuccess, message)
}

func (sh *Shell) renderInfo(message string) {
	sh.renderStatus(LevelInfo, message)
}

func (sh *Shell) renderLine(message string) {
	fmt.Fprintln(sh.out, message)
}

func (sh *Shell) renderBanner() {
	fmt.Fprintf(sh.out, "=== %s ===\n", appTitle)
}

func (sh *Shell) renderHeader(title string) {
	fmt.Fprintf(sh.out, "\n--- %s ---\n", title)
}

// renderBooks prints the given records as an aligned table, one row
// per book, quantities right aligned.
func (sh *Shell) renderBooks(books []Book) error {
	config := tablewriter.Config{}
	config.Row.Alignment = tw.CellAlignment{PerColumn: []tw.Align{tw.AlignLeft, tw.AlignLeft, tw.AlignLeft, tw.AlignRight, tw.AlignLeft}}
	table := tablewriter.NewTable(sh.out, tablewriter.WithConfig(config))
	table.Header("Title", "Author", "ISBN", "Quantity", "Date Added")
	for _, b := range books {
		if err := table.Append(b.Title, b.Author, b.ISBN, strconv.Itoa(b.Quantity), b.AddedAt.Format(time.DateOnly)); err != nil {
			return err
		}
	}
	return table.Render()
}
