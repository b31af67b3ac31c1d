package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// pumpLines feeds every line read from the shell input into the lines
// channel and closes it once the input stream ends. It runs in its own
// goroutine for the whole session so prompts stay cancellable.
func (sh *Shell) pumpLines() {
	scanner := bufio.NewScanner(sh.in)
	for scanner.Scan() {
		sh.lines <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		sh.logger.Error("shell: reading input failed", zap.Error(err))
	}
	close(sh.lines)
}

// readLine prompts with the given label and waits for the next input
// line. It returns ErrInputClosed once the input stream ends and the
// context error when the session is cancelled first.
func (sh *Shell) readLine(ctx context.Context, label string) (string, error) {
	fmt.Fprintf(sh.out, "%s ", label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-sh.lines:
		if !ok {
			return "", ErrInputClosed
		}
		return strings.TrimSpace(line), nil
	}
}

// readQuantity prompts for a strictly positive number of copies. An
// empty input takes the default of one; anything else must parse as
// a number greater or equal to one.
func (sh *Shell) readQuantity(ctx context.Context) (int, error) {
	for {
		input, err := sh.readLine(ctx, "Quantity [1]:")
		if err != nil {
			return 0, err
		}
		if input == "" {
			return 1, nil
		}
		quantity, err := strconv.Atoi(input)
		if err != nil || quantity < 1 {
			sh.renderError("Quantity must be a number greater or equal to 1.")
			continue
		}
		return quantity, nil
	}
}
