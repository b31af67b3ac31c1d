package main

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Statistics holds session stats for ops.
type Statistics struct {
	version string
	session string
	called  uint64
	started time.Time
	status  map[string]uint64
	mu      *sync.RWMutex
}

// Shell drives the interactive menu session. It owns the output stream
// for the whole session and consumes the input stream line by line. It
// is not safe for concurrent use; one session means one shell.
type Shell struct {
	logger  *zap.Logger
	config  *Config
	stats   *Statistics
	clock   Clocker
	ids     UIDGenerator
	catalog CatalogServiceProvider
	in      io.Reader
	out     io.Writer
	colors  bool
	lines   chan string
	loadErr error
}

// NewShell provides a new instance of Shell.
func NewShell(logger *zap.Logger, config *Config, stats *Statistics, clock Clocker, ids UIDGenerator, catalog CatalogServiceProvider, in io.Reader, out io.Writer, loadErr error) *Shell {
	stats.status = make(map[string]uint64)
	stats.mu = &sync.RWMutex{}
	return &Shell{
		logger:  logger,
		config:  config,
		stats:   stats,
		clock:   clock,
		ids:     ids,
		catalog: catalog,
		in:      in,
		out:     out,
		colors:  isTerminal(out),
		lines:   make(chan string),
		loadErr: loadErr,
	}
}

// Run executes the interactive session until the user exits, the input
// stream ends or the context is cancelled. A regular ending is reported
// as ErrShellClosed so the caller can tell it apart from a cancellation.
func (sh *Shell) Run(ctx context.Context) error {
	go sh.pumpLines()
	defer sh.logSessionStats()

	sh.logger.Info("shell: session started", zap.String("session.id", sh.stats.session))
	sh.renderBanner()
	if sh.loadErr != nil {
		sh.renderError("An error occurred while loading data: " + sh.loadErr.Error())
	}

	entries := sh.menuEntries()
	for {
		sh.renderMenu(entries)
		choice, err := sh.readLine(ctx, "Enter your choice:")
		if err != nil {
			return sh.exitReason(err)
		}
		if err := sh.dispatch(ctx, entries, choice); err != nil {
			return sh.exitReason(err)
		}
	}
}

// exitReason normalizes how a session ends: a closed input stream is
// a regular exit, everything else keeps its meaning.
func (sh *Shell) exitReason(err error) error {
	if errors.Is(err, ErrInputClosed) {
		return ErrShellClosed
	}
	return err
}

// logSessionStats records how the session was used before it ends.
func (sh *Shell) logSessionStats() {
	sh.stats.mu.RLock()
	defer sh.stats.mu.RUnlock()
	sh.logger.Info(
		"shell: session ended",
		zap.String("session.id", sh.stats.session),
		zap.String("app.version", sh.stats.version),
		zap.Uint64("session.actions", atomic.LoadUint64(&sh.stats.called)),
		zap.Duration("session.duration", sh.clock.Now().Sub(sh.stats.started)),
		zap.Any("session.usage", sh.stats.status),
	)
}
