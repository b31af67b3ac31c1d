package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AppProvider interface {
	Run() error
	Serve(context.Context) func() error
	Stop(context.Context, context.Context) func() error
}

type App struct {
	logger   *zap.Logger
	config   *Config
	shell    *Shell
	cleanups []func()
}

// NewApp provides an instance of App.
func NewApp() (AppProvider, error) {
	var app *App
	config, err := LoadAndInitConfigs(GitCommit, GitTag, BuildTime)
	if err != nil {
		return nil, fmt.Errorf("failed to setup app configuration: %s", err)
	}

	// ensure the logs folder exists and Setup the logging module.
	err = os.MkdirAll(config.LogFolder, 0o700)
	if err != nil {
		return nil, fmt.Errorf("failed to create logging folder: %s", err)
	}
	clock := NewClock(config.IsProduction)
	writer := NewRSyncWriter(config, clock)
	closer := func() {
		if cerr := writer.Close(); cerr != nil {
			fmt.Println("error during closing of log file: ", cerr)
		}
	}
	logger, flusher := SetupLogging(config, writer, NewTickClock(clock))
	flush := func() {
		if ferr := flusher(); ferr != nil {
			fmt.Println("error during flushing of buffered logs: ", ferr)
		}
	}

	// Setup the books storage backend.
	storage, err := OpenCatalogStorage(logger, config)
	if err != nil {
		return app, fmt.Errorf("failed to setup the books storage: %s", err)
	}
	storageCloser := func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close the books storage", zap.Error(cerr))
		}
	}

	// Load the persisted catalog. A failed load degrades to an empty
	// table and the shell tells the user at startup.
	books, loadErr := storage.Load(context.Background())
	if loadErr != nil {
		logger.Error("failed to load the books catalog", zap.Error(loadErr))
		books = []Book{}
	}

	ids := NewIDsHandler()
	catalogService := NewCatalogService(logger, config, clock, storage, NewBookTable(books))
	stats := &Statistics{
		version: config.GitTag,
		started: clock.Now(),
		session: ids.Generate(SessionIDPrefix),
	}

	// Use git commit in case the tag is not set.
	if config.GitTag == "" {
		stats.version = config.GitCommit
	}

	shell := NewShell(logger, config, stats, clock, ids, catalogService, os.Stdin, os.Stdout, loadErr)

	return &App{
		logger: logger,
		config: config,
		shell:  shell,
		cleanups: []func(){
			storageCloser,
			flush,
			closer,
		},
	}, nil
}

// Run starts the interactive shell and a goroutine which is responsible to stop it.
func (app *App) Run() error {
	defer app.Clean()
	nCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(nCtx)

	g.Go(app.Serve(gCtx))
	g.Go(app.Stop(nCtx, gCtx))

	err := g.Wait()
	if errors.Is(err, ErrShellClosed) {
		err = nil
	}
	app.logger.Info("library shell stopped",
		zap.String("app.storage", app.config.Storage.Backend),
		zap.Error(err),
	)
	return err
}

// Clean calls all registered cleanups functions.
func (app *App) Clean() {
	for _, f := range app.cleanups {
		f()
	}
}

// Serve starts the interactive shell session. Its returned error will
// be caught by the errorgroup. A session ended by the user keeps its
// sentinel so the group context is cancelled and Stop unblocks.
func (app *App) Serve(ctx context.Context) func() error {
	return func() error {
		app.logger.Info("library shell starting",
			zap.String("app.storage", app.config.Storage.Backend),
		)
		err := app.shell.Run(ctx)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		return err
	}
}

// Stop listens for the group context and states the reason of the
// session end. The storage closes with the cleanups, once no action
// can be in flight anymore. We explicitly return `nil` to allow the
// errorgroup catches only the `Serve` method result.
func (app *App) Stop(nCtx, gCtx context.Context) func() error {
	return func() error {
		<-gCtx.Done()

		if nCtx.Err() != nil {
			app.logger.Info("library shell stopping. reason: requested to stop")
		} else {
			app.logger.Info("library shell stopping. reason: session ended")
		}
		return nil
	}
}
