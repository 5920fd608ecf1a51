package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/spotly/meeting-api/internal/config"
	"github.com/spotly/meeting-api/internal/events"
	"github.com/spotly/meeting-api/internal/platform/postgres"
	"github.com/spotly/meeting-api/internal/service"
	"github.com/spotly/meeting-api/internal/service/auth"
	"github.com/spotly/meeting-api/internal/store"
	"github.com/spotly/meeting-api/internal/task"
)

// taskDrainTimeout bounds how long shutdown waits for queued event handlers.
const taskDrainTimeout = 5 * time.Second

// application holds the shared application dependencies and releases them on
// shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	meetingStore store.MeetingStore

	jwtService     auth.JWTService
	meetingService service.MeetingService

	eventEmitter *events.InMemoryEventEmitter
	taskRunner   *task.TaskRunner
}

// newApplication wires stores, services and the event system on top of an
// established database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.meetingStore = postgres.NewPostgresMeetingStore(db, logger)

	// Event handlers run on the task runner, off the request path.
	app.taskRunner = task.NewTaskRunner(task.RunnerConfigFrom(cfg.Task), logger)
	app.taskRunner.Start()

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(
		task.NewAsyncEventHandler(app.taskRunner, events.NewLoggingEventHandler(logger), logger))

	app.meetingService, err = service.NewMeetingService(app.meetingStore, app.eventEmitter, logger)
	if err != nil {
		_ = app.taskRunner.Stop(context.Background())
		return nil, fmt.Errorf("failed to create meeting service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		ctx, cancel := context.WithTimeout(context.Background(), taskDrainTimeout)
		if err := app.taskRunner.Stop(ctx); err != nil {
			app.logger.Error("Error stopping task runner", slog.String("error", err.Error()))
		}
		cancel()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("Application shutdown completed")
}
