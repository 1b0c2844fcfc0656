package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"portfolio-views/internal/aggregators"
	internalhttp "portfolio-views/internal/http"
	"portfolio-views/internal/migrations"
	"portfolio-views/internal/portfolios"
	"portfolio-views/internal/recorders"
	"portfolio-views/internal/shared/configs"
	"portfolio-views/internal/shared/filestorages"
	"portfolio-views/internal/shared/loggers"
	"portfolio-views/internal/stores"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	// db is nil with the file driver.
	db *sql.DB
	// viewAggregator is nil in direct mode.
	viewAggregator   aggregators.ViewAggregator
	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level, loggers.WithFormat(config.Log.Format))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "portfolio-views").
		Logger()

	// Initialize blob store
	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize portfolio store
	portfolioStore, db, err := newPortfolioStore(config.Database, fileStorage, appLogger)
	if err != nil {
		return nil, err
	}
	uploadStore := stores.NewUploadStore(fileStorage)

	// Initialize view recording; a nil tracker selects direct mode
	var tracker recorders.Tracker
	var viewAggregator aggregators.ViewAggregator
	if config.Views.Mode == configs.ViewModeBuffered {
		aggregatorLogger := appLogger.With().Str(loggers.FieldComponent, "aggregator").Logger()
		viewAggregator, err = aggregators.NewViewAggregator(portfolioStore, aggregators.Options{
			FlushInterval: config.Views.FlushInterval(),
			MaxBatchSize:  config.Views.MaxBatchSize,
			FlushTimeout:  config.Views.FlushTimeout(),
		}, aggregatorLogger)
		if err != nil {
			closeDB(db)
			return nil, fmt.Errorf("failed to initialize view aggregator: %w", err)
		}
		tracker = viewAggregator
	}
	viewRecorder := recorders.NewViewRecorder(portfolioStore, tracker)

	// Initialize portfolio service
	portfolioService := portfolios.NewPortfolioService(portfolioStore, uploadStore, viewRecorder, portfolios.Options{
		MaxFileBytes:     config.Uploads.MaxFileBytes,
		MaxProjectImages: config.Uploads.MaxProjectImages,
		IgnoreBots:       config.Views.IgnoreBots,
	})

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(portfolioService, uploadStore, internalhttp.UploadLimits{
		MaxFileBytes:     config.Uploads.MaxFileBytes,
		MaxProjectImages: config.Uploads.MaxProjectImages,
	}, internalhttp.CORSPolicy{
		AllowedOrigins:   config.CORS.AllowedOrigins,
		AllowedMethods:   config.CORS.AllowedMethods,
		AllowedHeaders:   config.CORS.AllowedHeaders,
		AllowCredentials: config.CORS.AllowCredentials,
		MaxAge:           config.CORS.MaxAge,
	}, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:         config,
		appLogger:      appLogger,
		server:         server,
		db:             db,
		viewAggregator: viewAggregator,
	}, nil
}

func newPortfolioStore(config configs.DatabaseConfig, fileStorage filestorages.FileStorage, appLogger loggers.Logger) (stores.PortfolioStore, *sql.DB, error) {
	if config.Driver != configs.DatabaseDriverPostgres {
		return stores.NewFilePortfolioStore(fileStorage), nil, nil
	}

	db, err := stores.OpenPostgres(config.DSN, config.MaxOpenConns, config.MaxIdleConns)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	migrationLogger := appLogger.With().Str(loggers.FieldComponent, "migrations").Logger()
	if err := migrations.RunMigrations(db, config.AutoMigrate, migrationLogger); err != nil {
		closeDB(db)
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return stores.NewPostgresPortfolioStore(db), db, nil
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Str(loggers.FieldStoreDriver, app.config.Database.Driver).
		Str(loggers.FieldViewMode, app.config.Views.Mode).
		Msgf("Starting portfolio-views service on port %d (log_level=%s, file_storage_root_dir=%s)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.FileStorage.RootDir)

	// start background flusher
	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
	if app.viewAggregator != nil {
		app.viewAggregator.Start(app.backgroundCtx)
	}

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application. Pending views are flushed
// after the server stops accepting requests and before the database closes.
func (app *App) Shutdown(ctx context.Context) error {
	var errs []error

	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown failed: %w", err))
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Drain pending views
	if app.viewAggregator != nil {
		pending := app.viewAggregator.Pending()
		if err := app.viewAggregator.Drain(ctx); err != nil {
			errs = append(errs, fmt.Errorf("final view flush failed: %w", err))
		}
		app.appLogger.Info().Int(loggers.FieldBatchKeys, pending).Msg("View aggregator drained")
	}

	// 3) Cancel background work
	if app.backgroundCancel != nil {
		app.backgroundCancel()
	}

	// 4) Close database
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close failed: %w", err))
		}
	}

	return errors.Join(errs...)
}
