// Package server wires the finkeeper API server: it opens Postgres, applies
// migrations, builds the services and runs the REST API next to the gRPC
// health service until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"github.com/dmitrijs2005/finkeeper/internal/server/config"
	"github.com/dmitrijs2005/finkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/finkeeper/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/finkeeper/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	api    *httpapi.Server
	health *gs.HealthServer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	us := services.NewUserService(db, rm, c)
	cs := services.NewCategoryService(db, rm)
	ts := services.NewTransactionService(db, rm)

	router := httpapi.NewRouter(httpapi.NewHandler(us, cs, ts, logger), c.CORSOrigins)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		api:    httpapi.NewServer(c.HTTPAddr, router, logger),
		health: gs.NewHealthServer(c.HealthAddr, logger),
	}, nil
}

// Run serves until SIGINT, SIGTERM or SIGQUIT, or until either server fails.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.api.Run(ctx) })
	g.Go(func() error { return app.health.Run(ctx) })

	err := g.Wait()
	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(context.Background(), "closing database", "error", cerr)
	}
	app.logger.Info(context.Background(), "App stopped")
	return err
}
