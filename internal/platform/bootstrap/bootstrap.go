// Package bootstrap wires configuration, storage, events and services into a
// ready-to-use ServiceContainer shared by the HTTP server and the CLI.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/finance_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_reconciler/internal/core/ports/services"
	"github.com/SscSPs/finance_reconciler/internal/core/services"
	"github.com/SscSPs/finance_reconciler/internal/events/kafka"
	"github.com/SscSPs/finance_reconciler/internal/platform/config"
	"github.com/SscSPs/finance_reconciler/internal/repositories/database/pgsql"
	"github.com/SscSPs/finance_reconciler/internal/repositories/memory"
	"github.com/SscSPs/finance_reconciler/pkg/database"
)

// App is a fully wired application. Close releases the pool and the publisher.
type App struct {
	Services *portssvc.ServiceContainer
	closers  []func()
}

// Close releases resources in reverse acquisition order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Options tune what New sets up.
type Options struct {
	// RunMigrations applies pending migrations before services are built.
	RunMigrations bool
}

// New builds the application from cfg. Without a database URL the in-memory
// store is used, which is only suitable for local experiments.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*App, error) {
	app := &App{}

	var repos portsrepo.RepositoryProvider
	if cfg.DatabaseURL == "" {
		logger.Warn("PGSQL_URL not set, using in-memory store; data will not survive a restart")
		repos = memory.NewStore().Provider()
	} else {
		if opts.RunMigrations {
			logger.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))
			if err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
				return nil, err
			}
		}

		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		app.closers = append(app.closers, func() { database.ClosePgxPool(pool) })
		logger.Info("Database connection pool established.", slog.String("tx_isolation", cfg.TxIsolation))

		repos = pgsql.NewRepositoryProvider(pool, pgsql.IsoLevel(cfg.TxIsolation))
	}

	var publisher portssvc.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		p := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		publisher = p
		app.closers = append(app.closers, func() {
			if err := p.Close(); err != nil {
				logger.Error("Failed to close kafka publisher", slog.String("error", err.Error()))
			}
		})
		logger.Info("Publishing balance events", slog.Any("brokers", cfg.KafkaBrokers), slog.String("topic", cfg.KafkaTopic))
	}

	app.Services = services.NewServiceContainer(cfg, repos, publisher)
	return app, nil
}
