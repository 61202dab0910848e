package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jcmexdev/storefront/configs"
	"github.com/jcmexdev/storefront/internal/catalog"
	"github.com/jcmexdev/storefront/internal/customer"
	orderapp "github.com/jcmexdev/storefront/internal/order/app"
	"github.com/jcmexdev/storefront/internal/order/domain"
	"github.com/jcmexdev/storefront/internal/orderlog"
	"github.com/jcmexdev/storefront/internal/orderlog/sqlite"
	"github.com/jcmexdev/storefront/internal/pkg/metrics"
	"github.com/jcmexdev/storefront/internal/pkg/telemetry"
	"github.com/jcmexdev/storefront/internal/shell"
)

type App struct {
	Shell   shell.Deps
	Metrics *metrics.ShopMetrics
	Logger  *slog.Logger
}

// InitWithConfig wires the store from cfg. The returned cleanup flushes
// metrics, closes the event log and the log file, in that order.
func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	// init logger
	logger, logCloser, err := telemetry.InitLogger(telemetry.LoggerOptions{
		Service: cfg.App.Name,
		Level:   cfg.App.LogLevel,
		File:    cfg.App.LogFile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	// init tracer
	shutdownTracer, err := telemetry.SetupTracer(cfg.App.Name)
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, fmt.Errorf("init tracer: %w", err)
	}

	// init catalog
	products := catalog.New()
	if err := catalog.Seed(products, cfg.Catalog.SeedFile); err != nil {
		_ = shutdownTracer(context.Background())
		_ = logCloser.Close()
		return nil, nil, fmt.Errorf("seed catalog: %w", err)
	}

	// init order event log
	var (
		events   orderlog.Repository
		closeLog = func() error { return nil }
	)
	if cfg.OrderLog.Enabled {
		repo, err := sqlite.Open(cfg.OrderLog.DSN)
		if err != nil {
			_ = shutdownTracer(context.Background())
			_ = logCloser.Close()
			return nil, nil, fmt.Errorf("open order log: %w", err)
		}
		events, closeLog = repo, repo.Close
	}

	m := metrics.New("shop")
	book := orderapp.NewBook(events, m, logger)
	checkout := orderapp.NewCheckout(
		products,
		book,
		orderapp.NewSequence(cfg.Orders.FirstID),
		domain.PolicyFor(cfg.Orders.StrictStatus),
		m,
		logger,
	)

	logger.Info("storefront: starting up",
		"products", products.Len(),
		"strict_status", cfg.Orders.StrictStatus,
		"orderlog", cfg.OrderLog.Enabled,
	)

	cleanup := func() {
		if cfg.Metrics.Textfile != "" {
			if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
				logger.Error("failed to write metrics textfile", "path", cfg.Metrics.Textfile, "error", err)
			}
		}
		if err := closeLog(); err != nil {
			logger.Error("failed to close order log", "error", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			logger.Error("tracer shutdown error", "error", err)
		}
		logger.Info("storefront: stopped")
		_ = logCloser.Close()
	}

	return &App{
		Shell: shell.Deps{
			Catalog:   products,
			Customers: customer.NewRegistry(products),
			Checkout:  checkout,
			Orders:    book,
			Logger:    logger,
		},
		Metrics: m,
		Logger:  logger,
	}, cleanup, nil
}
