package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bluething/boostpo/internal/app"
	"github.com/bluething/boostpo/internal/items"
	"github.com/bluething/boostpo/internal/observability"
	"github.com/bluething/boostpo/internal/platform/db"
	"github.com/bluething/boostpo/internal/purchaseorders"
	"github.com/bluething/boostpo/internal/shared"
	"github.com/bluething/boostpo/internal/timezone"
	"github.com/bluething/boostpo/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	tz, err := timezone.Load(cfg.AppTimezone)
	if err != nil {
		logger.Error("load timezone", slog.Any("error", err))
		os.Exit(1)
	}

	auditLogger := shared.NewAuditLogger(pool)

	itemRepo := items.NewRepository(pool)
	itemService := items.NewService(itemRepo, auditLogger, logger)
	itemHandler := items.NewHandler(logger, itemService, tz)

	userRepo := users.NewRepository(pool)
	userService := users.NewService(userRepo, auditLogger, logger)
	userHandler := users.NewHandler(logger, userService, tz)

	orderRepo := purchaseorders.NewRepository(pool)
	orderService := purchaseorders.NewService(orderRepo, itemService, auditLogger, logger)
	orderHandler := purchaseorders.NewHandler(logger, orderService, tz)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:                logger,
		Config:                cfg,
		ItemsHandler:          itemHandler,
		UsersHandler:          userHandler,
		PurchaseOrdersHandler: orderHandler,
		Pool:                  pool,
		Metrics:               metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server",
			slog.String("addr", cfg.AppAddr), slog.String("timezone", tz.Zone()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exit", slog.Any("error", err))
		os.Exit(1)
	}
}
