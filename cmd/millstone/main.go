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

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/millstone-erp/millstone-erp/internal/accounting/cart"
	"github.com/millstone-erp/millstone-erp/internal/accounting/fiscal"
	"github.com/millstone-erp/millstone-erp/internal/accounting/ledgers"
	"github.com/millstone-erp/millstone-erp/internal/accounting/posting"
	"github.com/millstone-erp/millstone-erp/internal/accounting/reconcile"
	"github.com/millstone-erp/millstone-erp/internal/accounting/reports"
	"github.com/millstone-erp/millstone-erp/internal/accounting/settings"
	"github.com/millstone-erp/millstone-erp/internal/accounting/vouchers"
	"github.com/millstone-erp/millstone-erp/internal/app"
	"github.com/millstone-erp/millstone-erp/internal/auth"
	"github.com/millstone-erp/millstone-erp/internal/documents"
	"github.com/millstone-erp/millstone-erp/internal/platform/cache"
	"github.com/millstone-erp/millstone-erp/internal/platform/db"
	"github.com/millstone-erp/millstone-erp/internal/shared"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	_ = godotenv.Load()

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

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	settingsStore := settings.NewStore(pool)
	bindings, err := vouchers.LoadBindings(ctx, settingsStore)
	if err != nil {
		logger.Error("load voucher bindings", slog.Any("error", err))
		os.Exit(1)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Warn("asynq close", slog.Any("error", err))
		}
	}()

	sessionManager := auth.NewSessionManager(redisClient, "millstone_session", cfg.SessionTTL)
	authService := auth.NewService(auth.NewRepository(pool))
	authHandler := auth.NewHandler(logger, authService, sessionManager, cfg.SessionTTL, cfg.IsProduction())

	auditLogger := shared.NewAuditLogger(pool)

	ledgerService := ledgers.NewService(ledgers.NewRepository(pool))
	voucherService := vouchers.NewService(vouchers.NewRepository(pool), bindings)
	yearResolver := fiscal.NewResolver(fiscal.NewRepository(pool))
	draftRepo := cart.NewRedisRepository(redisClient, cfg.DraftTTL)
	reconcileService := reconcile.NewService(reconcile.NewRepository(pool), yearResolver)
	reportsService := reports.NewService(reports.NewRepository(pool))
	postingService := posting.NewService(
		posting.NewRepository(pool),
		yearResolver,
		bindings,
		auditLogger,
		documents.NewEnqueuer(asynqClient),
		logger,
	)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		AuthHandler:      authHandler,
		LedgerHandler:    ledgers.NewHandler(logger, ledgerService),
		VoucherHandler:   vouchers.NewHandler(logger, voucherService),
		FiscalHandler:    fiscal.NewHandler(logger, yearResolver),
		CartHandler:      cart.NewHandler(logger, draftRepo, yearResolver),
		PostingHandler:   posting.NewHandler(logger, postingService, draftRepo),
		ReconcileHandler: reconcile.NewHandler(logger, reconcileService),
		ReportsHandler:   reports.NewHandler(logger, reportsService),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
