package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/millstone-erp/millstone-erp/internal/accounting/fiscal"
	"github.com/millstone-erp/millstone-erp/internal/accounting/posting"
	"github.com/millstone-erp/millstone-erp/internal/accounting/settings"
	"github.com/millstone-erp/millstone-erp/internal/accounting/vouchers"
	"github.com/millstone-erp/millstone-erp/internal/app"
	"github.com/millstone-erp/millstone-erp/internal/documents"
	"github.com/millstone-erp/millstone-erp/internal/platform/db"
	"github.com/millstone-erp/millstone-erp/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	settingsStore := settings.NewStore(pool)
	bindings, err := vouchers.LoadBindings(ctx, settingsStore)
	if err != nil {
		logger.Error("load voucher bindings", slog.Any("error", err))
		os.Exit(1)
	}

	yearResolver := fiscal.NewResolver(fiscal.NewRepository(pool))
	postingService := posting.NewService(posting.NewRepository(pool), yearResolver, bindings, nil, nil, logger)
	printHandler := jobs.NewVoucherPrintHandler(postingService, documents.NewRenderer(), logger)

	worker := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: documents.TaskTypeVoucherPrint, Handler: printHandler.Handle},
		},
	})

	go func() {
		<-ctx.Done()
		worker.Shutdown()
	}()

	logger.Info("worker started")
	if err := worker.Run(); err != nil {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
