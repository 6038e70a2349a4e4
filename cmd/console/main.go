package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hrms-lite-console/internal/config"
	"github.com/hrms-lite-console/internal/console"
	"github.com/hrms-lite-console/internal/notify"
	"github.com/hrms-lite-console/internal/remote"
	"github.com/hrms-lite-console/internal/store"
)

func main() {
	// Загрузка конфигурации
	cfg := config.Load()

	// Логгер пишет в stderr, чтобы не смешиваться с выводом консоли
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Console.LogLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := remote.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
	records := store.New(client)

	shell := newShell(os.Stdin, os.Stdout)
	notifications := notify.New(cfg.Console.NotifyDelay, notify.WithOnChange(shell.notification))
	defer notifications.Stop()

	ctrl := console.New(client, records, notifications, logger)
	shell.ctrl = ctrl

	logger.Info("console is starting", slog.String("api", cfg.API.BaseURL))
	if err := shell.run(ctx); err != nil {
		logger.Error("console stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}
