// cmd/telegram-client/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/SunnyXdm/yagami/internal/bus"
	"github.com/SunnyXdm/yagami/internal/config"
	"github.com/SunnyXdm/yagami/internal/media"
	"github.com/SunnyXdm/yagami/internal/router"
	"github.com/SunnyXdm/yagami/internal/telegram"
	"github.com/SunnyXdm/yagami/internal/watcher"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		fatal(logger, "load config", err)
	}

	bot, err := telegram.NewBot(cfg.BotToken)
	if err != nil {
		fatal(logger, "connect to Telegram", err)
	}
	logger.Info("Telegram connected", "username", bot.Username())

	nc, err := bus.Connect(cfg.NATSURL)
	if err != nil {
		fatal(logger, "connect to NATS", err, "nats_url", cfg.NATSURL)
	}
	logger.Info("connected to NATS", "nats_url", cfg.NATSURL)
	defer nc.Close()

	probe := media.FFProbe{}
	deliverer := media.NewDeliverer(
		bot,
		probe,
		media.NewNormalizer(probe),
		media.NewFFmpegSegmenter(probe),
		logger,
	)

	r := router.New(bot, deliverer, cfg, logger)
	if err := r.Subscribe(nc); err != nil {
		fatal(logger, "subscribe routes", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.AdminUserID != 0 {
		w := watcher.New(cfg.AdminUserID, nc, bot, logger)
		go w.Run(ctx, bot.Updates())
		logger.Info("admin link watcher running", "admin_user_id", cfg.AdminUserID)
	}

	logger.Info("telegram client ready, waiting for events")
	<-ctx.Done()

	// Drain the bus so in-flight deliveries finish their cleanup.
	bot.Stop()
	nc.Close()
	logger.Info("shutdown complete")
}

func fatal(logger *slog.Logger, msg string, err error, attrs ...any) {
	attrs = append(attrs, "err", err)
	logger.Error(msg, attrs...)
	os.Exit(1)
}
