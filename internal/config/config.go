// Package config reads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the bridge needs at startup. Negative chat ids
// are Telegram groups/channels; non-negative ids are direct chats.
type Config struct {
	BotToken string `env:"TELEGRAM_BOT_TOKEN,required"`

	// One destination chat per event category.
	ChatIDLikes         int64 `env:"TELEGRAM_CHAT_ID_LIKES,required"`
	ChatIDWatchHistory  int64 `env:"TELEGRAM_CHAT_ID_WATCH_HISTORY,required"`
	ChatIDSubscriptions int64 `env:"TELEGRAM_CHAT_ID_SUBSCRIPTIONS,required"`

	// AdminUserID receives health pings and may trigger downloads by
	// sending video links. Zero disables both.
	AdminUserID int64 `env:"TELEGRAM_ADMIN_USER_ID" envDefault:"0"`

	NATSURL string `env:"NATS_URL" envDefault:"nats://localhost:4222"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
