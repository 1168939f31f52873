package config

import (
	"os"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID_LIKES", "-100111")
	t.Setenv("TELEGRAM_CHAT_ID_WATCH_HISTORY", "-100333")
	t.Setenv("TELEGRAM_CHAT_ID_SUBSCRIPTIONS", "-100222")
}

func TestLoad(t *testing.T) {
	setRequired(t)
	t.Setenv("TELEGRAM_ADMIN_USER_ID", "999")
	t.Setenv("NATS_URL", "nats://example:4222")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ChatIDLikes != -100111 || cfg.ChatIDWatchHistory != -100333 || cfg.ChatIDSubscriptions != -100222 {
		t.Errorf("chat ids: %+v", cfg)
	}
	if cfg.AdminUserID != 999 {
		t.Errorf("admin id: %d", cfg.AdminUserID)
	}
	if cfg.NATSURL != "nats://example:4222" {
		t.Errorf("nats url: %q", cfg.NATSURL)
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AdminUserID != 0 {
		t.Errorf("admin default: %d", cfg.AdminUserID)
	}
	if cfg.NATSURL != "nats://localhost:4222" {
		t.Errorf("nats default: %q", cfg.NATSURL)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	for _, key := range []string{"TELEGRAM_CHAT_ID_LIKES", "TELEGRAM_CHAT_ID_WATCH_HISTORY", "TELEGRAM_CHAT_ID_SUBSCRIPTIONS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing chat ids")
	}
}
