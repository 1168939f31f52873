// cmd/smoketest publishes one event to the bus so the bridge can be
// exercised end to end without the poller or downloader running.
//
//	go run ./cmd/smoketest -subject youtube.watch \
//	  -payload '{"title":"Test","video_id":"dQw4w9WgXcQ"}'
package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/SunnyXdm/yagami/internal/bus"
	"github.com/SunnyXdm/yagami/pkg/schema"
)

func main() {
	_ = godotenv.Load()

	subject := flag.String("subject", schema.SubjectHealth, "bus subject to publish on")
	payload := flag.String("payload", `{"message":"✅ Smoke test ping"}`, "JSON payload")
	natsURL := flag.String("nats", envOr("NATS_URL", "nats://localhost:4222"), "NATS server URL")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var body map[string]any
	if err := json.Unmarshal([]byte(*payload), &body); err != nil {
		logger.Error("invalid payload", "err", err)
		os.Exit(1)
	}

	nc, err := bus.Connect(*natsURL)
	if err != nil {
		logger.Error("connect to NATS", "nats_url", *natsURL, "err", err)
		os.Exit(1)
	}
	defer nc.Close()

	if err := nc.PublishJSON(*subject, body); err != nil {
		logger.Error("publish failed", "subject", *subject, "err", err)
		os.Exit(1)
	}
	logger.Info("published", "subject", *subject, "payload", *payload)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
