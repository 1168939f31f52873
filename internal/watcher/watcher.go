// Package watcher turns video links sent by the admin into download
// requests on the bus.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/SunnyXdm/yagami/internal/telegram"
	"github.com/SunnyXdm/yagami/pkg/schema"
)

// linkPattern matches the three YouTube URL shapes (long form, short form,
// shorts) and captures the 11-character video id.
var linkPattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/shorts/)([A-Za-z0-9_-]{11})`)

// ExtractVideoID returns the video id of the first recognized link in
// text. Only the first match counts; extra links in the same message are
// ignored.
func ExtractVideoID(text string) (string, bool) {
	m := linkPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Publisher publishes JSON events on the bus. Satisfied by bus.Client.
type Publisher interface {
	PublishJSON(subject string, v any) error
}

// Watcher scans admin messages for video links and emits download.request
// events. The downloader answers on download.complete with the requester's
// chat id, so the finished upload comes back to the admin.
type Watcher struct {
	adminID   int64
	pub       Publisher
	transport telegram.Transport
	log       *slog.Logger
}

func New(adminID int64, pub Publisher, transport telegram.Transport, log *slog.Logger) *Watcher {
	return &Watcher{adminID: adminID, pub: pub, transport: transport, log: log}
}

// Run consumes the update feed until it closes or ctx is canceled.
func (w *Watcher) Run(ctx context.Context, messages <-chan telegram.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			if err := w.Handle(ctx, msg); err != nil {
				w.log.Error("link request failed", "chat_id", msg.ChatID, "err", err)
			}
		}
	}
}

// Handle processes one inbound message. Messages from anyone but the
// admin, or without a recognized link, have no effect.
func (w *Watcher) Handle(ctx context.Context, msg telegram.Message) error {
	if msg.SenderID != w.adminID {
		return nil
	}
	videoID, ok := ExtractVideoID(msg.Text)
	if !ok {
		return nil
	}

	req := schema.DownloadRequest{
		VideoID: videoID,
		// The downloader enriches title/metadata from the video itself.
		Title:           videoID,
		URL:             "https://youtube.com/watch?v=" + videoID,
		RequesterChatID: msg.ChatID,
	}
	if err := w.pub.PublishJSON(schema.SubjectDownloadRequest, req); err != nil {
		return fmt.Errorf("publish download request: %w", err)
	}
	w.log.Info("download requested", "video_id", videoID, "chat_id", msg.ChatID)

	return w.transport.SendMessage(ctx, msg.ChatID, fmt.Sprintf("⬇️ Download queued: `%s`", videoID))
}
