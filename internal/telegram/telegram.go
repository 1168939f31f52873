// Package telegram is the boundary to the messaging transport. The bridge
// depends on the Transport interface; Bot adapts the Telegram Bot API
// client to it.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// VideoOptions carries the metadata attached to a video upload so the
// receiving client can render the correct aspect ratio and seek bar
// without probing the file itself.
type VideoOptions struct {
	Caption           string
	ThumbPath         string
	Width             int
	Height            int
	DurationSeconds   int
	SupportsStreaming bool
}

// Transport sends messages and media to a chat. Implementations must be
// safe for concurrent use; deliveries for distinct events overlap.
type Transport interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendVideo(ctx context.Context, chatID int64, path string, opts VideoOptions) error
}

// Message is one inbound chat message, as seen by the admin link watcher.
type Message struct {
	ChatID   int64
	SenderID int64
	Text     string
}

// Bot implements Transport over the Telegram Bot API.
type Bot struct {
	api *tgbotapi.BotAPI
}

func NewBot(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect bot api: %w", err)
	}
	return &Bot{api: api}, nil
}

// Username returns the bot's own username for startup logging.
func (b *Bot) Username() string { return b.api.Self.UserName }

func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send message to %d: %w", chatID, err)
	}
	return nil
}

// SendVideo uploads a video with its caption, thumbnail, duration and
// streaming flag. The Bot API wrapper's VideoConfig carries no width or
// height fields, so those options are not forwarded; the receiving client
// infers the aspect ratio from the file.
func (b *Bot) SendVideo(ctx context.Context, chatID int64, path string, opts VideoOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	video := tgbotapi.NewVideo(chatID, tgbotapi.FilePath(path))
	video.Caption = opts.Caption
	video.Duration = opts.DurationSeconds
	video.SupportsStreaming = opts.SupportsStreaming
	if opts.ThumbPath != "" {
		video.Thumb = tgbotapi.FilePath(opts.ThumbPath)
	}
	if _, err := b.api.Send(video); err != nil {
		return fmt.Errorf("send video to %d: %w", chatID, err)
	}
	return nil
}

// Updates returns the inbound message feed. The channel closes when Stop
// is called.
func (b *Bot) Updates() <-chan Message {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)
	out := make(chan Message)
	go func() {
		defer close(out)
		for update := range updates {
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			out <- Message{
				ChatID:   update.Message.Chat.ID,
				SenderID: update.Message.From.ID,
				Text:     update.Message.Text,
			}
		}
	}()
	return out
}

// Stop shuts down the update feed.
func (b *Bot) Stop() { b.api.StopReceivingUpdates() }
