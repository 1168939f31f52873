// Package router maps bus subjects to Telegram chats and dispatches
// inbound events.
package router

import (
	"context"
	"log/slog"

	"github.com/SunnyXdm/yagami/internal/bus"
	"github.com/SunnyXdm/yagami/internal/config"
	"github.com/SunnyXdm/yagami/internal/format"
	"github.com/SunnyXdm/yagami/internal/telegram"
	"github.com/SunnyXdm/yagami/pkg/schema"
)

// Deliverer handles completed-download events. Satisfied by
// media.Deliverer.
type Deliverer interface {
	Deliver(ctx context.Context, p schema.Payload, defaultChatID int64) error
}

type route struct {
	subject string
	chatID  int64
	handler func(ctx context.Context, data []byte)
}

// Router holds the static subject-to-chat table built at startup. Each
// route's handler is constructed once, closing over its own subject and
// chat id, so registration order has no effect and no loop state is
// shared.
type Router struct {
	transport telegram.Transport
	deliverer Deliverer
	log       *slog.Logger
	routes    []route
}

// New builds the route table from the configured chat ids. The health
// route is omitted when no admin user is configured.
func New(transport telegram.Transport, deliverer Deliverer, cfg config.Config, log *slog.Logger) *Router {
	r := &Router{transport: transport, deliverer: deliverer, log: log}

	r.register(schema.SubjectWatch, cfg.ChatIDWatchHistory)
	r.register(schema.SubjectLikes, cfg.ChatIDLikes)
	r.register(schema.SubjectSubscriptions, cfg.ChatIDSubscriptions)
	r.register(schema.SubjectDownloadComplete, cfg.ChatIDLikes)
	if cfg.AdminUserID != 0 {
		r.register(schema.SubjectHealth, cfg.AdminUserID)
	}
	return r
}

func (r *Router) register(subject string, chatID int64) {
	r.routes = append(r.routes, route{
		subject: subject,
		chatID:  chatID,
		handler: r.makeHandler(subject, chatID),
	})
}

// makeHandler binds one (subject, chatID) pair into a handler. Events are
// at-least-once: handlers only send messages, so a redelivered event at
// worst repeats a notification.
func (r *Router) makeHandler(subject string, chatID int64) func(ctx context.Context, data []byte) {
	return func(ctx context.Context, data []byte) {
		p, err := schema.ParsePayload(data)
		if err != nil {
			r.log.Error("malformed payload", "subject", subject, "err", err)
			return
		}
		if err := r.handle(ctx, subject, chatID, p); err != nil {
			r.log.Error("event handling failed", "subject", subject, "err", err)
		}
	}
}

func (r *Router) handle(ctx context.Context, subject string, chatID int64, p schema.Payload) error {
	switch subject {
	case schema.SubjectWatch:
		if err := r.transport.SendMessage(ctx, chatID, format.Watch(p)); err != nil {
			return err
		}
		r.log.Info("sent watch notification", "title", p.Title())

	case schema.SubjectLikes:
		if err := r.transport.SendMessage(ctx, chatID, format.Like(p)); err != nil {
			return err
		}
		r.log.Info("sent like notification", "title", p.Title())

	case schema.SubjectSubscriptions:
		if err := r.transport.SendMessage(ctx, chatID, format.Subscription(p)); err != nil {
			return err
		}
		r.log.Info("sent subscription notification", "channel", p.Channel())

	case schema.SubjectDownloadComplete:
		return r.deliverer.Deliver(ctx, p, chatID)

	case schema.SubjectHealth:
		text := p.String("message")
		if text == "" {
			text = "Health check received"
		}
		if err := r.transport.SendMessage(ctx, chatID, text); err != nil {
			return err
		}
		r.log.Info("sent health message", "chat_id", chatID)
	}
	return nil
}

// Dispatch routes one raw event. Unrecognized subjects are ignored so the
// bus schema can evolve without breaking the bridge.
func (r *Router) Dispatch(ctx context.Context, subject string, data []byte) {
	for _, rt := range r.routes {
		if rt.subject == subject {
			rt.handler(ctx, data)
			return
		}
	}
}

// Subscribe wires every route onto the bus.
func (r *Router) Subscribe(b *bus.Client) error {
	for _, rt := range r.routes {
		if _, err := b.Subscribe(rt.subject, rt.handler); err != nil {
			return err
		}
		r.log.Info("subscribed", "subject", rt.subject, "chat_id", rt.chatID)
	}
	return nil
}
