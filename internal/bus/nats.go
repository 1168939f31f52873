// Package bus wraps the NATS connection used by the bridge.
package bus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
)

// handlerTimeout bounds a single event's processing, including uploads of
// multi-part videos.
const handlerTimeout = 2 * time.Hour

type Client struct{ nc *nats.Conn }

func Connect(url string) (*Client, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Client{nc: nc}, nil
}

// Close drains the connection: no new deliveries are accepted and in-flight
// handlers run to completion.
func (c *Client) Close() {
	if c.nc != nil {
		_ = c.nc.Drain()
	}
}

func (c *Client) PublishJSON(subject string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.nc.Publish(subject, b)
}

// Subscribe registers a handler for one subject. Handlers for distinct
// subjects run concurrently; within a subject NATS preserves delivery
// order.
func (c *Client) Subscribe(subject string, handler func(ctx context.Context, data []byte)) (*nats.Subscription, error) {
	return c.nc.Subscribe(subject, func(msg *nats.Msg) {
		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()
		handler(ctx, msg.Data)
	})
}
