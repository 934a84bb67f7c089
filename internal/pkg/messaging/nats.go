package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

var (
	ErrNATSSubjectRequired = errors.New("messaging: nats subject is required")
	ErrNATSURLRequired     = errors.New("messaging: nats url is required")
)

// NATSConfig configures NewNATS.
type NATSConfig struct {
	URL     string
	Options []nats.Option
}

// NATS publishes on core NATS subjects named after the destination.
type NATS struct {
	closeGuard
	conn *nats.Conn
}

// NewNATS dials immediately.
func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	conn, err := nats.Connect(cfg.URL, cfg.Options...)
	if err != nil {
		return nil, fmt.Errorf("messaging: nats connect: %w", err)
	}
	return &NATS{conn: conn}, nil
}

// Publish returns once the server has the message, which the flush
// round trip confirms.
func (n *NATS) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := n.check(ctx, destination, ErrNATSSubjectRequired); err != nil {
		return PublishResult{}, err
	}

	nm := nats.NewMsg(destination)
	nm.Data = msg.Body
	for _, h := range msg.Headers {
		if h.Key != "" {
			nm.Header.Add(h.Key, string(h.Value))
		}
	}

	if err := n.conn.PublishMsg(nm); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: nats publish to %s: %w", destination, err)
	}
	if err := n.conn.FlushWithContext(ctx); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: nats flush: %w", err)
	}
	return PublishResult{Topic: destination, Timestamp: time.Now()}, nil
}

// Close drains in-flight messages before closing the connection.
func (n *NATS) Close() error {
	if !n.markClosed() {
		return nil
	}
	err := n.conn.Drain()
	n.conn.Close()
	return err
}
