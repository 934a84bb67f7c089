// Package messaging publishes domain events to whichever broker config
// selects. Callers see only Publisher; NewFromDriver picks NATS, Kafka or a
// noop sink.
package messaging

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/atomic"
)

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("messaging: publisher is closed")

// Publisher sends messages and releases its broker connection on Close.
type Publisher interface {
	io.Closer

	// Publish blocks until the broker accepted msg or ctx ends.
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// OutgoingMessage is the broker neutral message.
type OutgoingMessage struct {
	Body []byte
	// Key picks the Kafka partition so one user's events stay ordered.
	// NATS ignores it.
	Key []byte
	// Headers may repeat a key.
	Headers []Header
}

type Header struct {
	Key   string
	Value []byte
}

// PublishResult tells where and when a message was handed off.
type PublishResult struct {
	Topic     string
	Timestamp time.Time
}

// closeGuard makes Close idempotent and lets Publish refuse after it.
type closeGuard struct {
	closed atomic.Bool
}

// markClosed reports whether this call performed the close.
func (g *closeGuard) markClosed() bool { return g.closed.CompareAndSwap(false, true) }

func (g *closeGuard) isClosed() bool { return g.closed.Load() }

// check runs the validation shared by every broker.
func (g *closeGuard) check(ctx context.Context, destination string, errEmpty error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if destination == "" {
		return errEmpty
	}
	if g.isClosed() {
		return ErrClosed
	}
	return nil
}
