// Package notify delivers fire-and-forget notifications on a background worker.
// Delivery is best effort: a full queue drops the message and a failed send is
// only logged.
package notify

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
)

const DefaultQueueSize = 64

type Message struct {
	Title       string
	Description string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender "mails" by writing the message to the log.
type LogSender struct {
	Logger *zap.Logger
}

func (s LogSender) Send(_ context.Context, msg Message) error {
	s.Logger.Info("A new entity created with this information",
		zap.String("title", msg.Title),
		zap.String("description", msg.Description),
	)
	return nil
}

type Dispatcher struct {
	queue   chan Message
	sender  Sender
	log     *zap.Logger
	dropped atomic.Int64
	sent    atomic.Int64
}

func NewDispatcher(sender Sender, log *zap.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		queue:  make(chan Message, size),
		sender: sender,
		log:    log,
	}
}

// Enqueue never blocks. It returns false when the message was dropped.
func (d *Dispatcher) Enqueue(msg Message) bool {
	select {
	case d.queue <- msg:
		return true
	default:
		d.dropped.Add(1)
		d.log.Warn("notification dropped: queue full", zap.String("title", msg.Title))
		return false
	}
}

// Run sends queued messages until ctx is cancelled. Messages still queued at
// that point are discarded.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-d.queue:
			if err := d.sender.Send(ctx, msg); err != nil {
				d.log.Error("notification send failed", zap.String("title", msg.Title), zap.Error(err))
				continue
			}
			d.sent.Add(1)
		}
	}
}

func (d *Dispatcher) Dropped() int64 { return d.dropped.Load() }
func (d *Dispatcher) Sent() int64    { return d.sent.Load() }
