package audit

import (
	"context"
	"log/slog"
	"time"
)

const (
	defaultQueueSize = 1024
	drainTimeout     = 5 * time.Second
)

// Queue decouples request handling from the sink. Publish never blocks: when
// the buffer is full the event is logged and dropped.
type Queue struct {
	sink   Publisher
	inbox  chan Event
	logger *slog.Logger
}

func NewQueue(sink Publisher, size int, logger *slog.Logger) *Queue {
	if size <= 0 {
		size = defaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{sink: sink, inbox: make(chan Event, size), logger: logger}
}

func (q *Queue) Publish(ctx context.Context, event Event) error {
	select {
	case q.inbox <- event:
	default:
		q.logger.WarnContext(ctx, "audit queue full, dropping event",
			"action", string(event.Action),
			"entity_id", event.EntityID,
		)
	}
	return nil
}

// Run delivers queued events until ctx is done, then drains what is left.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			q.drain()
			return nil
		case event := <-q.inbox:
			q.deliver(ctx, event)
		}
	}
}

func (q *Queue) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		select {
		case event := <-q.inbox:
			q.deliver(ctx, event)
		default:
			return
		}
	}
}

func (q *Queue) deliver(ctx context.Context, event Event) {
	if err := q.sink.Publish(ctx, event); err != nil {
		q.logger.ErrorContext(ctx, "failed to deliver audit event",
			"event_id", event.ID.String(),
			"action", string(event.Action),
			"request_id", event.RequestID,
			"error", err,
		)
	}
}
