package audit

import (
	"context"
	"log/slog"
	"sync"
)

// Publisher delivers audit events to a sink.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher writes events to the structured log. It is the sink when no
// Kafka brokers are configured and the fallback when Kafka is failing.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.logger.InfoContext(ctx, "audit event",
		"event_id", event.ID.String(),
		"action", string(event.Action),
		"entity", string(event.Entity),
		"entity_id", event.EntityID,
		"request_id", event.RequestID,
		"timestamp", event.Timestamp,
	)
	return nil
}

// Recorder keeps published events in memory for tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// FailWith makes subsequent Publish calls return err without recording.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Actions lists recorded actions in publish order.
func (r *Recorder) Actions() []Action {
	events := r.Events()
	out := make([]Action, 0, len(events))
	for _, e := range events {
		out = append(out, e.Action)
	}
	return out
}
