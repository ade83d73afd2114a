package audit

import (
	"context"
	"log/slog"

	"workout/pkg/platform/circuit"
)

// FallbackPublisher sends every event to primary. While primary is failing,
// events also go to fallback so none are lost from the log.
type FallbackPublisher struct {
	primary  Publisher
	fallback Publisher
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

func NewFallbackPublisher(primary, fallback Publisher, breaker *circuit.Breaker, logger *slog.Logger) *FallbackPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	if breaker == nil {
		breaker = circuit.New("audit")
	}
	return &FallbackPublisher{primary: primary, fallback: fallback, breaker: breaker, logger: logger}
}

func (p *FallbackPublisher) Publish(ctx context.Context, event Event) error {
	err := p.primary.Publish(ctx, event)
	if err == nil {
		usePrimary, change := p.breaker.RecordSuccess()
		if change.Closed {
			p.logger.InfoContext(ctx, "audit publisher recovered", "breaker", p.breaker.Name())
		}
		if usePrimary {
			return nil
		}
		return p.fallback.Publish(ctx, event)
	}

	useFallback, change := p.breaker.RecordFailure()
	if change.Opened {
		p.logger.WarnContext(ctx, "audit publisher circuit opened", "breaker", p.breaker.Name(), "error", err)
	}
	if !useFallback {
		return err
	}
	return p.fallback.Publish(ctx, event)
}
