package events

import (
	"context"
	"log/slog"

	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/ports"
)

var _ ports.EventPublisher = (*LogPublisher)(nil)

// LogPublisher records events in the application log when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...domain.Event) error {
	for _, event := range events {
		p.logger.InfoContext(ctx, "order event",
			slog.String("event", event.EventName()),
			slog.String("orderId", event.AggregateID()),
			slog.Time("occurredAt", event.OccurredAt()),
		)
	}
	return nil
}
