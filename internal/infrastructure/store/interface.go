package store

import (
	"context"

	"go.uber.org/zap"
)

// EventStoreInterface is the persistence contract for event-sourced aggregates.
type EventStoreInterface interface {
	Append(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (*Event, error)
	GetEvents(ctx context.Context, aggregateID string) ([]Event, error)
	GetEventsFromVersion(ctx context.Context, aggregateID string, fromVersion int) ([]Event, error)
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error
	GetSnapshot(ctx context.Context, aggregateID string) (*Snapshot, error)
}

// Publisher forwards stored events to a broker. kafka.Producer satisfies it.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Option configures an event store.
type Option func(*eventPublisher)

// WithLogger sets the logger that records failed publishes.
func WithLogger(logger *zap.Logger) Option {
	return func(p *eventPublisher) { p.logger = logger }
}

// eventPublisher forwards events that are already stored. The append has
// committed by then, so a broker failure is logged and not returned.
type eventPublisher struct {
	publisher Publisher
	logger    *zap.Logger
}

func newEventPublisher(publisher Publisher, opts []Option) eventPublisher {
	p := eventPublisher{publisher: publisher, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func (p eventPublisher) publish(ctx context.Context, event Event) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, event.AggregateID, event); err != nil {
		p.logger.Warn("failed to publish event",
			zap.String("aggregate_id", event.AggregateID),
			zap.String("event_type", event.EventType),
			zap.Int("version", event.Version),
			zap.Error(err),
		)
	}
}
