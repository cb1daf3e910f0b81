package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event represents a domain event
type Event struct {
	ID            string          `json:"id"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	EventType     string          `json:"event_type"`
	Data          json.RawMessage `json:"data"`
	Timestamp     time.Time       `json:"timestamp"`
	Version       int             `json:"version"`
}

// NewEvent builds an unversioned event envelope, used for events that are
// published without being stored (e.g. OrderSubmitted).
func NewEvent(aggregateID, aggregateType, eventType string, data any) (Event, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:            uuid.New().String(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          jsonData,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// MemoryEventStore keeps events in process memory. Carts do not survive a
// restart with this backend.
type MemoryEventStore struct {
	mu        sync.RWMutex
	streams   map[string][]Event // aggregateID -> events
	snapshots map[string]Snapshot
	events    eventPublisher
}

// NewMemoryEventStore creates an in-memory store. publisher may be nil.
func NewMemoryEventStore(publisher Publisher, opts ...Option) *MemoryEventStore {
	return &MemoryEventStore{
		streams:   make(map[string][]Event),
		snapshots: make(map[string]Snapshot),
		events:    newEventPublisher(publisher, opts),
	}
}

// Append stores an event and publishes it when a publisher is configured.
// A failed publish does not fail the append.
func (es *MemoryEventStore) Append(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (*Event, error) {
	event, err := NewEvent(aggregateID, aggregateType, eventType, data)
	if err != nil {
		return nil, err
	}

	es.mu.Lock()
	event.Version = len(es.streams[aggregateID]) + 1
	es.streams[aggregateID] = append(es.streams[aggregateID], event)
	es.mu.Unlock()

	es.events.publish(ctx, event)

	return &event, nil
}

// GetEvents returns all events for an aggregate
func (es *MemoryEventStore) GetEvents(_ context.Context, aggregateID string) ([]Event, error) {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return append([]Event(nil), es.streams[aggregateID]...), nil
}

// GetEventsFromVersion returns the events with a version greater than fromVersion.
func (es *MemoryEventStore) GetEventsFromVersion(_ context.Context, aggregateID string, fromVersion int) ([]Event, error) {
	es.mu.RLock()
	defer es.mu.RUnlock()

	var out []Event
	for _, e := range es.streams[aggregateID] {
		if e.Version > fromVersion {
			out = append(out, e)
		}
	}
	return out, nil
}

func (es *MemoryEventStore) SaveSnapshot(_ context.Context, snapshot *Snapshot) error {
	es.mu.Lock()
	defer es.mu.Unlock()
	es.snapshots[snapshot.AggregateID] = *snapshot
	return nil
}

// GetSnapshot returns nil, nil when the aggregate has no snapshot.
func (es *MemoryEventStore) GetSnapshot(_ context.Context, aggregateID string) (*Snapshot, error) {
	es.mu.RLock()
	defer es.mu.RUnlock()
	s, ok := es.snapshots[aggregateID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

var (
	_ EventStoreInterface = (*MemoryEventStore)(nil)
	_ EventStoreInterface = (*PostgresEventStore)(nil)
	_ EventStoreInterface = (*DynamoEventStore)(nil)
)
