package ports

import (
	"context"
	"time"

	"curia/contexts/governance/membership-service/domain/entities"
	contractsv1 "curia/contracts/gen/events/v1"
)

type MemberRepository interface {
	SaveMember(ctx context.Context, member entities.Member) error
	GetMember(ctx context.Context, accountID string) (entities.Member, error)
	HasMember(ctx context.Context, accountID string) (bool, error)
	// AllocateMemberID hands out the next sequential member id, failing on
	// counter exhaustion rather than wrapping.
	AllocateMemberID(ctx context.Context) (uint32, error)
}

// OutboxMessage is a row ready to relay from the module outbox.
type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, message OutboxMessage) error
}

// OutboxRepository models worker-side outbox polling/acknowledgement.
type OutboxRepository interface {
	OutboxWriter
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// EventEnvelope reuses the canonical cross-runtime envelope contract.
type EventEnvelope = contractsv1.Envelope

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// Clock reports the current chain height. Heights are strictly increasing
// and injected so tests stay deterministic.
type Clock interface {
	Now() uint64
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
