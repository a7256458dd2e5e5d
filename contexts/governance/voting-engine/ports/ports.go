package ports

import (
	"context"
	"time"

	"curia/contexts/governance/voting-engine/domain/entities"
	contractsv1 "curia/contracts/gen/events/v1"
)

type BallotRepository interface {
	SaveBallot(ctx context.Context, ballot entities.Ballot) error
	GetBallot(ctx context.Context, key entities.BallotKey) (entities.Ballot, error)
	// Cast-guard records are keyed by (account, ballot key); they exist to
	// reject a second ballot from the same account.
	HasCastRecord(ctx context.Context, accountID string, key entities.BallotKey) (bool, error)
	SaveCastRecord(ctx context.Context, accountID string, key entities.BallotKey) error
}

// VoterRegistry is the membership-side collaborator that tracks per-account
// cast counters (and its threshold promotion).
type VoterRegistry interface {
	RecordVoteCast(ctx context.Context, accountID string) error
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

// Clock reports the current chain height.
type Clock interface {
	Now() uint64
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
