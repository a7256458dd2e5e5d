package ports

import (
	"context"
	"time"

	"curia/contexts/assets/token-ledger/domain/entities"
	contractsv1 "curia/contracts/gen/events/v1"
)

type LedgerRepository interface {
	SaveToken(ctx context.Context, token entities.Token) error
	GetToken(ctx context.Context, tokenID uint64) (entities.Token, error)
	TokenExists(ctx context.Context, tokenID uint64) (bool, error)
	// BumpTokensCount advances the global minted-token counter and returns
	// the new value.
	BumpTokensCount(ctx context.Context) (uint64, error)

	GetBalance(ctx context.Context, tokenID uint64, accountID string) (uint64, error)
	SaveBalance(ctx context.Context, tokenID uint64, accountID string, amount uint64) error

	IsOperator(ctx context.Context, ownerID string, operatorID string) (bool, error)
	SaveOperatorApproval(ctx context.Context, ownerID string, operatorID string, approved bool) error
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

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
