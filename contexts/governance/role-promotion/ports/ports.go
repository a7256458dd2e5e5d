package ports

import (
	"context"
	"time"

	"curia/contexts/governance/role-promotion/domain/entities"
	contractsv1 "curia/contracts/gen/events/v1"
)

type ApplicationRepository interface {
	SaveApplication(ctx context.Context, app entities.Application) error
	GetApplication(ctx context.Context, applicationID uint64) (entities.Application, error)
	AllocateApplicationID(ctx context.Context) (uint64, error)
}

// BallotOutcome mirrors the ballot box resolution without importing it.
type BallotOutcome string

const (
	BallotOutcomePassed BallotOutcome = "passed"
	BallotOutcomeFailed BallotOutcome = "failed"
)

// BallotService is the generic ballot box collaborator.
type BallotService interface {
	Open(ctx context.Context, ballotType string, id uint64) error
	Cast(ctx context.Context, ballotType string, id uint64, accountID string, approve bool) error
	Finalize(ctx context.Context, ballotType string, id uint64) (BallotOutcome, error)
}

// MemberView is the membership projection the promotion tracks need.
type MemberView struct {
	AccountID string
	Role      string
}

type MemberDirectory interface {
	GetMember(ctx context.Context, accountID string) (MemberView, error)
}

// Promoter overwrites a member's role after a council approval passes.
type Promoter interface {
	Promote(ctx context.Context, accountID string, role string) error
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
