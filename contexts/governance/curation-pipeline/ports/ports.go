package ports

import (
	"context"
	"time"

	"curia/contexts/governance/curation-pipeline/domain/entities"
	contractsv1 "curia/contracts/gen/events/v1"
)

type UploadRepository interface {
	SaveUpload(ctx context.Context, upload entities.Upload) error
	GetUpload(ctx context.Context, uploadID uint64) (entities.Upload, error)
	AllocateUploadID(ctx context.Context) (uint64, error)

	SaveReview(ctx context.Context, review entities.ExpertReview) error
	GetReview(ctx context.Context, uploadID uint64) (entities.ExpertReview, error)

	// AllocateTokenID hands out the next reward token id.
	AllocateTokenID(ctx context.Context) (uint64, error)
	AppendApprovedToken(ctx context.Context, tokenID uint64) error
	ListApprovedTokens(ctx context.Context) ([]uint64, error)
}

// BallotOutcome mirrors the ballot box resolution without importing it.
type BallotOutcome string

const (
	BallotOutcomePassed BallotOutcome = "passed"
	BallotOutcomeFailed BallotOutcome = "failed"
)

// BallotService is the generic ballot box collaborator. Ballot types travel
// as strings; the pipeline owns the vocabulary it is allowed to use.
type BallotService interface {
	Open(ctx context.Context, ballotType string, id uint64) error
	Cast(ctx context.Context, ballotType string, id uint64, accountID string, approve bool) error
	Finalize(ctx context.Context, ballotType string, id uint64) (BallotOutcome, error)
}

// MemberView is the membership projection the pipeline needs for gating.
type MemberView struct {
	AccountID string
	Role      string
}

type MemberDirectory interface {
	GetMember(ctx context.Context, accountID string) (MemberView, error)
}

// TokenMinter is the ledger-side collaborator used once, on successful
// review finalization.
type TokenMinter interface {
	MintBatch(ctx context.Context, minterID string, recipients []string, tokenID uint64, amounts []uint64, uri []byte) error
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
