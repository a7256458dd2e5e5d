package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"curia/contexts/governance/voting-engine/domain/entities"
	domainerrors "curia/contexts/governance/voting-engine/domain/errors"
	"curia/contexts/governance/voting-engine/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type ballotModel struct {
	BallotType  string `gorm:"column:ballot_type;primaryKey"`
	BallotID    uint64 `gorm:"column:ballot_id;primaryKey"`
	YesVotes    uint64 `gorm:"column:yes_votes"`
	NoVotes     uint64 `gorm:"column:no_votes"`
	StartHeight uint64 `gorm:"column:start_height"`
	EndHeight   uint64 `gorm:"column:end_height"`
	Status      string `gorm:"column:status"`
}

func (ballotModel) TableName() string { return "voting_ballots" }

type castModel struct {
	AccountID  string `gorm:"column:account_id;primaryKey"`
	BallotType string `gorm:"column:ballot_type;primaryKey"`
	BallotID   uint64 `gorm:"column:ballot_id;primaryKey"`
}

func (castModel) TableName() string { return "voting_casts" }

type outboxModel struct {
	OutboxID     string     `gorm:"column:id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "voting_outbox" }

func (r *Repository) SaveBallot(ctx context.Context, ballot entities.Ballot) error {
	row := ballotModel{
		BallotType:  string(ballot.Key.Type),
		BallotID:    ballot.Key.ID,
		YesVotes:    ballot.YesVotes,
		NoVotes:     ballot.NoVotes,
		StartHeight: ballot.Start,
		EndHeight:   ballot.End,
		Status:      string(ballot.Status),
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ballot_type"}, {Name: "ballot_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"yes_votes":    row.YesVotes,
			"no_votes":     row.NoVotes,
			"start_height": row.StartHeight,
			"end_height":   row.EndHeight,
			"status":       row.Status,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("voting_repo_save_ballot_failed", create.Error,
			"ballot_type", row.BallotType,
			"ballot_id", row.BallotID,
		)
	}
	return nil
}

func (r *Repository) GetBallot(ctx context.Context, key entities.BallotKey) (entities.Ballot, error) {
	var row ballotModel
	err := r.db.WithContext(ctx).
		Where("ballot_type = ? AND ballot_id = ?", string(key.Type), key.ID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Ballot{}, domainerrors.ErrVoteNotFound
		}
		return entities.Ballot{}, r.logError("voting_repo_get_ballot_failed", err,
			"ballot_type", string(key.Type),
			"ballot_id", key.ID,
		)
	}
	return entities.Ballot{
		Key:      entities.BallotKey{Type: entities.BallotType(row.BallotType), ID: row.BallotID},
		YesVotes: row.YesVotes,
		NoVotes:  row.NoVotes,
		Start:    row.StartHeight,
		End:      row.EndHeight,
		Status:   entities.BallotStatus(row.Status),
	}, nil
}

func (r *Repository) HasCastRecord(ctx context.Context, accountID string, key entities.BallotKey) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&castModel{}).
		Where("account_id = ? AND ballot_type = ? AND ballot_id = ?",
			strings.TrimSpace(accountID), string(key.Type), key.ID).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("voting_repo_has_cast_failed", err,
			"account_id", strings.TrimSpace(accountID),
			"ballot_type", string(key.Type),
			"ballot_id", key.ID,
		)
	}
	return count > 0, nil
}

func (r *Repository) SaveCastRecord(ctx context.Context, accountID string, key entities.BallotKey) error {
	row := castModel{
		AccountID:  strings.TrimSpace(accountID),
		BallotType: string(key.Type),
		BallotID:   key.ID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyVoted
		}
		return r.logError("voting_repo_save_cast_failed", err,
			"account_id", row.AccountID,
			"ballot_type", row.BallotType,
			"ballot_id", row.BallotID,
		)
	}
	return nil
}

func (r *Repository) AppendOutbox(ctx context.Context, message ports.OutboxMessage) error {
	row := outboxModel{
		OutboxID:     message.OutboxID,
		EventType:    message.EventType,
		PartitionKey: message.PartitionKey,
		Payload:      message.Payload,
		Status:       "pending",
		CreatedAt:    message.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("voting_repo_append_outbox_failed", err,
			"outbox_id", message.OutboxID,
			"event_type", message.EventType,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", "pending").
		Order("created_at asc").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("voting_repo_list_outbox_failed", err)
	}
	messages := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt,
		})
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	err := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("id = ?", outboxID).
		Updates(map[string]any{
			"status":       "published",
			"published_at": publishedAt,
		}).
		Error
	if err != nil {
		return r.logError("voting_repo_mark_outbox_failed", err,
			"outbox_id", outboxID,
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "governance/voting-engine",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("voting repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
