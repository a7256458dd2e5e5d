package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"

	"curia/contexts/governance/membership-service/domain/entities"
	domainerrors "curia/contexts/governance/membership-service/domain/errors"
	"curia/contexts/governance/membership-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const memberIDCounter = "member_id"

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

type memberModel struct {
	AccountID             string `gorm:"column:account_id;primaryKey"`
	MemberID              uint32 `gorm:"column:member_id"`
	Metadata              []byte `gorm:"column:metadata"`
	VoteCount             uint64 `gorm:"column:vote_count"`
	ApprovedContributions uint32 `gorm:"column:approved_contributions"`
	Role                  string `gorm:"column:role"`
	JoinedHeight          uint64 `gorm:"column:joined_height"`
}

func (memberModel) TableName() string { return "membership_members" }

type counterModel struct {
	Name  string `gorm:"column:name;primaryKey"`
	Value uint64 `gorm:"column:value"`
}

func (counterModel) TableName() string { return "membership_counters" }

type outboxModel struct {
	OutboxID     string     `gorm:"column:id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "membership_outbox" }

func (r *Repository) SaveMember(ctx context.Context, member entities.Member) error {
	row := memberModel{
		AccountID:             strings.TrimSpace(member.AccountID),
		MemberID:              member.MemberID,
		Metadata:              member.Metadata,
		VoteCount:             member.VoteCount,
		ApprovedContributions: member.ApprovedContributions,
		Role:                  string(member.Role),
		JoinedHeight:          member.Joined,
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"metadata":               row.Metadata,
			"vote_count":             row.VoteCount,
			"approved_contributions": row.ApprovedContributions,
			"role":                   row.Role,
		}),
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrAlreadyMember
		}
		return r.logError("membership_repo_save_member_failed", create.Error,
			"account_id", row.AccountID,
		)
	}
	return nil
}

func (r *Repository) GetMember(ctx context.Context, accountID string) (entities.Member, error) {
	var row memberModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", strings.TrimSpace(accountID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Member{}, domainerrors.ErrNotAMember
		}
		return entities.Member{}, r.logError("membership_repo_get_member_failed", err,
			"account_id", strings.TrimSpace(accountID),
		)
	}
	return entities.Member{
		MemberID:              row.MemberID,
		AccountID:             row.AccountID,
		Metadata:              row.Metadata,
		VoteCount:             row.VoteCount,
		ApprovedContributions: row.ApprovedContributions,
		Role:                  entities.Role(row.Role),
		Joined:                row.JoinedHeight,
	}, nil
}

func (r *Repository) HasMember(ctx context.Context, accountID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&memberModel{}).
		Where("account_id = ?", strings.TrimSpace(accountID)).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("membership_repo_has_member_failed", err,
			"account_id", strings.TrimSpace(accountID),
		)
	}
	return count > 0, nil
}

func (r *Repository) AllocateMemberID(ctx context.Context) (uint32, error) {
	var allocated uint64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row counterModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", memberIDCounter).
			First(&row).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = counterModel{Name: memberIDCounter}
		} else if err != nil {
			return err
		}
		if row.Value >= math.MaxUint32 {
			return domainerrors.ErrOverflow
		}
		row.Value++
		allocated = row.Value
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]any{"value": row.Value}),
		}).Create(&row).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrOverflow) {
			return 0, err
		}
		return 0, r.logError("membership_repo_allocate_id_failed", err)
	}
	return uint32(allocated), nil
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
		return r.logError("membership_repo_append_outbox_failed", err,
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
		return nil, r.logError("membership_repo_list_outbox_failed", err)
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
		return r.logError("membership_repo_mark_outbox_failed", err,
			"outbox_id", outboxID,
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "governance/membership-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("membership repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
