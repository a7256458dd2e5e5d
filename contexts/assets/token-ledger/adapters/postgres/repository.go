package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"

	"curia/contexts/assets/token-ledger/domain/entities"
	domainerrors "curia/contexts/assets/token-ledger/domain/errors"
	"curia/contexts/assets/token-ledger/ports"

	"github.com/google/uuid"
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

type tokenModel struct {
	TokenID     uint64 `gorm:"column:token_id;primaryKey"`
	URI         []byte `gorm:"column:uri"`
	TotalSupply uint64 `gorm:"column:total_supply"`
}

func (tokenModel) TableName() string { return "ledger_tokens" }

type balanceModel struct {
	TokenID   uint64 `gorm:"column:token_id;primaryKey"`
	AccountID string `gorm:"column:account_id;primaryKey"`
	Amount    uint64 `gorm:"column:amount"`
}

func (balanceModel) TableName() string { return "ledger_balances" }

type approvalModel struct {
	OwnerID    string `gorm:"column:owner_id;primaryKey"`
	OperatorID string `gorm:"column:operator_id;primaryKey"`
	Approved   bool   `gorm:"column:approved"`
}

func (approvalModel) TableName() string { return "ledger_operator_approvals" }

type counterModel struct {
	Name  string `gorm:"column:name;primaryKey"`
	Value uint64 `gorm:"column:value"`
}

func (counterModel) TableName() string { return "ledger_counters" }

const counterTokens = "tokens"

type outboxModel struct {
	OutboxID     string     `gorm:"column:id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "ledger_outbox" }

func (r *Repository) SaveToken(ctx context.Context, token entities.Token) error {
	row := tokenModel{
		TokenID:     token.TokenID,
		URI:         token.URI,
		TotalSupply: token.TotalSupply,
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "token_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"uri":          row.URI,
			"total_supply": row.TotalSupply,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("ledger_repo_save_token_failed", create.Error,
			"token_id", row.TokenID,
		)
	}
	return nil
}

func (r *Repository) GetToken(ctx context.Context, tokenID uint64) (entities.Token, error) {
	var row tokenModel
	err := r.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Token{}, domainerrors.ErrTokenDoesNotExist
		}
		return entities.Token{}, r.logError("ledger_repo_get_token_failed", err,
			"token_id", tokenID,
		)
	}
	return entities.Token{
		TokenID:     row.TokenID,
		URI:         row.URI,
		TotalSupply: row.TotalSupply,
	}, nil
}

func (r *Repository) TokenExists(ctx context.Context, tokenID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&tokenModel{}).
		Where("token_id = ?", tokenID).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("ledger_repo_token_exists_failed", err,
			"token_id", tokenID,
		)
	}
	return count > 0, nil
}

func (r *Repository) BumpTokensCount(ctx context.Context) (uint64, error) {
	var next uint64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row counterModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", counterTokens).
			First(&row).
			Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if row.Value == math.MaxUint64 {
			return domainerrors.ErrOverflow
		}
		next = row.Value + 1
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]any{"value": next}),
		}).Create(&counterModel{Name: counterTokens, Value: next}).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrOverflow) {
			return 0, err
		}
		return 0, r.logError("ledger_repo_bump_count_failed", err)
	}
	return next, nil
}

func (r *Repository) GetBalance(ctx context.Context, tokenID uint64, accountID string) (uint64, error) {
	var row balanceModel
	err := r.db.WithContext(ctx).
		Where("token_id = ? AND account_id = ?", tokenID, strings.TrimSpace(accountID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, r.logError("ledger_repo_get_balance_failed", err,
			"token_id", tokenID,
			"account_id", strings.TrimSpace(accountID),
		)
	}
	return row.Amount, nil
}

func (r *Repository) SaveBalance(ctx context.Context, tokenID uint64, accountID string, amount uint64) error {
	row := balanceModel{
		TokenID:   tokenID,
		AccountID: strings.TrimSpace(accountID),
		Amount:    amount,
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token_id"}, {Name: "account_id"}},
		DoUpdates: clause.Assignments(map[string]any{"amount": row.Amount}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("ledger_repo_save_balance_failed", create.Error,
			"token_id", row.TokenID,
			"account_id", row.AccountID,
		)
	}
	return nil
}

func (r *Repository) IsOperator(ctx context.Context, ownerID string, operatorID string) (bool, error) {
	var row approvalModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND operator_id = ?", strings.TrimSpace(ownerID), strings.TrimSpace(operatorID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, r.logError("ledger_repo_is_operator_failed", err,
			"owner_id", strings.TrimSpace(ownerID),
			"operator_id", strings.TrimSpace(operatorID),
		)
	}
	return row.Approved, nil
}

func (r *Repository) SaveOperatorApproval(ctx context.Context, ownerID string, operatorID string, approved bool) error {
	row := approvalModel{
		OwnerID:    strings.TrimSpace(ownerID),
		OperatorID: strings.TrimSpace(operatorID),
		Approved:   approved,
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "operator_id"}},
		DoUpdates: clause.Assignments(map[string]any{"approved": row.Approved}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("ledger_repo_save_approval_failed", create.Error,
			"owner_id", row.OwnerID,
			"operator_id", row.OperatorID,
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
		return r.logError("ledger_repo_append_outbox_failed", err,
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
		return nil, r.logError("ledger_repo_list_outbox_failed", err)
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
		return r.logError("ledger_repo_mark_outbox_failed", err,
			"outbox_id", outboxID,
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "assets/token-ledger",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("ledger repository operation failed", fields...)
	return err
}
