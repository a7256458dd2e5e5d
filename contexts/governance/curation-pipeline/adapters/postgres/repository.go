package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"time"

	"curia/contexts/governance/curation-pipeline/domain/entities"
	domainerrors "curia/contexts/governance/curation-pipeline/domain/errors"
	"curia/contexts/governance/curation-pipeline/ports"

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

type uploadModel struct {
	UploadID    uint64 `gorm:"column:upload_id;primaryKey"`
	CreatorID   string `gorm:"column:creator_id"`
	ContentHash []byte `gorm:"column:content_hash"`
	Status      string `gorm:"column:status"`
}

func (uploadModel) TableName() string { return "curation_uploads" }

type reviewModel struct {
	UploadID    uint64 `gorm:"column:upload_id;primaryKey"`
	StartHeight uint64 `gorm:"column:start_height"`
	EndHeight   uint64 `gorm:"column:end_height"`
	Objections  []byte `gorm:"column:objections;type:jsonb"`
}

func (reviewModel) TableName() string { return "curation_reviews" }

type counterModel struct {
	Name  string `gorm:"column:name;primaryKey"`
	Value uint64 `gorm:"column:value"`
}

func (counterModel) TableName() string { return "curation_counters" }

const (
	counterUploads = "uploads"
	counterTokens  = "tokens"
)

type approvedTokenModel struct {
	TokenID    uint64    `gorm:"column:token_id;primaryKey"`
	ApprovedAt time.Time `gorm:"column:approved_at"`
}

func (approvedTokenModel) TableName() string { return "curation_approved_tokens" }

type outboxModel struct {
	OutboxID     string     `gorm:"column:id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "curation_outbox" }

func (r *Repository) SaveUpload(ctx context.Context, upload entities.Upload) error {
	row := uploadModel{
		UploadID:    upload.UploadID,
		CreatorID:   upload.CreatorID,
		ContentHash: upload.ContentHash,
		Status:      string(upload.Status),
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "upload_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"creator_id":   row.CreatorID,
			"content_hash": row.ContentHash,
			"status":       row.Status,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("curation_repo_save_upload_failed", create.Error,
			"upload_id", row.UploadID,
		)
	}
	return nil
}

func (r *Repository) GetUpload(ctx context.Context, uploadID uint64) (entities.Upload, error) {
	var row uploadModel
	err := r.db.WithContext(ctx).
		Where("upload_id = ?", uploadID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Upload{}, domainerrors.ErrUploadNotFound
		}
		return entities.Upload{}, r.logError("curation_repo_get_upload_failed", err,
			"upload_id", uploadID,
		)
	}
	return entities.Upload{
		UploadID:    row.UploadID,
		CreatorID:   row.CreatorID,
		ContentHash: row.ContentHash,
		Status:      entities.UploadStatus(row.Status),
	}, nil
}

func (r *Repository) AllocateUploadID(ctx context.Context) (uint64, error) {
	return r.allocate(ctx, counterUploads)
}

func (r *Repository) AllocateTokenID(ctx context.Context) (uint64, error) {
	return r.allocate(ctx, counterTokens)
}

func (r *Repository) allocate(ctx context.Context, name string) (uint64, error) {
	var next uint64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row counterModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", name).
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
		}).Create(&counterModel{Name: name, Value: next}).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrOverflow) {
			return 0, err
		}
		return 0, r.logError("curation_repo_allocate_failed", err,
			"counter", name,
		)
	}
	return next, nil
}

func (r *Repository) SaveReview(ctx context.Context, review entities.ExpertReview) error {
	objections, err := json.Marshal(review.Objections)
	if err != nil {
		return r.logError("curation_repo_save_review_failed", err,
			"upload_id", review.UploadID,
		)
	}
	row := reviewModel{
		UploadID:    review.UploadID,
		StartHeight: review.Start,
		EndHeight:   review.End,
		Objections:  objections,
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "upload_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"start_height": row.StartHeight,
			"end_height":   row.EndHeight,
			"objections":   row.Objections,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("curation_repo_save_review_failed", create.Error,
			"upload_id", row.UploadID,
		)
	}
	return nil
}

func (r *Repository) GetReview(ctx context.Context, uploadID uint64) (entities.ExpertReview, error) {
	var row reviewModel
	err := r.db.WithContext(ctx).
		Where("upload_id = ?", uploadID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ExpertReview{}, domainerrors.ErrNotUnderExpertReview
		}
		return entities.ExpertReview{}, r.logError("curation_repo_get_review_failed", err,
			"upload_id", uploadID,
		)
	}
	var objections []entities.Objection
	if len(row.Objections) > 0 {
		if err := json.Unmarshal(row.Objections, &objections); err != nil {
			return entities.ExpertReview{}, r.logError("curation_repo_get_review_failed", err,
				"upload_id", uploadID,
			)
		}
	}
	return entities.ExpertReview{
		UploadID:   row.UploadID,
		Start:      row.StartHeight,
		End:        row.EndHeight,
		Objections: objections,
	}, nil
}

func (r *Repository) AppendApprovedToken(ctx context.Context, tokenID uint64) error {
	row := approvedTokenModel{
		TokenID:    tokenID,
		ApprovedAt: time.Now().UTC(),
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("curation_repo_append_token_failed", create.Error,
			"token_id", tokenID,
		)
	}
	return nil
}

func (r *Repository) ListApprovedTokens(ctx context.Context) ([]uint64, error) {
	var rows []approvedTokenModel
	err := r.db.WithContext(ctx).
		Order("token_id asc").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("curation_repo_list_tokens_failed", err)
	}
	tokens := make([]uint64, 0, len(rows))
	for _, row := range rows {
		tokens = append(tokens, row.TokenID)
	}
	return tokens, nil
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
		return r.logError("curation_repo_append_outbox_failed", err,
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
		return nil, r.logError("curation_repo_list_outbox_failed", err)
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
		return r.logError("curation_repo_mark_outbox_failed", err,
			"outbox_id", outboxID,
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "governance/curation-pipeline",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("curation repository operation failed", fields...)
	return err
}
