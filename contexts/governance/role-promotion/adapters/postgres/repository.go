package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"curia/contexts/governance/role-promotion/domain/entities"
	domainerrors "curia/contexts/governance/role-promotion/domain/errors"
	"curia/contexts/governance/role-promotion/ports"

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

type applicationModel struct {
	ApplicationID uint64 `gorm:"column:application_id;primaryKey"`
	ApplicantID   string `gorm:"column:applicant_id"`
	AppliedRole   string `gorm:"column:applied_role"`
}

func (applicationModel) TableName() string { return "roles_applications" }

type counterModel struct {
	Name  string `gorm:"column:name;primaryKey"`
	Value uint64 `gorm:"column:value"`
}

func (counterModel) TableName() string { return "roles_counters" }

const counterApplications = "applications"

type outboxModel struct {
	OutboxID     string     `gorm:"column:id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "roles_outbox" }

func (r *Repository) SaveApplication(ctx context.Context, app entities.Application) error {
	row := applicationModel{
		ApplicationID: app.ApplicationID,
		ApplicantID:   app.ApplicantID,
		AppliedRole:   string(app.AppliedRole),
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "application_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"applicant_id": row.ApplicantID,
			"applied_role": row.AppliedRole,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("roles_repo_save_application_failed", create.Error,
			"application_id", row.ApplicationID,
		)
	}
	return nil
}

func (r *Repository) GetApplication(ctx context.Context, applicationID uint64) (entities.Application, error) {
	var row applicationModel
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Application{}, domainerrors.ErrApplicationNotFound
		}
		return entities.Application{}, r.logError("roles_repo_get_application_failed", err,
			"application_id", applicationID,
		)
	}
	return entities.Application{
		ApplicationID: row.ApplicationID,
		ApplicantID:   row.ApplicantID,
		AppliedRole:   entities.TargetRole(row.AppliedRole),
	}, nil
}

func (r *Repository) AllocateApplicationID(ctx context.Context) (uint64, error) {
	var next uint64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row counterModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", counterApplications).
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
		}).Create(&counterModel{Name: counterApplications, Value: next}).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrOverflow) {
			return 0, err
		}
		return 0, r.logError("roles_repo_allocate_failed", err)
	}
	return next, nil
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
		return r.logError("roles_repo_append_outbox_failed", err,
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
		return nil, r.logError("roles_repo_list_outbox_failed", err)
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
		return r.logError("roles_repo_mark_outbox_failed", err,
			"outbox_id", outboxID,
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "governance/role-promotion",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("roles repository operation failed", fields...)
	return err
}
