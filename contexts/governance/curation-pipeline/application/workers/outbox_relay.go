package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "curia/contexts/governance/curation-pipeline/application"
	"curia/contexts/governance/curation-pipeline/ports"
)

// OutboxRelay publishes persisted outbox records to the event bus.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	BatchSize int
	Logger    *slog.Logger
}

// RunOnce publishes a bounded batch of pending outbox rows and marks each
// row published only after broker publish succeeds. It stops on the first
// failure so the retry loop can reprocess remaining rows safely.
func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("curation outbox list failed",
			"event", "curation_outbox_list_failed",
			"module", "governance/curation-pipeline",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, row := range pending {
		var event ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("curation outbox decode failed",
				"event", "curation_outbox_decode_failed",
				"module", "governance/curation-pipeline",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
		topic := event.EventType
		if topic == "" {
			topic = row.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("curation outbox publish failed",
				"event", "curation_outbox_publish_failed",
				"module", "governance/curation-pipeline",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"event_type", event.EventType,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			logger.Error("curation outbox mark published failed",
				"event", "curation_outbox_mark_published_failed",
				"module", "governance/curation-pipeline",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
	}

	logger.Info("curation outbox relay cycle completed",
		"event", "curation_outbox_relay_completed",
		"module", "governance/curation-pipeline",
		"layer", "worker",
		"published_count", len(pending),
	)
	return nil
}
