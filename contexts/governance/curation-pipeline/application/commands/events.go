package commands

import (
	"encoding/json"
	"strconv"
	"time"

	"curia/contexts/governance/curation-pipeline/ports"
)

func newUploadEnvelope(
	eventID string,
	eventType string,
	uploadID uint64,
	data map[string]any,
) (ports.EventEnvelope, error) {
	data["upload_id"] = uploadID
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       time.Now().UTC(),
		SourceService:    "curation-pipeline",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "upload_id",
		PartitionKey:     strconv.FormatUint(uploadID, 10),
		Data:             payload,
	}, nil
}
