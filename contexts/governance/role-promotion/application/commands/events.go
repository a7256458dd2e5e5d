package commands

import (
	"encoding/json"
	"strconv"
	"time"

	"curia/contexts/governance/role-promotion/ports"
)

func newApplicationEnvelope(
	eventID string,
	eventType string,
	applicationID uint64,
	data map[string]any,
) (ports.EventEnvelope, error) {
	data["application_id"] = applicationID
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       time.Now().UTC(),
		SourceService:    "role-promotion",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "application_id",
		PartitionKey:     strconv.FormatUint(applicationID, 10),
		Data:             payload,
	}, nil
}
