package commands

import (
	"encoding/json"
	"time"

	"curia/contexts/governance/membership-service/ports"
)

func newMembershipEnvelope(
	eventID string,
	eventType string,
	accountID string,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// Membership events are partitioned by account for stable ordering on
	// account-scoped consumers.
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       time.Now().UTC(),
		SourceService:    "membership-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "account_id",
		PartitionKey:     accountID,
		Data:             payload,
	}, nil
}
