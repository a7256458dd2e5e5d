package commands

import (
	"encoding/json"
	"strconv"
	"time"

	"curia/contexts/assets/token-ledger/ports"
)

func newApprovalEnvelope(
	eventID string,
	ownerID string,
	data map[string]any,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        "tokens.approval_for_all",
		OccurredAt:       time.Now().UTC(),
		SourceService:    "token-ledger",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "owner_id",
		PartitionKey:     ownerID,
		Data:             payload,
	}, nil
}

func newTokenEnvelope(
	eventID string,
	eventType string,
	tokenID uint64,
	data map[string]any,
) (ports.EventEnvelope, error) {
	data["token_id"] = tokenID
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       time.Now().UTC(),
		SourceService:    "token-ledger",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "token_id",
		PartitionKey:     strconv.FormatUint(tokenID, 10),
		Data:             payload,
	}, nil
}
