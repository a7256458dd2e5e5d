package commands

import (
	"encoding/json"
	"strconv"
	"time"

	"curia/contexts/governance/voting-engine/domain/entities"
	"curia/contexts/governance/voting-engine/ports"
)

func newBallotEnvelope(
	eventID string,
	eventType string,
	key entities.BallotKey,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// Ballot events are partitioned by the composite key so consumers of one
	// workflow item see its ballots in order.
	data["ballot_type"] = string(key.Type)
	data["ballot_id"] = key.ID
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       time.Now().UTC(),
		SourceService:    "voting-engine",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "ballot_key",
		PartitionKey:     string(key.Type) + "/" + strconv.FormatUint(key.ID, 10),
		Data:             payload,
	}, nil
}
