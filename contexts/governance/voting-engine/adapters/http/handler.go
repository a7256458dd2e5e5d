package httpadapter

import (
	"context"
	"log/slog"

	"curia/contexts/governance/voting-engine/application/queries"
	"curia/contexts/governance/voting-engine/domain/entities"
	httptransport "curia/contexts/governance/voting-engine/transport/http"
)

type Handler struct {
	Queries queries.BallotQueryUseCase
	Logger  *slog.Logger
}

func (h Handler) GetBallotHandler(ctx context.Context, ballotType string, ballotID uint64) (httptransport.BallotResponse, error) {
	ballot, err := h.Queries.GetBallot(ctx, entities.BallotKey{
		Type: entities.BallotType(ballotType),
		ID:   ballotID,
	})
	if err != nil {
		return httptransport.BallotResponse{}, err
	}
	return httptransport.BallotResponse{
		BallotType:  string(ballot.Key.Type),
		BallotID:    ballot.Key.ID,
		YesVotes:    ballot.YesVotes,
		NoVotes:     ballot.NoVotes,
		StartHeight: ballot.Start,
		EndHeight:   ballot.End,
		Status:      string(ballot.Status),
	}, nil
}
