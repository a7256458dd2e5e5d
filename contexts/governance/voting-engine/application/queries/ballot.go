package queries

import (
	"context"

	"curia/contexts/governance/voting-engine/domain/entities"
	"curia/contexts/governance/voting-engine/ports"
)

type BallotQueryUseCase struct {
	Ballots ports.BallotRepository
}

func (uc BallotQueryUseCase) GetBallot(ctx context.Context, key entities.BallotKey) (entities.Ballot, error) {
	return uc.Ballots.GetBallot(ctx, key)
}
