package bootstrap

import (
	"context"
	"errors"

	ledgercommands "curia/contexts/assets/token-ledger/application/commands"
	curationerrors "curia/contexts/governance/curation-pipeline/domain/errors"
	curationports "curia/contexts/governance/curation-pipeline/ports"
	membershipcommands "curia/contexts/governance/membership-service/application/commands"
	membershipqueries "curia/contexts/governance/membership-service/application/queries"
	membershipentities "curia/contexts/governance/membership-service/domain/entities"
	membershiperrors "curia/contexts/governance/membership-service/domain/errors"
	roleserrors "curia/contexts/governance/role-promotion/domain/errors"
	rolesports "curia/contexts/governance/role-promotion/ports"
	votingcommands "curia/contexts/governance/voting-engine/application/commands"
	votingentities "curia/contexts/governance/voting-engine/domain/entities"
	votingerrors "curia/contexts/governance/voting-engine/domain/errors"
)

// The glue adapters below keep the bounded contexts decoupled at the source
// level: each consumer talks to the ballot box, the member directory and the
// ledger through its own ports, and compile-time wiring happens only here.
// Errors cross a boundary translated into the consumer's vocabulary so its
// HTTP mapping stays closed over its own sentinels.

type curationBallots struct {
	engine votingcommands.EngineUseCase
}

func (b curationBallots) Open(ctx context.Context, ballotType string, id uint64) error {
	_, err := b.engine.Open(ctx, ballotKey(ballotType, id))
	return curationBallotErr(err)
}

func (b curationBallots) Cast(ctx context.Context, ballotType string, id uint64, accountID string, approve bool) error {
	err := b.engine.Cast(ctx, votingcommands.CastCommand{
		AccountID: accountID,
		Key:       ballotKey(ballotType, id),
		Approve:   approve,
	})
	return curationBallotErr(err)
}

func (b curationBallots) Finalize(ctx context.Context, ballotType string, id uint64) (curationports.BallotOutcome, error) {
	outcome, err := b.engine.Finalize(ctx, ballotKey(ballotType, id))
	if err != nil {
		return "", curationBallotErr(err)
	}
	if outcome == votingentities.OutcomePassed {
		return curationports.BallotOutcomePassed, nil
	}
	return curationports.BallotOutcomeFailed, nil
}

type rolesBallots struct {
	engine votingcommands.EngineUseCase
}

func (b rolesBallots) Open(ctx context.Context, ballotType string, id uint64) error {
	_, err := b.engine.Open(ctx, ballotKey(ballotType, id))
	return rolesBallotErr(err)
}

func (b rolesBallots) Cast(ctx context.Context, ballotType string, id uint64, accountID string, approve bool) error {
	err := b.engine.Cast(ctx, votingcommands.CastCommand{
		AccountID: accountID,
		Key:       ballotKey(ballotType, id),
		Approve:   approve,
	})
	return rolesBallotErr(err)
}

func (b rolesBallots) Finalize(ctx context.Context, ballotType string, id uint64) (rolesports.BallotOutcome, error) {
	outcome, err := b.engine.Finalize(ctx, ballotKey(ballotType, id))
	if err != nil {
		return "", rolesBallotErr(err)
	}
	if outcome == votingentities.OutcomePassed {
		return rolesports.BallotOutcomePassed, nil
	}
	return rolesports.BallotOutcomeFailed, nil
}

func ballotKey(ballotType string, id uint64) votingentities.BallotKey {
	return votingentities.BallotKey{Type: votingentities.BallotType(ballotType), ID: id}
}

func curationBallotErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, votingerrors.ErrVoteNotFound):
		return curationerrors.ErrVoteNotFound
	case errors.Is(err, votingerrors.ErrVoteNotInProgress):
		return curationerrors.ErrVoteNotInProgress
	case errors.Is(err, votingerrors.ErrVotingWindowNotValid):
		return curationerrors.ErrVotingWindowNotValid
	case errors.Is(err, votingerrors.ErrVoteStillInProgress):
		return curationerrors.ErrVoteStillInProgress
	case errors.Is(err, votingerrors.ErrAlreadyVoted):
		return curationerrors.ErrAlreadyVoted
	case errors.Is(err, votingerrors.ErrUnknownBallotType):
		return curationerrors.ErrWrongVoteType
	default:
		return err
	}
}

func rolesBallotErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, votingerrors.ErrVoteNotFound):
		return roleserrors.ErrVoteNotFound
	case errors.Is(err, votingerrors.ErrVoteNotInProgress):
		return roleserrors.ErrVoteNotInProgress
	case errors.Is(err, votingerrors.ErrVotingWindowNotValid):
		return roleserrors.ErrVotingWindowNotValid
	case errors.Is(err, votingerrors.ErrVoteStillInProgress):
		return roleserrors.ErrVoteStillInProgress
	case errors.Is(err, votingerrors.ErrAlreadyVoted):
		return roleserrors.ErrAlreadyVoted
	case errors.Is(err, votingerrors.ErrUnknownBallotType):
		return roleserrors.ErrWrongVoteType
	default:
		return err
	}
}

type curationMembers struct {
	queries membershipqueries.MemberQueryUseCase
}

func (d curationMembers) GetMember(ctx context.Context, accountID string) (curationports.MemberView, error) {
	member, err := d.queries.GetMember(ctx, accountID)
	if err != nil {
		if errors.Is(err, membershiperrors.ErrNotAMember) {
			return curationports.MemberView{}, curationerrors.ErrNotAMember
		}
		return curationports.MemberView{}, err
	}
	return curationports.MemberView{AccountID: member.AccountID, Role: string(member.Role)}, nil
}

type rolesMembers struct {
	queries membershipqueries.MemberQueryUseCase
}

func (d rolesMembers) GetMember(ctx context.Context, accountID string) (rolesports.MemberView, error) {
	member, err := d.queries.GetMember(ctx, accountID)
	if err != nil {
		if errors.Is(err, membershiperrors.ErrNotAMember) {
			return rolesports.MemberView{}, roleserrors.ErrNotAMember
		}
		return rolesports.MemberView{}, err
	}
	return rolesports.MemberView{AccountID: member.AccountID, Role: string(member.Role)}, nil
}

type memberPromoter struct {
	membership membershipcommands.MembershipUseCase
}

func (p memberPromoter) Promote(ctx context.Context, accountID string, role string) error {
	return p.membership.Promote(ctx, accountID, membershipentities.Role(role))
}

type rewardMinter struct {
	ledger ledgercommands.LedgerUseCase
}

func (m rewardMinter) MintBatch(ctx context.Context, minterID string, recipients []string, tokenID uint64, amounts []uint64, uri []byte) error {
	return m.ledger.MintBatch(ctx, ledgercommands.MintBatchCommand{
		MinterID:   minterID,
		Recipients: recipients,
		TokenID:    tokenID,
		Amounts:    amounts,
		URI:        uri,
	})
}
