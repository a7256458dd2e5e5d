package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strings"
	"time"

	application "curia/contexts/governance/voting-engine/application"
	"curia/contexts/governance/voting-engine/domain/entities"
	domainerrors "curia/contexts/governance/voting-engine/domain/errors"
	"curia/contexts/governance/voting-engine/ports"
)

const defaultVotingWindow = 1000

// CastCommand is the write-model input for casting one ballot.
type CastCommand struct {
	AccountID string
	Key       entities.BallotKey
	Approve   bool
}

// EngineUseCase is the generic ballot box shared by every pipeline. It
// enforces window and tally rules only; role eligibility for a given ballot
// type is checked by the calling pipeline before delegation.
type EngineUseCase struct {
	Ballots ports.BallotRepository
	Voters  ports.VoterRegistry
	Outbox  ports.OutboxWriter
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	// WindowBlocks is the fixed voting-window length in chain heights. Zero
	// resolves to the default of 1000.
	WindowBlocks uint64
	Logger       *slog.Logger
}

// Open creates a fresh in-progress ballot whose window starts now. The
// caller owns key uniqueness: orchestration never opens the same key twice.
func (uc EngineUseCase) Open(ctx context.Context, key entities.BallotKey) (entities.Ballot, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !key.Type.Known() {
		return entities.Ballot{}, domainerrors.ErrUnknownBallotType
	}

	now := uc.Clock.Now()
	window := uc.resolveWindow()
	if now > math.MaxUint64-window {
		return entities.Ballot{}, domainerrors.ErrOverflow
	}
	ballot := entities.Ballot{
		Key:    key,
		Start:  now,
		End:    now + window,
		Status: entities.BallotStatusInProgress,
	}
	if err := uc.Ballots.SaveBallot(ctx, ballot); err != nil {
		return entities.Ballot{}, err
	}
	if err := uc.appendBallotEvent(ctx, "voting.new_vote", key, map[string]any{
		"start": ballot.Start,
		"end":   ballot.End,
	}); err != nil {
		return entities.Ballot{}, err
	}

	logger.Info("ballot opened",
		"event", "voting_ballot_opened",
		"module", "governance/voting-engine",
		"layer", "application",
		"ballot_type", string(key.Type),
		"ballot_id", key.ID,
		"start", ballot.Start,
		"end", ballot.End,
	)
	return ballot, nil
}

// Cast records one yes/no ballot. Casting is rejected outside the strict
// window (exactly at start or end fails), after finalization, and on a
// second attempt by the same account.
func (uc EngineUseCase) Cast(ctx context.Context, cmd CastCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)

	ballot, err := uc.Ballots.GetBallot(ctx, cmd.Key)
	if err != nil {
		return err
	}
	if ballot.Status != entities.BallotStatusInProgress {
		return domainerrors.ErrVoteNotInProgress
	}

	now := uc.Clock.Now()
	if now <= ballot.Start || now >= ballot.End {
		logger.Warn("ballot cast outside window",
			"event", "voting_cast_window_invalid",
			"module", "governance/voting-engine",
			"layer", "application",
			"ballot_type", string(cmd.Key.Type),
			"ballot_id", cmd.Key.ID,
			"account_id", accountID,
			"now", now,
			"start", ballot.Start,
			"end", ballot.End,
		)
		return domainerrors.ErrVotingWindowNotValid
	}

	voted, err := uc.Ballots.HasCastRecord(ctx, accountID, cmd.Key)
	if err != nil {
		return err
	}
	if voted {
		return domainerrors.ErrAlreadyVoted
	}

	if cmd.Approve {
		if ballot.YesVotes == math.MaxUint64 {
			return domainerrors.ErrOverflow
		}
		ballot.YesVotes++
	} else {
		if ballot.NoVotes == math.MaxUint64 {
			return domainerrors.ErrOverflow
		}
		ballot.NoVotes++
	}

	// The membership counter goes first; the tally and the cast guard are
	// persisted only after it succeeds, so a counter failure leaves the
	// ballot untouched.
	if err := uc.Voters.RecordVoteCast(ctx, accountID); err != nil {
		return err
	}
	if err := uc.Ballots.SaveBallot(ctx, ballot); err != nil {
		return err
	}
	if err := uc.Ballots.SaveCastRecord(ctx, accountID, cmd.Key); err != nil {
		return err
	}
	if err := uc.appendBallotEvent(ctx, "voting.vote_cast", cmd.Key, map[string]any{
		"account_id": accountID,
		"approve":    cmd.Approve,
	}); err != nil {
		return err
	}

	logger.Info("ballot cast",
		"event", "voting_ballot_cast",
		"module", "governance/voting-engine",
		"layer", "application",
		"ballot_type", string(cmd.Key.Type),
		"ballot_id", cmd.Key.ID,
		"account_id", accountID,
		"approve", cmd.Approve,
	)
	return nil
}

// Finalize resolves an expired ballot exactly once: passed iff yes votes
// strictly exceed no votes, ties fail. The orchestrating pipeline performs
// all follow-up side effects.
func (uc EngineUseCase) Finalize(ctx context.Context, key entities.BallotKey) (entities.Outcome, error) {
	logger := application.ResolveLogger(uc.Logger)

	ballot, err := uc.Ballots.GetBallot(ctx, key)
	if err != nil {
		return "", err
	}
	if ballot.Status != entities.BallotStatusInProgress {
		return "", domainerrors.ErrVoteNotInProgress
	}
	if now := uc.Clock.Now(); now <= ballot.End {
		return "", domainerrors.ErrVoteStillInProgress
	}

	outcome := entities.OutcomeFailed
	ballot.Status = entities.BallotStatusFailed
	if ballot.YesVotes > ballot.NoVotes {
		outcome = entities.OutcomePassed
		ballot.Status = entities.BallotStatusPassed
	}

	if err := uc.Ballots.SaveBallot(ctx, ballot); err != nil {
		return "", err
	}
	if err := uc.appendBallotEvent(ctx, "voting.vote_ended", key, map[string]any{
		"outcome":   string(outcome),
		"yes_votes": ballot.YesVotes,
		"no_votes":  ballot.NoVotes,
	}); err != nil {
		return "", err
	}

	logger.Info("ballot finalized",
		"event", "voting_ballot_finalized",
		"module", "governance/voting-engine",
		"layer", "application",
		"ballot_type", string(key.Type),
		"ballot_id", key.ID,
		"outcome", string(outcome),
		"yes_votes", ballot.YesVotes,
		"no_votes", ballot.NoVotes,
	)
	return outcome, nil
}

func (uc EngineUseCase) resolveWindow() uint64 {
	if uc.WindowBlocks == 0 {
		return defaultVotingWindow
	}
	return uc.WindowBlocks
}

func (uc EngineUseCase) appendBallotEvent(ctx context.Context, eventType string, key entities.BallotKey, data map[string]any) error {
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newBallotEnvelope(eventID, eventType, key, data)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, ports.OutboxMessage{
		OutboxID:     eventID,
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		CreatedAt:    time.Now().UTC(),
	})
}
