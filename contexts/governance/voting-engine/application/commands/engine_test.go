package commands

import (
	"context"
	"errors"
	"testing"

	"curia/contexts/governance/voting-engine/domain/entities"
	domainerrors "curia/contexts/governance/voting-engine/domain/errors"
	"curia/contexts/governance/voting-engine/ports"
)

type castRecord struct {
	accountID string
	key       entities.BallotKey
}

type fakeBallots struct {
	ballots map[entities.BallotKey]entities.Ballot
	casts   map[castRecord]bool
}

func newFakeBallots() *fakeBallots {
	return &fakeBallots{
		ballots: make(map[entities.BallotKey]entities.Ballot),
		casts:   make(map[castRecord]bool),
	}
}

func (f *fakeBallots) SaveBallot(_ context.Context, ballot entities.Ballot) error {
	f.ballots[ballot.Key] = ballot
	return nil
}

func (f *fakeBallots) GetBallot(_ context.Context, key entities.BallotKey) (entities.Ballot, error) {
	ballot, ok := f.ballots[key]
	if !ok {
		return entities.Ballot{}, domainerrors.ErrVoteNotFound
	}
	return ballot, nil
}

func (f *fakeBallots) HasCastRecord(_ context.Context, accountID string, key entities.BallotKey) (bool, error) {
	return f.casts[castRecord{accountID: accountID, key: key}], nil
}

func (f *fakeBallots) SaveCastRecord(_ context.Context, accountID string, key entities.BallotKey) error {
	f.casts[castRecord{accountID: accountID, key: key}] = true
	return nil
}

type fakeVoters struct {
	recorded []string
	err      error
}

func (f *fakeVoters) RecordVoteCast(_ context.Context, accountID string) error {
	if f.err != nil {
		return f.err
	}
	f.recorded = append(f.recorded, accountID)
	return nil
}

type fakeOutbox struct {
	messages []ports.OutboxMessage
}

func (f *fakeOutbox) AppendOutbox(_ context.Context, message ports.OutboxMessage) error {
	f.messages = append(f.messages, message)
	return nil
}

type stepClock struct {
	height uint64
}

func (c *stepClock) Now() uint64 { return c.height }

type staticIDGen struct {
	n int
}

func (g *staticIDGen) NewID(_ context.Context) (string, error) {
	g.n++
	return string(rune('0' + g.n)), nil
}

func newEngine(ballots *fakeBallots, voters *fakeVoters, clock *stepClock) EngineUseCase {
	return EngineUseCase{
		Ballots:      ballots,
		Voters:       voters,
		Outbox:       &fakeOutbox{},
		Clock:        clock,
		IDGen:        &staticIDGen{},
		WindowBlocks: 1000,
	}
}

var qualKey = entities.BallotKey{Type: entities.BallotTypeQualification, ID: 1}

func TestOpenSetsWindowFromClock(t *testing.T) {
	ballots := newFakeBallots()
	clock := &stepClock{height: 1}
	uc := newEngine(ballots, &fakeVoters{}, clock)

	ballot, err := uc.Open(context.Background(), qualKey)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if ballot.Start != 1 || ballot.End != 1001 {
		t.Fatalf("expected window (1, 1001), got (%d, %d)", ballot.Start, ballot.End)
	}
	if ballot.Status != entities.BallotStatusInProgress {
		t.Fatalf("expected in-progress status, got %s", ballot.Status)
	}
}

func TestCastWindowIsStrict(t *testing.T) {
	ballots := newFakeBallots()
	clock := &stepClock{height: 1}
	uc := newEngine(ballots, &fakeVoters{}, clock)
	if _, err := uc.Open(context.Background(), qualKey); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	for _, height := range []uint64{1, 1001, 1500} {
		clock.height = height
		err := uc.Cast(context.Background(), CastCommand{AccountID: "alice", Key: qualKey, Approve: true})
		if !errors.Is(err, domainerrors.ErrVotingWindowNotValid) {
			t.Fatalf("cast at height %d: expected ErrVotingWindowNotValid, got %v", height, err)
		}
	}

	clock.height = 2
	if err := uc.Cast(context.Background(), CastCommand{AccountID: "alice", Key: qualKey, Approve: true}); err != nil {
		t.Fatalf("cast inside window failed: %v", err)
	}
}

func TestCastUnknownBallot(t *testing.T) {
	uc := newEngine(newFakeBallots(), &fakeVoters{}, &stepClock{height: 5})
	err := uc.Cast(context.Background(), CastCommand{AccountID: "alice", Key: qualKey, Approve: true})
	if !errors.Is(err, domainerrors.ErrVoteNotFound) {
		t.Fatalf("expected ErrVoteNotFound, got %v", err)
	}
}

func TestCastRejectsSecondBallotFromSameAccount(t *testing.T) {
	ballots := newFakeBallots()
	clock := &stepClock{height: 1}
	uc := newEngine(ballots, &fakeVoters{}, clock)
	if _, err := uc.Open(context.Background(), qualKey); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	clock.height = 10
	if err := uc.Cast(context.Background(), CastCommand{AccountID: "alice", Key: qualKey, Approve: true}); err != nil {
		t.Fatalf("first cast failed: %v", err)
	}
	err := uc.Cast(context.Background(), CastCommand{AccountID: "alice", Key: qualKey, Approve: false})
	if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}

	// Same account, different ballot type, same numeric id: allowed.
	verKey := entities.BallotKey{Type: entities.BallotTypeVerification, ID: 1}
	if _, err := uc.Open(context.Background(), verKey); err != nil {
		t.Fatalf("open verification failed: %v", err)
	}
	clock.height = 20
	if err := uc.Cast(context.Background(), CastCommand{AccountID: "alice", Key: verKey, Approve: true}); err != nil {
		t.Fatalf("cast on sibling ballot failed: %v", err)
	}
}

func TestCastRecordsVoterCounter(t *testing.T) {
	ballots := newFakeBallots()
	voters := &fakeVoters{}
	clock := &stepClock{height: 1}
	uc := newEngine(ballots, voters, clock)
	if _, err := uc.Open(context.Background(), qualKey); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	clock.height = 100
	if err := uc.Cast(context.Background(), CastCommand{AccountID: "alice", Key: qualKey, Approve: true}); err != nil {
		t.Fatalf("cast failed: %v", err)
	}
	if len(voters.recorded) != 1 || voters.recorded[0] != "alice" {
		t.Fatalf("expected voter counter recorded for alice, got %v", voters.recorded)
	}
}

func TestCastCounterFailureLeavesBallotUntouched(t *testing.T) {
	ballots := newFakeBallots()
	voters := &fakeVoters{err: errors.New("counter down")}
	clock := &stepClock{height: 1}
	uc := newEngine(ballots, voters, clock)
	if _, err := uc.Open(context.Background(), qualKey); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	clock.height = 100
	err := uc.Cast(context.Background(), CastCommand{AccountID: "alice", Key: qualKey, Approve: true})
	if !errors.Is(err, voters.err) {
		t.Fatalf("expected counter error from cast, got %v", err)
	}

	ballot, err := ballots.GetBallot(context.Background(), qualKey)
	if err != nil {
		t.Fatalf("get ballot failed: %v", err)
	}
	if ballot.YesVotes != 0 || ballot.NoVotes != 0 {
		t.Fatalf("expected untouched tally, got yes=%d no=%d", ballot.YesVotes, ballot.NoVotes)
	}
	cast, err := ballots.HasCastRecord(context.Background(), "alice", qualKey)
	if err != nil {
		t.Fatalf("has cast record failed: %v", err)
	}
	if cast {
		t.Fatalf("expected no cast record after counter failure")
	}
}

func TestFinalizeBeforeEndFails(t *testing.T) {
	ballots := newFakeBallots()
	clock := &stepClock{height: 1}
	uc := newEngine(ballots, &fakeVoters{}, clock)
	if _, err := uc.Open(context.Background(), qualKey); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	for _, height := range []uint64{500, 1001} {
		clock.height = height
		if _, err := uc.Finalize(context.Background(), qualKey); !errors.Is(err, domainerrors.ErrVoteStillInProgress) {
			t.Fatalf("finalize at height %d: expected ErrVoteStillInProgress, got %v", height, err)
		}
	}
}

func TestFinalizeMajorityAndTies(t *testing.T) {
	cases := []struct {
		name    string
		yes, no uint64
		want    entities.Outcome
	}{
		{"majority passes", 2, 1, entities.OutcomePassed},
		{"tie fails", 2, 2, entities.OutcomeFailed},
		{"minority fails", 1, 3, entities.OutcomeFailed},
		{"empty ballot fails", 0, 0, entities.OutcomeFailed},
	}
	for _, tc := range cases {
		ballots := newFakeBallots()
		clock := &stepClock{height: 1}
		uc := newEngine(ballots, &fakeVoters{}, clock)
		ballots.ballots[qualKey] = entities.Ballot{
			Key:      qualKey,
			YesVotes: tc.yes,
			NoVotes:  tc.no,
			Start:    1,
			End:      1001,
			Status:   entities.BallotStatusInProgress,
		}

		clock.height = 1100
		outcome, err := uc.Finalize(context.Background(), qualKey)
		if err != nil {
			t.Fatalf("%s: finalize failed: %v", tc.name, err)
		}
		if outcome != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, outcome)
		}
	}
}

func TestFinalizeIsTerminal(t *testing.T) {
	ballots := newFakeBallots()
	clock := &stepClock{height: 1}
	uc := newEngine(ballots, &fakeVoters{}, clock)
	ballots.ballots[qualKey] = entities.Ballot{
		Key:      qualKey,
		YesVotes: 1,
		Start:    1,
		End:      1001,
		Status:   entities.BallotStatusInProgress,
	}

	clock.height = 1100
	if _, err := uc.Finalize(context.Background(), qualKey); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if _, err := uc.Finalize(context.Background(), qualKey); !errors.Is(err, domainerrors.ErrVoteNotInProgress) {
		t.Fatalf("expected ErrVoteNotInProgress on second finalize, got %v", err)
	}
	clock.height = 1200
	err := uc.Cast(context.Background(), CastCommand{AccountID: "bob", Key: qualKey, Approve: true})
	if !errors.Is(err, domainerrors.ErrVoteNotInProgress) {
		t.Fatalf("expected ErrVoteNotInProgress casting on finalized ballot, got %v", err)
	}
}
