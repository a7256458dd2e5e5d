package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"curia/contexts/governance/curation-pipeline/domain/entities"
	domainerrors "curia/contexts/governance/curation-pipeline/domain/errors"
	"curia/contexts/governance/curation-pipeline/ports"
)

type fakeUploads struct {
	uploads        map[uint64]entities.Upload
	reviews        map[uint64]entities.ExpertReview
	uploadsCount   uint64
	tokensCount    uint64
	approvedTokens []uint64
}

func newFakeUploads() *fakeUploads {
	return &fakeUploads{
		uploads: make(map[uint64]entities.Upload),
		reviews: make(map[uint64]entities.ExpertReview),
	}
}

func (f *fakeUploads) SaveUpload(_ context.Context, upload entities.Upload) error {
	f.uploads[upload.UploadID] = upload
	return nil
}

func (f *fakeUploads) GetUpload(_ context.Context, uploadID uint64) (entities.Upload, error) {
	upload, ok := f.uploads[uploadID]
	if !ok {
		return entities.Upload{}, domainerrors.ErrUploadNotFound
	}
	return upload, nil
}

func (f *fakeUploads) AllocateUploadID(_ context.Context) (uint64, error) {
	f.uploadsCount++
	return f.uploadsCount, nil
}

func (f *fakeUploads) SaveReview(_ context.Context, review entities.ExpertReview) error {
	f.reviews[review.UploadID] = review
	return nil
}

func (f *fakeUploads) GetReview(_ context.Context, uploadID uint64) (entities.ExpertReview, error) {
	review, ok := f.reviews[uploadID]
	if !ok {
		return entities.ExpertReview{}, domainerrors.ErrNotUnderExpertReview
	}
	return review, nil
}

func (f *fakeUploads) AllocateTokenID(_ context.Context) (uint64, error) {
	f.tokensCount++
	return f.tokensCount, nil
}

func (f *fakeUploads) AppendApprovedToken(_ context.Context, tokenID uint64) error {
	f.approvedTokens = append(f.approvedTokens, tokenID)
	return nil
}

func (f *fakeUploads) ListApprovedTokens(_ context.Context) ([]uint64, error) {
	return f.approvedTokens, nil
}

type ballotCall struct {
	ballotType string
	id         uint64
}

type fakeBallots struct {
	opened    []ballotCall
	casts     []ballotCall
	castErr   error
	outcomes  map[string]ports.BallotOutcome
	finalized []ballotCall
}

func newFakeBallots() *fakeBallots {
	return &fakeBallots{outcomes: make(map[string]ports.BallotOutcome)}
}

func outcomeKey(ballotType string, id uint64) string {
	return fmt.Sprintf("%s/%d", ballotType, id)
}

func (f *fakeBallots) Open(_ context.Context, ballotType string, id uint64) error {
	f.opened = append(f.opened, ballotCall{ballotType: ballotType, id: id})
	return nil
}

func (f *fakeBallots) Cast(_ context.Context, ballotType string, id uint64, _ string, _ bool) error {
	if f.castErr != nil {
		return f.castErr
	}
	f.casts = append(f.casts, ballotCall{ballotType: ballotType, id: id})
	return nil
}

func (f *fakeBallots) Finalize(_ context.Context, ballotType string, id uint64) (ports.BallotOutcome, error) {
	outcome, ok := f.outcomes[outcomeKey(ballotType, id)]
	if !ok {
		return "", domainerrors.ErrVoteNotFound
	}
	f.finalized = append(f.finalized, ballotCall{ballotType: ballotType, id: id})
	return outcome, nil
}

type fakeMembers struct {
	members map[string]ports.MemberView
}

func (f *fakeMembers) GetMember(_ context.Context, accountID string) (ports.MemberView, error) {
	member, ok := f.members[accountID]
	if !ok {
		return ports.MemberView{}, domainerrors.ErrNotAMember
	}
	return member, nil
}

type mintCall struct {
	minterID   string
	recipients []string
	tokenID    uint64
	amounts    []uint64
}

type fakeMinter struct {
	calls []mintCall
	err   error
}

func (f *fakeMinter) MintBatch(_ context.Context, minterID string, recipients []string, tokenID uint64, amounts []uint64, _ []byte) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, mintCall{
		minterID:   minterID,
		recipients: recipients,
		tokenID:    tokenID,
		amounts:    amounts,
	})
	return nil
}

type fakeOutbox struct {
	messages []ports.OutboxMessage
}

func (f *fakeOutbox) AppendOutbox(_ context.Context, message ports.OutboxMessage) error {
	f.messages = append(f.messages, message)
	return nil
}

type fixedClock struct {
	height uint64
}

func (c *fixedClock) Now() uint64 { return c.height }

type seqIDGen struct {
	next int
}

func (g *seqIDGen) NewID(_ context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("event-%d", g.next), nil
}

type pipelineFixture struct {
	uploads *fakeUploads
	ballots *fakeBallots
	members *fakeMembers
	minter  *fakeMinter
	outbox  *fakeOutbox
	clock   *fixedClock
	useCase PipelineUseCase
}

func newPipelineFixture() *pipelineFixture {
	f := &pipelineFixture{
		uploads: newFakeUploads(),
		ballots: newFakeBallots(),
		members: &fakeMembers{members: map[string]ports.MemberView{
			"alice": {AccountID: "alice", Role: "contributor"},
			"quinn": {AccountID: "quinn", Role: "qualifier"},
			"vera":  {AccountID: "vera", Role: "verifier"},
			"edgar": {AccountID: "edgar", Role: "expert"},
		}},
		minter: &fakeMinter{},
		outbox: &fakeOutbox{},
		clock:  &fixedClock{height: 1},
	}
	f.useCase = PipelineUseCase{
		Uploads: f.uploads,
		Ballots: f.ballots,
		Members: f.members,
		Minter:  f.minter,
		Outbox:  f.outbox,
		Clock:   f.clock,
		IDGen:   &seqIDGen{},
	}
	return f
}

func (f *pipelineFixture) seedUpload(status entities.UploadStatus) entities.Upload {
	upload := entities.Upload{
		UploadID:    1,
		CreatorID:   "alice",
		ContentHash: []byte{0xde, 0xad},
		Status:      status,
	}
	f.uploads.uploads[upload.UploadID] = upload
	return upload
}

func TestUploadRequiresContributor(t *testing.T) {
	f := newPipelineFixture()
	ctx := context.Background()

	_, err := f.useCase.Upload(ctx, UploadCommand{CreatorID: "quinn", ContentHash: []byte{0x01}})
	if !errors.Is(err, domainerrors.ErrNotEligibleToContribute) {
		t.Fatalf("expected ErrNotEligibleToContribute for qualifier, got %v", err)
	}
	_, err = f.useCase.Upload(ctx, UploadCommand{CreatorID: "nobody", ContentHash: []byte{0x01}})
	if !errors.Is(err, domainerrors.ErrNotAMember) {
		t.Fatalf("expected ErrNotAMember for unknown account, got %v", err)
	}

	uploadID, err := f.useCase.Upload(ctx, UploadCommand{CreatorID: "alice", ContentHash: []byte{0x01}})
	if err != nil {
		t.Fatalf("contributor upload failed: %v", err)
	}
	if uploadID != 1 {
		t.Fatalf("expected first upload id 1, got %d", uploadID)
	}
	upload := f.uploads.uploads[uploadID]
	if upload.Status != entities.StatusQualificationVoteInProgress {
		t.Fatalf("expected qualification stage, got %s", upload.Status)
	}
	if len(f.ballots.opened) != 1 || f.ballots.opened[0].ballotType != "qualification" || f.ballots.opened[0].id != uploadID {
		t.Fatalf("expected one qualification ballot opened, got %+v", f.ballots.opened)
	}
	if len(f.outbox.messages) != 1 || f.outbox.messages[0].EventType != "curation.new_upload" {
		t.Fatalf("expected curation.new_upload event, got %+v", f.outbox.messages)
	}
}

func TestUploadRejectsEmptyInput(t *testing.T) {
	f := newPipelineFixture()
	ctx := context.Background()

	if _, err := f.useCase.Upload(ctx, UploadCommand{CreatorID: "alice"}); !errors.Is(err, domainerrors.ErrInvalidUpload) {
		t.Fatalf("expected ErrInvalidUpload for empty hash, got %v", err)
	}
	if _, err := f.useCase.Upload(ctx, UploadCommand{ContentHash: []byte{0x01}}); !errors.Is(err, domainerrors.ErrInvalidUpload) {
		t.Fatalf("expected ErrInvalidUpload for empty creator, got %v", err)
	}
}

func TestCastDocumentVoteGatesByKindAndRole(t *testing.T) {
	f := newPipelineFixture()
	ctx := context.Background()
	f.seedUpload(entities.StatusQualificationVoteInProgress)

	err := f.useCase.CastDocumentVote(ctx, DocumentVoteCommand{
		CallerID: "quinn", Kind: "proposal", UploadID: 1, Approve: true,
	})
	if !errors.Is(err, domainerrors.ErrWrongVoteType) {
		t.Fatalf("expected ErrWrongVoteType for proposal kind, got %v", err)
	}

	err = f.useCase.CastDocumentVote(ctx, DocumentVoteCommand{
		CallerID: "alice", Kind: entities.VoteKindVerification, UploadID: 1, Approve: true,
	})
	if !errors.Is(err, domainerrors.ErrNotEligibleToVerify) {
		t.Fatalf("expected ErrNotEligibleToVerify for contributor on verification, got %v", err)
	}

	err = f.useCase.CastDocumentVote(ctx, DocumentVoteCommand{
		CallerID: "quinn", Kind: entities.VoteKindQualification, UploadID: 1, Approve: true,
	})
	if err != nil {
		t.Fatalf("qualifier qualification vote failed: %v", err)
	}
	err = f.useCase.CastDocumentVote(ctx, DocumentVoteCommand{
		CallerID: "vera", Kind: entities.VoteKindVerification, UploadID: 1, Approve: false,
	})
	if err != nil {
		t.Fatalf("verifier verification vote failed: %v", err)
	}
	if len(f.ballots.casts) != 2 {
		t.Fatalf("expected 2 delegated casts, got %d", len(f.ballots.casts))
	}
}

func TestCastDocumentVotePropagatesBallotErrors(t *testing.T) {
	f := newPipelineFixture()
	ctx := context.Background()
	f.seedUpload(entities.StatusQualificationVoteInProgress)
	f.ballots.castErr = domainerrors.ErrVotingWindowNotValid

	err := f.useCase.CastDocumentVote(ctx, DocumentVoteCommand{
		CallerID: "quinn", Kind: entities.VoteKindQualification, UploadID: 1, Approve: true,
	})
	if !errors.Is(err, domainerrors.ErrVotingWindowNotValid) {
		t.Fatalf("expected ballot error to propagate, got %v", err)
	}
}

func TestFinalizeQualificationPassedOpensVerification(t *testing.T) {
	f := newPipelineFixture()
	ctx := context.Background()
	f.seedUpload(entities.StatusQualificationVoteInProgress)
	f.ballots.outcomes[outcomeKey("qualification", 1)] = ports.BallotOutcomePassed

	outcome, err := f.useCase.FinalizeDocumentVote(ctx, DocumentVoteCommand{
		CallerID: "quinn", Kind: entities.VoteKindQualification, UploadID: 1,
	})
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if outcome != ports.BallotOutcomePassed {
		t.Fatalf("expected passed outcome, got %s", outcome)
	}
	if got := f.uploads.uploads[1].Status; got != entities.StatusVerificationVoteInProgress {
		t.Fatalf("expected verification stage, got %s", got)
	}
	if len(f.ballots.opened) != 1 || f.ballots.opened[0].ballotType != "verification" {
		t.Fatalf("expected verification ballot opened, got %+v", f.ballots.opened)
	}
}

func TestFinalizeVerificationPassedStartsExpertReview(t *testing.T) {
	f := newPipelineFixture()
	ctx := context.Background()
	f.seedUpload(entities.StatusVerificationVoteInProgress)
	f.ballots.outcomes[outcomeKey("verification", 1)] = ports.BallotOutcomePassed
	f.clock.height = 1100

	outcome, err := f.useCase.FinalizeDocumentVote(ctx, DocumentVoteCommand{
		CallerID: "vera", Kind: entities.VoteKindVerification, UploadID: 1,
	})
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if outcome != ports.BallotOutcomePassed {
		t.Fatalf("expected passed outcome, got %s", outcome)
	}
	if got := f.uploads.uploads[1].Status; got != entities.StatusUnderExpertReview {
		t.Fatalf("expected under expert review, got %s", got)
	}
	review, ok := f.uploads.reviews[1]
	if !ok {
		t.Fatalf("expected review window to be recorded")
	}
	if review.Start != 1100 || review.End != 2100 {
		t.Fatalf("expected review window 1100-2100, got %d-%d", review.Start, review.End)
	}
	if len(f.outbox.messages) != 1 || f.outbox.messages[0].EventType != "curation.expert_review_started" {
		t.Fatalf("expected expert_review_started event, got %+v", f.outbox.messages)
	}
}

func TestFinalizeFailedVoteRejectsDocument(t *testing.T) {
	f := newPipelineFixture()
	ctx := context.Background()

	for _, kind := range []entities.VoteKind{entities.VoteKindQualification, entities.VoteKindVerification} {
		f = newPipelineFixture()
		f.seedUpload(entities.StatusQualificationVoteInProgress)
		f.ballots.outcomes[outcomeKey(string(kind), 1)] = ports.BallotOutcomeFailed

		outcome, err := f.useCase.FinalizeDocumentVote(ctx, DocumentVoteCommand{
			CallerID: "quinn", Kind: kind, UploadID: 1,
		})
		if err != nil {
			t.Fatalf("finalize %s failed: %v", kind, err)
		}
		if outcome != ports.BallotOutcomeFailed {
			t.Fatalf("expected failed outcome for %s, got %s", kind, outcome)
		}
		if got := f.uploads.uploads[1].Status; got != entities.StatusRejected {
			t.Fatalf("expected rejected after failed %s vote, got %s", kind, got)
		}
		if len(f.ballots.opened) != 0 {
			t.Fatalf("expected no follow-up ballot after failed %s vote", kind)
		}
	}
}

func TestFinalizeUnknownUpload(t *testing.T) {
	f := newPipelineFixture()
	ctx := context.Background()

	_, err := f.useCase.FinalizeDocumentVote(ctx, DocumentVoteCommand{
		CallerID: "quinn", Kind: entities.VoteKindQualification, UploadID: 42,
	})
	if !errors.Is(err, domainerrors.ErrUploadNotFound) {
		t.Fatalf("expected ErrUploadNotFound, got %v", err)
	}
}

func TestRaiseObjectionRequiresExpertAndWindow(t *testing.T) {
	f := newPipelineFixture()
	ctx := context.Background()
	f.seedUpload(entities.StatusUnderExpertReview)
	f.uploads.reviews[1] = entities.ExpertReview{UploadID: 1, Start: 1100, End: 2100}

	err := f.useCase.RaiseObjection(ctx, ObjectionCommand{CallerID: "vera", UploadID: 1})
	if !errors.Is(err, domainerrors.ErrNotAnExpert) {
		t.Fatalf("expected ErrNotAnExpert for verifier, got %v", err)
	}

	for _, height := range []uint64{1100, 2100, 2500} {
		f.clock.height = height
		err := f.useCase.RaiseObjection(ctx, ObjectionCommand{CallerID: "edgar", UploadID: 1})
		if !errors.Is(err, domainerrors.ErrReviewWindowNotValid) {
			t.Fatalf("expected ErrReviewWindowNotValid at height %d, got %v", height, err)
		}
	}

	f.clock.height = 1500
	if err := f.useCase.RaiseObjection(ctx, ObjectionCommand{
		CallerID: "edgar", UploadID: 1, Reason: []byte("duplicate source"),
	}); err != nil {
		t.Fatalf("objection inside window failed: %v", err)
	}
	review := f.uploads.reviews[1]
	if len(review.Objections) != 1 || review.Objections[0].ObjectorID != "edgar" {
		t.Fatalf("expected one recorded objection from edgar, got %+v", review.Objections)
	}
}

func TestRaiseObjectionRequiresReviewStage(t *testing.T) {
	f := newPipelineFixture()
	ctx := context.Background()
	f.seedUpload(entities.StatusVerificationVoteInProgress)
	f.clock.height = 1500

	err := f.useCase.RaiseObjection(ctx, ObjectionCommand{CallerID: "edgar", UploadID: 1})
	if !errors.Is(err, domainerrors.ErrNotUnderExpertReview) {
		t.Fatalf("expected ErrNotUnderExpertReview, got %v", err)
	}
}

func TestFinalizeReviewBeforeEndFails(t *testing.T) {
	f := newPipelineFixture()
	ctx := context.Background()
	f.seedUpload(entities.StatusUnderExpertReview)
	f.uploads.reviews[1] = entities.ExpertReview{UploadID: 1, Start: 1100, End: 2100}

	for _, height := range []uint64{1500, 2100} {
		f.clock.height = height
		_, err := f.useCase.FinalizeReview(ctx, "edgar", 1)
		if !errors.Is(err, domainerrors.ErrReviewStillInProgress) {
			t.Fatalf("expected ErrReviewStillInProgress at height %d, got %v", height, err)
		}
	}
}

func TestFinalizeReviewWithObjectionRejects(t *testing.T) {
	f := newPipelineFixture()
	ctx := context.Background()
	f.seedUpload(entities.StatusUnderExpertReview)
	f.uploads.reviews[1] = entities.ExpertReview{
		UploadID: 1, Start: 1100, End: 2100,
		Objections: []entities.Objection{{ObjectorID: "edgar", Reason: []byte("plagiarism")}},
	}
	f.clock.height = 2200

	status, err := f.useCase.FinalizeReview(ctx, "edgar", 1)
	if err != nil {
		t.Fatalf("finalize review failed: %v", err)
	}
	if status != entities.StatusRejected {
		t.Fatalf("expected rejected, got %s", status)
	}
	if len(f.minter.calls) != 0 {
		t.Fatalf("expected no mint after rejection, got %+v", f.minter.calls)
	}
}

func TestFinalizeReviewVerifiedMintsReward(t *testing.T) {
	f := newPipelineFixture()
	ctx := context.Background()
	f.seedUpload(entities.StatusUnderExpertReview)
	f.uploads.reviews[1] = entities.ExpertReview{UploadID: 1, Start: 1100, End: 2100}
	f.clock.height = 2200

	status, err := f.useCase.FinalizeReview(ctx, "edgar", 1)
	if err != nil {
		t.Fatalf("finalize review failed: %v", err)
	}
	if status != entities.StatusVerified {
		t.Fatalf("expected verified, got %s", status)
	}
	if len(f.minter.calls) != 1 {
		t.Fatalf("expected one mint call, got %d", len(f.minter.calls))
	}
	call := f.minter.calls[0]
	if call.tokenID != 1 {
		t.Fatalf("expected first token id 1, got %d", call.tokenID)
	}
	if len(call.recipients) != 2 || call.recipients[0] != "alice" || call.recipients[1] != "edgar" {
		t.Fatalf("expected creator then finalizer recipients, got %+v", call.recipients)
	}
	if len(call.amounts) != 2 || call.amounts[0] != 90 || call.amounts[1] != 10 {
		t.Fatalf("expected 90/10 split, got %+v", call.amounts)
	}
	if len(f.uploads.approvedTokens) != 1 || f.uploads.approvedTokens[0] != 1 {
		t.Fatalf("expected token 1 in approved registry, got %+v", f.uploads.approvedTokens)
	}
}

func TestFinalizeReviewMintFailureKeepsVerified(t *testing.T) {
	f := newPipelineFixture()
	ctx := context.Background()
	f.seedUpload(entities.StatusUnderExpertReview)
	f.uploads.reviews[1] = entities.ExpertReview{UploadID: 1, Start: 1100, End: 2100}
	f.clock.height = 2200
	f.minter.err = errors.New("ledger unavailable")

	status, err := f.useCase.FinalizeReview(ctx, "edgar", 1)
	if err != nil {
		t.Fatalf("expected mint failure to be swallowed, got %v", err)
	}
	if status != entities.StatusVerified {
		t.Fatalf("expected verified despite mint failure, got %s", status)
	}
	if len(f.uploads.approvedTokens) != 0 {
		t.Fatalf("expected no approved token after mint failure, got %+v", f.uploads.approvedTokens)
	}
}

func TestFinalizeDocumentVoteRequiresMembership(t *testing.T) {
	f := newPipelineFixture()
	ctx := context.Background()
	f.seedUpload(entities.StatusQualificationVoteInProgress)
	f.ballots.outcomes[outcomeKey("qualification", 1)] = ports.BallotOutcomePassed

	_, err := f.useCase.FinalizeDocumentVote(ctx, DocumentVoteCommand{
		CallerID: "nobody", Kind: entities.VoteKindQualification, UploadID: 1,
	})
	if !errors.Is(err, domainerrors.ErrNotAMember) {
		t.Fatalf("expected ErrNotAMember for unknown finalizer, got %v", err)
	}
	if len(f.ballots.finalized) != 0 {
		t.Fatalf("expected no ballot finalized, got %+v", f.ballots.finalized)
	}
	if got := f.uploads.uploads[1].Status; got != entities.StatusQualificationVoteInProgress {
		t.Fatalf("expected upload stage untouched, got %s", got)
	}
}

func TestFinalizeReviewRequiresMembership(t *testing.T) {
	f := newPipelineFixture()
	ctx := context.Background()
	f.seedUpload(entities.StatusUnderExpertReview)
	f.uploads.reviews[1] = entities.ExpertReview{UploadID: 1, Start: 1100, End: 2100}
	f.clock.height = 2500

	_, err := f.useCase.FinalizeReview(ctx, "nobody", 1)
	if !errors.Is(err, domainerrors.ErrNotAMember) {
		t.Fatalf("expected ErrNotAMember for unknown finalizer, got %v", err)
	}
	if len(f.minter.calls) != 0 {
		t.Fatalf("expected no reward minted, got %+v", f.minter.calls)
	}
	if got := f.uploads.uploads[1].Status; got != entities.StatusUnderExpertReview {
		t.Fatalf("expected review stage untouched, got %s", got)
	}
}
