package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strings"
	"time"

	application "curia/contexts/governance/curation-pipeline/application"
	"curia/contexts/governance/curation-pipeline/domain/entities"
	domainerrors "curia/contexts/governance/curation-pipeline/domain/errors"
	"curia/contexts/governance/curation-pipeline/ports"
)

const (
	defaultReviewWindow   = 1000
	defaultCreatorShare   = 90
	defaultFinalizerShare = 10

	roleContributor = "contributor"
	roleVerifier    = "verifier"
	roleExpert      = "expert"
)

// UploadCommand is the write-model input for contributing a document.
type UploadCommand struct {
	CreatorID   string
	ContentHash []byte
}

// DocumentVoteCommand targets one pipeline stage of one upload.
type DocumentVoteCommand struct {
	CallerID string
	Kind     entities.VoteKind
	UploadID uint64
	Approve  bool
}

type ObjectionCommand struct {
	CallerID string
	UploadID uint64
	Reason   []byte
}

// PipelineUseCase drives an upload through qualification vote, verification
// vote and expert review. Ballots themselves live in the vote engine; this
// module owns role gating, stage transitions and the reward mint.
type PipelineUseCase struct {
	Uploads ports.UploadRepository
	Ballots ports.BallotService
	Members ports.MemberDirectory
	Minter  ports.TokenMinter
	Outbox  ports.OutboxWriter
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	// ReviewWindowBlocks is the expert-review window length in chain heights.
	// Zero resolves to the default of 1000.
	ReviewWindowBlocks uint64
	// CreatorShare and FinalizerShare are the reward amounts minted to the
	// document creator and the review finalizer. Zero resolves to 90/10.
	CreatorShare   uint64
	FinalizerShare uint64
	Logger         *slog.Logger
}

// Upload registers a new document and opens its qualification ballot.
// Only contributors may upload.
func (uc PipelineUseCase) Upload(ctx context.Context, cmd UploadCommand) (uint64, error) {
	logger := application.ResolveLogger(uc.Logger)
	creatorID := strings.TrimSpace(cmd.CreatorID)
	if creatorID == "" || len(cmd.ContentHash) == 0 {
		return 0, domainerrors.ErrInvalidUpload
	}

	member, err := uc.Members.GetMember(ctx, creatorID)
	if err != nil {
		return 0, err
	}
	if member.Role != roleContributor {
		logger.Warn("upload rejected",
			"event", "curation_upload_rejected",
			"module", "governance/curation-pipeline",
			"layer", "application",
			"creator_id", creatorID,
			"role", member.Role,
		)
		return 0, domainerrors.ErrNotEligibleToContribute
	}

	uploadID, err := uc.Uploads.AllocateUploadID(ctx)
	if err != nil {
		return 0, err
	}
	upload := entities.Upload{
		UploadID:    uploadID,
		CreatorID:   creatorID,
		ContentHash: cmd.ContentHash,
		Status:      entities.StatusQualificationVoteInProgress,
	}
	if err := uc.Uploads.SaveUpload(ctx, upload); err != nil {
		return 0, err
	}
	if err := uc.Ballots.Open(ctx, string(entities.VoteKindQualification), uploadID); err != nil {
		return 0, err
	}
	if err := uc.appendUploadEvent(ctx, "curation.new_upload", uploadID, map[string]any{
		"creator_id": creatorID,
	}); err != nil {
		return 0, err
	}

	logger.Info("document uploaded",
		"event", "curation_document_uploaded",
		"module", "governance/curation-pipeline",
		"layer", "application",
		"upload_id", uploadID,
		"creator_id", creatorID,
	)
	return uploadID, nil
}

// CastDocumentVote gates the caller by role for the requested stage and
// delegates the ballot itself to the vote engine.
func (uc PipelineUseCase) CastDocumentVote(ctx context.Context, cmd DocumentVoteCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)

	if cmd.Kind != entities.VoteKindQualification && cmd.Kind != entities.VoteKindVerification {
		return domainerrors.ErrWrongVoteType
	}

	member, err := uc.Members.GetMember(ctx, callerID)
	if err != nil {
		return err
	}
	if cmd.Kind == entities.VoteKindVerification && member.Role != roleVerifier {
		logger.Warn("document vote rejected",
			"event", "curation_vote_rejected",
			"module", "governance/curation-pipeline",
			"layer", "application",
			"upload_id", cmd.UploadID,
			"vote_kind", string(cmd.Kind),
			"caller_id", callerID,
			"role", member.Role,
		)
		return domainerrors.ErrNotEligibleToVerify
	}

	if err := uc.Ballots.Cast(ctx, string(cmd.Kind), cmd.UploadID, callerID, cmd.Approve); err != nil {
		return err
	}

	logger.Info("document vote cast",
		"event", "curation_vote_cast",
		"module", "governance/curation-pipeline",
		"layer", "application",
		"upload_id", cmd.UploadID,
		"vote_kind", string(cmd.Kind),
		"caller_id", callerID,
		"approve", cmd.Approve,
	)
	return nil
}

// FinalizeDocumentVote resolves one stage ballot and advances the upload. A
// passed qualification opens the verification ballot; a passed verification
// opens the expert-review window; a failed ballot at either stage rejects
// the document outright.
func (uc PipelineUseCase) FinalizeDocumentVote(ctx context.Context, cmd DocumentVoteCommand) (ports.BallotOutcome, error) {
	logger := application.ResolveLogger(uc.Logger)

	if cmd.Kind != entities.VoteKindQualification && cmd.Kind != entities.VoteKindVerification {
		return "", domainerrors.ErrWrongVoteType
	}

	if _, err := uc.Members.GetMember(ctx, strings.TrimSpace(cmd.CallerID)); err != nil {
		return "", err
	}

	upload, err := uc.Uploads.GetUpload(ctx, cmd.UploadID)
	if err != nil {
		return "", err
	}

	outcome, err := uc.Ballots.Finalize(ctx, string(cmd.Kind), cmd.UploadID)
	if err != nil {
		return "", err
	}

	switch {
	case outcome == ports.BallotOutcomePassed && cmd.Kind == entities.VoteKindQualification:
		upload.Status = entities.StatusVerificationVoteInProgress
		if err := uc.Uploads.SaveUpload(ctx, upload); err != nil {
			return "", err
		}
		if err := uc.Ballots.Open(ctx, string(entities.VoteKindVerification), cmd.UploadID); err != nil {
			return "", err
		}
	case outcome == ports.BallotOutcomePassed && cmd.Kind == entities.VoteKindVerification:
		now := uc.Clock.Now()
		window := uc.resolveReviewWindow()
		if now > math.MaxUint64-window {
			return "", domainerrors.ErrOverflow
		}
		upload.Status = entities.StatusUnderExpertReview
		if err := uc.Uploads.SaveUpload(ctx, upload); err != nil {
			return "", err
		}
		review := entities.ExpertReview{
			UploadID: cmd.UploadID,
			Start:    now,
			End:      now + window,
		}
		if err := uc.Uploads.SaveReview(ctx, review); err != nil {
			return "", err
		}
		if err := uc.appendUploadEvent(ctx, "curation.expert_review_started", cmd.UploadID, map[string]any{
			"start": review.Start,
			"end":   review.End,
		}); err != nil {
			return "", err
		}
	default:
		upload.Status = entities.StatusRejected
		if err := uc.Uploads.SaveUpload(ctx, upload); err != nil {
			return "", err
		}
	}

	logger.Info("document vote finalized",
		"event", "curation_vote_finalized",
		"module", "governance/curation-pipeline",
		"layer", "application",
		"upload_id", cmd.UploadID,
		"vote_kind", string(cmd.Kind),
		"outcome", string(outcome),
		"status", string(upload.Status),
	)
	return outcome, nil
}

// RaiseObjection appends an expert objection inside the strict review
// window. Any recorded objection rejects the document on review finalize.
func (uc PipelineUseCase) RaiseObjection(ctx context.Context, cmd ObjectionCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)

	member, err := uc.Members.GetMember(ctx, callerID)
	if err != nil {
		return err
	}
	if member.Role != roleExpert {
		return domainerrors.ErrNotAnExpert
	}

	upload, err := uc.Uploads.GetUpload(ctx, cmd.UploadID)
	if err != nil {
		return err
	}
	if upload.Status != entities.StatusUnderExpertReview {
		return domainerrors.ErrNotUnderExpertReview
	}
	review, err := uc.Uploads.GetReview(ctx, cmd.UploadID)
	if err != nil {
		return err
	}

	now := uc.Clock.Now()
	if now <= review.Start || now >= review.End {
		logger.Warn("objection outside review window",
			"event", "curation_objection_window_invalid",
			"module", "governance/curation-pipeline",
			"layer", "application",
			"upload_id", cmd.UploadID,
			"caller_id", callerID,
			"now", now,
			"start", review.Start,
			"end", review.End,
		)
		return domainerrors.ErrReviewWindowNotValid
	}

	review.Objections = append(review.Objections, entities.Objection{
		ObjectorID: callerID,
		Reason:     cmd.Reason,
	})
	if err := uc.Uploads.SaveReview(ctx, review); err != nil {
		return err
	}
	if err := uc.appendUploadEvent(ctx, "curation.objection_raised", cmd.UploadID, map[string]any{
		"objector_id": callerID,
	}); err != nil {
		return err
	}

	logger.Info("objection raised",
		"event", "curation_objection_raised",
		"module", "governance/curation-pipeline",
		"layer", "application",
		"upload_id", cmd.UploadID,
		"caller_id", callerID,
	)
	return nil
}

// FinalizeReview closes an expired review window. With no objections the
// document is verified and a fresh reward token is batch-minted to the
// creator and the finalizing caller; a mint failure is logged and swallowed,
// the verified status stands.
func (uc PipelineUseCase) FinalizeReview(ctx context.Context, callerID string, uploadID uint64) (entities.UploadStatus, error) {
	logger := application.ResolveLogger(uc.Logger)
	callerID = strings.TrimSpace(callerID)

	if _, err := uc.Members.GetMember(ctx, callerID); err != nil {
		return "", err
	}

	upload, err := uc.Uploads.GetUpload(ctx, uploadID)
	if err != nil {
		return "", err
	}
	if upload.Status != entities.StatusUnderExpertReview {
		return "", domainerrors.ErrNotUnderExpertReview
	}
	review, err := uc.Uploads.GetReview(ctx, uploadID)
	if err != nil {
		return "", err
	}
	if now := uc.Clock.Now(); now <= review.End {
		return "", domainerrors.ErrReviewStillInProgress
	}

	if len(review.Objections) > 0 {
		upload.Status = entities.StatusRejected
		if err := uc.Uploads.SaveUpload(ctx, upload); err != nil {
			return "", err
		}
		if err := uc.appendUploadEvent(ctx, "curation.expert_review_ended", uploadID, map[string]any{
			"outcome":    "rejected",
			"objections": len(review.Objections),
		}); err != nil {
			return "", err
		}
		logger.Info("expert review finalized",
			"event", "curation_review_finalized",
			"module", "governance/curation-pipeline",
			"layer", "application",
			"upload_id", uploadID,
			"outcome", "rejected",
			"objections", len(review.Objections),
		)
		return upload.Status, nil
	}

	upload.Status = entities.StatusVerified
	if err := uc.Uploads.SaveUpload(ctx, upload); err != nil {
		return "", err
	}

	tokenID, err := uc.Uploads.AllocateTokenID(ctx)
	if err != nil {
		return "", err
	}
	creatorShare, finalizerShare := uc.resolveShares()
	mintErr := uc.Minter.MintBatch(ctx, callerID,
		[]string{upload.CreatorID, callerID},
		tokenID,
		[]uint64{creatorShare, finalizerShare},
		upload.ContentHash,
	)
	if mintErr != nil {
		// The verified status is the source of truth; a reward that failed
		// to mint is re-issuable out of band.
		logger.Warn("reward mint failed",
			"event", "curation_reward_mint_failed",
			"module", "governance/curation-pipeline",
			"layer", "application",
			"upload_id", uploadID,
			"token_id", tokenID,
			"error", mintErr.Error(),
		)
	} else if err := uc.Uploads.AppendApprovedToken(ctx, tokenID); err != nil {
		return "", err
	}

	if err := uc.appendUploadEvent(ctx, "curation.expert_review_ended", uploadID, map[string]any{
		"outcome":  "verified",
		"token_id": tokenID,
	}); err != nil {
		return "", err
	}

	logger.Info("expert review finalized",
		"event", "curation_review_finalized",
		"module", "governance/curation-pipeline",
		"layer", "application",
		"upload_id", uploadID,
		"outcome", "verified",
		"token_id", tokenID,
		"minted", mintErr == nil,
	)
	return upload.Status, nil
}

func (uc PipelineUseCase) resolveReviewWindow() uint64 {
	if uc.ReviewWindowBlocks == 0 {
		return defaultReviewWindow
	}
	return uc.ReviewWindowBlocks
}

func (uc PipelineUseCase) resolveShares() (uint64, uint64) {
	creator, finalizer := uc.CreatorShare, uc.FinalizerShare
	if creator == 0 && finalizer == 0 {
		creator, finalizer = defaultCreatorShare, defaultFinalizerShare
	}
	return creator, finalizer
}

func (uc PipelineUseCase) appendUploadEvent(ctx context.Context, eventType string, uploadID uint64, data map[string]any) error {
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newUploadEnvelope(eventID, eventType, uploadID, data)
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
