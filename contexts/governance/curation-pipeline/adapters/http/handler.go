package httpadapter

import (
	"context"
	"encoding/hex"
	"log/slog"

	"curia/contexts/governance/curation-pipeline/application/commands"
	"curia/contexts/governance/curation-pipeline/application/queries"
	"curia/contexts/governance/curation-pipeline/domain/entities"
	domainerrors "curia/contexts/governance/curation-pipeline/domain/errors"
	httptransport "curia/contexts/governance/curation-pipeline/transport/http"
)

type Handler struct {
	Pipeline commands.PipelineUseCase
	Queries  queries.UploadQueryUseCase
	Logger   *slog.Logger
}

func (h Handler) UploadHandler(ctx context.Context, callerID string, req httptransport.UploadRequest) (httptransport.UploadCreatedResponse, error) {
	hash, err := hex.DecodeString(req.ContentHash)
	if err != nil {
		return httptransport.UploadCreatedResponse{}, domainerrors.ErrInvalidUpload
	}
	uploadID, err := h.Pipeline.Upload(ctx, commands.UploadCommand{
		CreatorID:   callerID,
		ContentHash: hash,
	})
	if err != nil {
		return httptransport.UploadCreatedResponse{}, err
	}
	return httptransport.UploadCreatedResponse{
		UploadID: uploadID,
		Status:   string(entities.StatusQualificationVoteInProgress),
	}, nil
}

func (h Handler) CastVoteHandler(ctx context.Context, callerID string, req httptransport.DocumentVoteRequest) error {
	return h.Pipeline.CastDocumentVote(ctx, commands.DocumentVoteCommand{
		CallerID: callerID,
		Kind:     entities.VoteKind(req.VoteKind),
		UploadID: req.UploadID,
		Approve:  req.Approve,
	})
}

func (h Handler) FinalizeVoteHandler(ctx context.Context, callerID string, req httptransport.FinalizeDocumentVoteRequest) (httptransport.FinalizeResponse, error) {
	outcome, err := h.Pipeline.FinalizeDocumentVote(ctx, commands.DocumentVoteCommand{
		CallerID: callerID,
		Kind:     entities.VoteKind(req.VoteKind),
		UploadID: req.UploadID,
	})
	if err != nil {
		return httptransport.FinalizeResponse{}, err
	}
	return httptransport.FinalizeResponse{
		UploadID: req.UploadID,
		Outcome:  string(outcome),
	}, nil
}

func (h Handler) RaiseObjectionHandler(ctx context.Context, callerID string, uploadID uint64, req httptransport.ObjectionRequest) error {
	return h.Pipeline.RaiseObjection(ctx, commands.ObjectionCommand{
		CallerID: callerID,
		UploadID: uploadID,
		Reason:   []byte(req.Reason),
	})
}

func (h Handler) FinalizeReviewHandler(ctx context.Context, callerID string, uploadID uint64) (httptransport.ReviewFinalizedResponse, error) {
	status, err := h.Pipeline.FinalizeReview(ctx, callerID, uploadID)
	if err != nil {
		return httptransport.ReviewFinalizedResponse{}, err
	}
	return httptransport.ReviewFinalizedResponse{
		UploadID: uploadID,
		Status:   string(status),
	}, nil
}

func (h Handler) GetUploadHandler(ctx context.Context, uploadID uint64) (httptransport.UploadResponse, error) {
	upload, err := h.Queries.GetUpload(ctx, uploadID)
	if err != nil {
		return httptransport.UploadResponse{}, err
	}
	return httptransport.UploadResponse{
		UploadID:  upload.UploadID,
		CreatorID: upload.CreatorID,
		Status:    string(upload.Status),
	}, nil
}

func (h Handler) GetReviewHandler(ctx context.Context, uploadID uint64) (httptransport.ReviewResponse, error) {
	review, err := h.Queries.GetReview(ctx, uploadID)
	if err != nil {
		return httptransport.ReviewResponse{}, err
	}
	return httptransport.ReviewResponse{
		UploadID:    review.UploadID,
		StartHeight: review.Start,
		EndHeight:   review.End,
		Objections:  len(review.Objections),
	}, nil
}

func (h Handler) ListApprovedTokensHandler(ctx context.Context) (httptransport.ApprovedTokensResponse, error) {
	tokens, err := h.Queries.ListApprovedTokens(ctx)
	if err != nil {
		return httptransport.ApprovedTokensResponse{}, err
	}
	return httptransport.ApprovedTokensResponse{TokenIDs: tokens}, nil
}
