package httpadapter

import (
	"context"
	"log/slog"

	"curia/contexts/governance/role-promotion/application/commands"
	"curia/contexts/governance/role-promotion/application/queries"
	"curia/contexts/governance/role-promotion/domain/entities"
	httptransport "curia/contexts/governance/role-promotion/transport/http"
)

type Handler struct {
	Promotion commands.PromotionUseCase
	Queries   queries.ApplicationQueryUseCase
	Logger    *slog.Logger
}

func (h Handler) ApplyHandler(ctx context.Context, callerID string, req httptransport.ApplyRequest) (httptransport.ApplicationCreatedResponse, error) {
	applicationID, err := h.Promotion.Apply(ctx, commands.ApplyCommand{
		ApplicantID: callerID,
		TargetRole:  entities.TargetRole(req.TargetRole),
	})
	if err != nil {
		return httptransport.ApplicationCreatedResponse{}, err
	}
	return httptransport.ApplicationCreatedResponse{
		ApplicationID: applicationID,
		TargetRole:    req.TargetRole,
	}, nil
}

func (h Handler) CastRoleVoteHandler(ctx context.Context, callerID string, req httptransport.RoleVoteRequest) error {
	return h.Promotion.CastRoleVote(ctx, commands.RoleVoteCommand{
		CallerID:      callerID,
		Kind:          entities.RoleVoteKind(req.VoteKind),
		ApplicationID: req.ApplicationID,
		Approve:       req.Approve,
	})
}

func (h Handler) FinalizeRoleVoteHandler(ctx context.Context, callerID string, req httptransport.FinalizeRoleVoteRequest) (httptransport.FinalizeResponse, error) {
	outcome, err := h.Promotion.FinalizeRoleVote(ctx, commands.RoleVoteCommand{
		CallerID:      callerID,
		Kind:          entities.RoleVoteKind(req.VoteKind),
		ApplicationID: req.ApplicationID,
	})
	if err != nil {
		return httptransport.FinalizeResponse{}, err
	}
	return httptransport.FinalizeResponse{
		ApplicationID: req.ApplicationID,
		Outcome:       string(outcome),
	}, nil
}

func (h Handler) GetApplicationHandler(ctx context.Context, applicationID uint64) (httptransport.ApplicationResponse, error) {
	app, err := h.Queries.GetApplication(ctx, applicationID)
	if err != nil {
		return httptransport.ApplicationResponse{}, err
	}
	return httptransport.ApplicationResponse{
		ApplicationID: app.ApplicationID,
		ApplicantID:   app.ApplicantID,
		AppliedRole:   string(app.AppliedRole),
	}, nil
}
