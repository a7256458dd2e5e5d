package httpadapter

import (
	"context"
	"log/slog"

	"curia/contexts/governance/membership-service/application/commands"
	"curia/contexts/governance/membership-service/application/queries"
	"curia/contexts/governance/membership-service/domain/entities"
	httptransport "curia/contexts/governance/membership-service/transport/http"
)

type Handler struct {
	Membership commands.MembershipUseCase
	Queries    queries.MemberQueryUseCase
	Logger     *slog.Logger
}

func (h Handler) JoinHandler(ctx context.Context, accountID string, req httptransport.JoinRequest) (httptransport.MemberResponse, error) {
	member, err := h.Membership.Join(ctx, commands.JoinCommand{
		AccountID: accountID,
		Metadata:  []byte(req.Metadata),
	})
	if err != nil {
		return httptransport.MemberResponse{}, err
	}
	return mapMember(member), nil
}

func (h Handler) SetMembershipHandler(ctx context.Context, callerID string, req httptransport.SetMembershipRequest) (httptransport.MemberResponse, error) {
	member, err := h.Membership.SetMembership(ctx, commands.SetMembershipCommand{
		CallerID:  callerID,
		AccountID: req.AccountID,
		RoleCode:  req.RoleCode,
		Metadata:  []byte(req.Metadata),
	})
	if err != nil {
		return httptransport.MemberResponse{}, err
	}
	return mapMember(member), nil
}

func (h Handler) GetMemberHandler(ctx context.Context, accountID string) (httptransport.MemberResponse, error) {
	member, err := h.Queries.GetMember(ctx, accountID)
	if err != nil {
		return httptransport.MemberResponse{}, err
	}
	return mapMember(member), nil
}

func mapMember(member entities.Member) httptransport.MemberResponse {
	return httptransport.MemberResponse{
		MemberID:              member.MemberID,
		AccountID:             member.AccountID,
		Role:                  string(member.Role),
		VoteCount:             member.VoteCount,
		ApprovedContributions: member.ApprovedContributions,
		JoinedHeight:          member.Joined,
	}
}
