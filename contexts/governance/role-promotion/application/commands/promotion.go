package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	application "curia/contexts/governance/role-promotion/application"
	"curia/contexts/governance/role-promotion/domain/entities"
	domainerrors "curia/contexts/governance/role-promotion/domain/errors"
	"curia/contexts/governance/role-promotion/ports"
)

const (
	roleContributor = "contributor"
	roleVerifier    = "verifier"
	roleExpert      = "expert"
)

// ApplyCommand is the write-model input for opening a promotion track.
type ApplyCommand struct {
	ApplicantID string
	TargetRole  entities.TargetRole
}

// RoleVoteCommand targets one ballot of one application.
type RoleVoteCommand struct {
	CallerID      string
	Kind          entities.RoleVoteKind
	ApplicationID uint64
	Approve       bool
}

// PromotionUseCase drives the two promotion tracks. Each track chains two
// ballots on the same application id; only the second, the council approval,
// promotes the applicant.
type PromotionUseCase struct {
	Applications ports.ApplicationRepository
	Ballots      ports.BallotService
	Members      ports.MemberDirectory
	Promoter     ports.Promoter
	Outbox       ports.OutboxWriter
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

// Apply opens a promotion track for the caller. Verifier applications
// require the contributor role, expert applications require the verifier
// role.
func (uc PromotionUseCase) Apply(ctx context.Context, cmd ApplyCommand) (uint64, error) {
	logger := application.ResolveLogger(uc.Logger)
	applicantID := strings.TrimSpace(cmd.ApplicantID)

	var firstBallot entities.RoleVoteKind
	switch cmd.TargetRole {
	case entities.TargetRoleVerifier:
		firstBallot = entities.VoteKindCuratorVerification
	case entities.TargetRoleExpert:
		firstBallot = entities.VoteKindExpertVerification
	default:
		return 0, domainerrors.ErrWrongRoleApplied
	}

	member, err := uc.Members.GetMember(ctx, applicantID)
	if err != nil {
		return 0, err
	}
	if cmd.TargetRole == entities.TargetRoleVerifier && member.Role != roleContributor {
		logger.Warn("role application rejected",
			"event", "roles_application_rejected",
			"module", "governance/role-promotion",
			"layer", "application",
			"applicant_id", applicantID,
			"target_role", string(cmd.TargetRole),
			"role", member.Role,
		)
		return 0, domainerrors.ErrNotEligibleForVerifierRole
	}
	if cmd.TargetRole == entities.TargetRoleExpert && member.Role != roleVerifier {
		logger.Warn("role application rejected",
			"event", "roles_application_rejected",
			"module", "governance/role-promotion",
			"layer", "application",
			"applicant_id", applicantID,
			"target_role", string(cmd.TargetRole),
			"role", member.Role,
		)
		return 0, domainerrors.ErrNotEligibleForExpertRole
	}

	applicationID, err := uc.Applications.AllocateApplicationID(ctx)
	if err != nil {
		return 0, err
	}
	app := entities.Application{
		ApplicationID: applicationID,
		ApplicantID:   applicantID,
		AppliedRole:   cmd.TargetRole,
	}
	if err := uc.Applications.SaveApplication(ctx, app); err != nil {
		return 0, err
	}
	if err := uc.Ballots.Open(ctx, string(firstBallot), applicationID); err != nil {
		return 0, err
	}
	if err := uc.appendApplicationEvent(ctx, "roles.new_application", applicationID, map[string]any{
		"applicant_id": applicantID,
		"target_role":  string(cmd.TargetRole),
	}); err != nil {
		return 0, err
	}

	logger.Info("role application opened",
		"event", "roles_application_opened",
		"module", "governance/role-promotion",
		"layer", "application",
		"application_id", applicationID,
		"applicant_id", applicantID,
		"target_role", string(cmd.TargetRole),
	)
	return applicationID, nil
}

// CastRoleVote gates the caller by the ballot's required role and delegates
// to the vote engine. Verifiers cast the verification ballots, experts cast
// the council approvals.
func (uc PromotionUseCase) CastRoleVote(ctx context.Context, cmd RoleVoteCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)

	if !cmd.Kind.Known() {
		return domainerrors.ErrWrongVoteType
	}

	member, err := uc.Members.GetMember(ctx, callerID)
	if err != nil {
		return err
	}
	switch cmd.Kind {
	case entities.VoteKindCuratorVerification, entities.VoteKindExpertVerification:
		if member.Role != roleVerifier {
			return domainerrors.ErrNotEligibleToVerify
		}
	case entities.VoteKindCuratorCouncilApproval, entities.VoteKindExpertCouncilApproval:
		if member.Role != roleExpert {
			return domainerrors.ErrNotAnExpert
		}
	}

	if err := uc.Ballots.Cast(ctx, string(cmd.Kind), cmd.ApplicationID, callerID, cmd.Approve); err != nil {
		return err
	}

	logger.Info("role vote cast",
		"event", "roles_vote_cast",
		"module", "governance/role-promotion",
		"layer", "application",
		"application_id", cmd.ApplicationID,
		"vote_kind", string(cmd.Kind),
		"caller_id", callerID,
		"approve", cmd.Approve,
	)
	return nil
}

// FinalizeRoleVote resolves one ballot of a track. A passed verification
// ballot opens the matching council approval; a passed council approval
// promotes the applicant. A failed ballot ends the chain with the
// applicant's role untouched.
func (uc PromotionUseCase) FinalizeRoleVote(ctx context.Context, cmd RoleVoteCommand) (ports.BallotOutcome, error) {
	logger := application.ResolveLogger(uc.Logger)

	if !cmd.Kind.Known() {
		return "", domainerrors.ErrWrongVoteType
	}

	if _, err := uc.Members.GetMember(ctx, strings.TrimSpace(cmd.CallerID)); err != nil {
		return "", err
	}

	app, err := uc.Applications.GetApplication(ctx, cmd.ApplicationID)
	if err != nil {
		return "", err
	}

	outcome, err := uc.Ballots.Finalize(ctx, string(cmd.Kind), cmd.ApplicationID)
	if err != nil {
		return "", err
	}

	if outcome == ports.BallotOutcomePassed {
		switch cmd.Kind {
		case entities.VoteKindCuratorVerification:
			if err := uc.Ballots.Open(ctx, string(entities.VoteKindCuratorCouncilApproval), cmd.ApplicationID); err != nil {
				return "", err
			}
		case entities.VoteKindExpertVerification:
			if err := uc.Ballots.Open(ctx, string(entities.VoteKindExpertCouncilApproval), cmd.ApplicationID); err != nil {
				return "", err
			}
		case entities.VoteKindCuratorCouncilApproval:
			if err := uc.promote(ctx, app, roleVerifier); err != nil {
				return "", err
			}
		case entities.VoteKindExpertCouncilApproval:
			if err := uc.promote(ctx, app, roleExpert); err != nil {
				return "", err
			}
		}
	}

	logger.Info("role vote finalized",
		"event", "roles_vote_finalized",
		"module", "governance/role-promotion",
		"layer", "application",
		"application_id", cmd.ApplicationID,
		"vote_kind", string(cmd.Kind),
		"outcome", string(outcome),
	)
	return outcome, nil
}

func (uc PromotionUseCase) promote(ctx context.Context, app entities.Application, role string) error {
	if err := uc.Promoter.Promote(ctx, app.ApplicantID, role); err != nil {
		return err
	}
	return uc.appendApplicationEvent(ctx, "roles.member_promoted", app.ApplicationID, map[string]any{
		"applicant_id": app.ApplicantID,
		"role":         role,
	})
}

func (uc PromotionUseCase) appendApplicationEvent(ctx context.Context, eventType string, applicationID uint64, data map[string]any) error {
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newApplicationEnvelope(eventID, eventType, applicationID, data)
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
