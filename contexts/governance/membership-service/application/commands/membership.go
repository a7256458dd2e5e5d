package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strings"
	"time"

	application "curia/contexts/governance/membership-service/application"
	"curia/contexts/governance/membership-service/domain/entities"
	domainerrors "curia/contexts/governance/membership-service/domain/errors"
	"curia/contexts/governance/membership-service/ports"
)

const defaultPromotionThreshold = 10

// JoinCommand is the write-model input for an open membership join.
type JoinCommand struct {
	AccountID string
	Metadata  []byte
}

// SetMembershipCommand is the privileged write-model input for assigning a
// member with an explicit role code.
type SetMembershipCommand struct {
	CallerID  string
	AccountID string
	RoleCode  uint8
	Metadata  []byte
}

// MembershipUseCase orchestrates member registration and the per-account
// vote counter. It owns the only map keyed by account identity; pipelines
// reach member state exclusively through this use case.
type MembershipUseCase struct {
	Members ports.MemberRepository
	Outbox  ports.OutboxWriter
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	// AdminAccountID is the privileged caller allowed to assign memberships.
	AdminAccountID string
	// PromotionThreshold is the vote count at which a member is force-promoted
	// to contributor. Zero resolves to the default of 10.
	PromotionThreshold uint64
	Logger             *slog.Logger
}

// Join registers the caller as a qualifier. Joining twice fails.
func (uc MembershipUseCase) Join(ctx context.Context, cmd JoinCommand) (entities.Member, error) {
	logger := application.ResolveLogger(uc.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)
	if accountID == "" {
		logger.Warn("membership join validation failed",
			"event", "membership_join_validation_failed",
			"module", "governance/membership-service",
			"layer", "application",
		)
		return entities.Member{}, domainerrors.ErrInvalidAccount
	}

	exists, err := uc.Members.HasMember(ctx, accountID)
	if err != nil {
		return entities.Member{}, err
	}
	if exists {
		logger.Warn("membership join rejected for existing member",
			"event", "membership_join_already_member",
			"module", "governance/membership-service",
			"layer", "application",
			"account_id", accountID,
		)
		return entities.Member{}, domainerrors.ErrAlreadyMember
	}

	memberID, err := uc.Members.AllocateMemberID(ctx)
	if err != nil {
		return entities.Member{}, err
	}
	member := entities.Member{
		MemberID:  memberID,
		AccountID: accountID,
		Metadata:  cmd.Metadata,
		VoteCount: 0,
		Role:      entities.RoleQualifier,
		Joined:    uc.Clock.Now(),
	}
	if err := uc.Members.SaveMember(ctx, member); err != nil {
		return entities.Member{}, err
	}
	if err := uc.appendMemberAdded(ctx, member); err != nil {
		return entities.Member{}, err
	}

	logger.Info("member joined",
		"event", "membership_member_joined",
		"module", "governance/membership-service",
		"layer", "application",
		"account_id", accountID,
		"member_id", member.MemberID,
		"role", string(member.Role),
		"joined_height", member.Joined,
	)
	return member, nil
}

// SetMembership is the privileged variant of Join: it targets an arbitrary
// account and maps a numeric role code to the stored role.
func (uc MembershipUseCase) SetMembership(ctx context.Context, cmd SetMembershipCommand) (entities.Member, error) {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)
	accountID := strings.TrimSpace(cmd.AccountID)

	if callerID == "" || callerID != strings.TrimSpace(uc.AdminAccountID) {
		logger.Warn("membership assignment rejected for non-admin caller",
			"event", "membership_set_not_authorized",
			"module", "governance/membership-service",
			"layer", "application",
			"caller_id", callerID,
			"account_id", accountID,
		)
		return entities.Member{}, domainerrors.ErrNotAuthorized
	}
	if accountID == "" {
		return entities.Member{}, domainerrors.ErrInvalidAccount
	}

	exists, err := uc.Members.HasMember(ctx, accountID)
	if err != nil {
		return entities.Member{}, err
	}
	if exists {
		return entities.Member{}, domainerrors.ErrAlreadyMember
	}

	memberID, err := uc.Members.AllocateMemberID(ctx)
	if err != nil {
		return entities.Member{}, err
	}
	member := entities.Member{
		MemberID:  memberID,
		AccountID: accountID,
		Metadata:  cmd.Metadata,
		VoteCount: 0,
		Role:      entities.RoleFromCode(cmd.RoleCode),
		Joined:    uc.Clock.Now(),
	}
	if err := uc.Members.SaveMember(ctx, member); err != nil {
		return entities.Member{}, err
	}
	if err := uc.appendMemberAdded(ctx, member); err != nil {
		return entities.Member{}, err
	}

	logger.Info("member assigned",
		"event", "membership_member_assigned",
		"module", "governance/membership-service",
		"layer", "application",
		"account_id", accountID,
		"member_id", member.MemberID,
		"role", string(member.Role),
	)
	return member, nil
}

// RecordVoteCast increments the member's vote counter. Reaching the
// promotion threshold force-promotes the member to contributor regardless
// of the prior role; this applies uniformly to document and role-pipeline
// ballots.
func (uc MembershipUseCase) RecordVoteCast(ctx context.Context, accountID string) error {
	member, err := uc.Members.GetMember(ctx, strings.TrimSpace(accountID))
	if err != nil {
		return err
	}
	if member.VoteCount == math.MaxUint64 {
		return domainerrors.ErrOverflow
	}
	member.VoteCount++

	threshold := uc.PromotionThreshold
	if threshold == 0 {
		threshold = defaultPromotionThreshold
	}
	if member.VoteCount == threshold {
		member.Role = entities.RoleContributor
		application.ResolveLogger(uc.Logger).Info("member promoted by vote count",
			"event", "membership_threshold_promotion",
			"module", "governance/membership-service",
			"layer", "application",
			"account_id", member.AccountID,
			"vote_count", member.VoteCount,
		)
	}
	return uc.Members.SaveMember(ctx, member)
}

// Promote overwrites the member's role. Used only by promotion-pipeline
// finalization; no eligibility check happens here.
func (uc MembershipUseCase) Promote(ctx context.Context, accountID string, role entities.Role) error {
	member, err := uc.Members.GetMember(ctx, strings.TrimSpace(accountID))
	if err != nil {
		return err
	}
	member.Role = role
	if err := uc.Members.SaveMember(ctx, member); err != nil {
		return err
	}
	application.ResolveLogger(uc.Logger).Info("member role overwritten",
		"event", "membership_member_promoted",
		"module", "governance/membership-service",
		"layer", "application",
		"account_id", member.AccountID,
		"role", string(role),
	)
	return nil
}

func (uc MembershipUseCase) appendMemberAdded(ctx context.Context, member entities.Member) error {
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newMembershipEnvelope(eventID, "membership.member_added", member.AccountID, map[string]any{
		"account_id": member.AccountID,
		"member_id":  member.MemberID,
		"role":       string(member.Role),
		"joined":     member.Joined,
	})
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
