package entities

// TargetRole is the role an application aims for. Only verifier and expert
// are reachable through the promotion tracks.
type TargetRole string

const (
	TargetRoleVerifier TargetRole = "verifier"
	TargetRoleExpert   TargetRole = "expert"
)

// RoleVoteKind tags the four ballots of the two promotion tracks.
type RoleVoteKind string

const (
	VoteKindCuratorVerification    RoleVoteKind = "curator_verification"
	VoteKindCuratorCouncilApproval RoleVoteKind = "curator_council_approval"
	VoteKindExpertVerification     RoleVoteKind = "expert_verification"
	VoteKindExpertCouncilApproval  RoleVoteKind = "expert_council_approval"
)

// Known reports whether the kind belongs to a promotion track.
func (k RoleVoteKind) Known() bool {
	switch k {
	case VoteKindCuratorVerification,
		VoteKindCuratorCouncilApproval,
		VoteKindExpertVerification,
		VoteKindExpertCouncilApproval:
		return true
	}
	return false
}

type Application struct {
	ApplicationID uint64
	ApplicantID   string
	AppliedRole   TargetRole
}
