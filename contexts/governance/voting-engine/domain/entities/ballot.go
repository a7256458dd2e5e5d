package entities

type BallotType string

const (
	BallotTypeQualification          BallotType = "qualification"
	BallotTypeVerification           BallotType = "verification"
	BallotTypeCuratorVerification    BallotType = "curator_verification"
	BallotTypeCuratorCouncilApproval BallotType = "curator_council_approval"
	BallotTypeExpertVerification     BallotType = "expert_verification"
	BallotTypeExpertCouncilApproval  BallotType = "expert_council_approval"
	BallotTypeProposal               BallotType = "proposal"
)

// Known reports whether the tag is one of the defined ballot types.
func (t BallotType) Known() bool {
	switch t {
	case BallotTypeQualification, BallotTypeVerification,
		BallotTypeCuratorVerification, BallotTypeCuratorCouncilApproval,
		BallotTypeExpertVerification, BallotTypeExpertCouncilApproval,
		BallotTypeProposal:
		return true
	default:
		return false
	}
}

type BallotStatus string

const (
	BallotStatusInProgress BallotStatus = "in_progress"
	BallotStatusPassed     BallotStatus = "passed"
	BallotStatusFailed     BallotStatus = "failed"
)

// BallotKey is the composite identity of a ballot. The numeric id is reused
// across ballot types to mean "the same underlying item" (one upload id
// carries both its qualification and verification ballots), so the pair is
// the only valid key; the id alone is ambiguous.
type BallotKey struct {
	Type BallotType
	ID   uint64
}

type Ballot struct {
	Key      BallotKey
	YesVotes uint64
	NoVotes  uint64
	// Start and End are chain heights; casting is permitted strictly inside
	// the open interval (Start, End).
	Start  uint64
	End    uint64
	Status BallotStatus
}

type Outcome string

const (
	OutcomePassed Outcome = "passed"
	OutcomeFailed Outcome = "failed"
)
