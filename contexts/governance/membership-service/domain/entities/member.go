package entities

type Role string

const (
	RoleNone        Role = "none"
	RoleQualifier   Role = "qualifier"
	RoleContributor Role = "contributor"
	RoleVerifier    Role = "verifier"
	RoleExpert      Role = "expert"
	RoleCollector   Role = "collector"
)

// RoleFromCode maps the numeric wire code used by privileged membership
// assignment to a role. Unrecognized codes resolve to RoleNone.
func RoleFromCode(code uint8) Role {
	switch code {
	case 1:
		return RoleQualifier
	case 2:
		return RoleContributor
	case 3:
		return RoleVerifier
	case 4:
		return RoleExpert
	case 5:
		return RoleCollector
	default:
		return RoleNone
	}
}

type Member struct {
	MemberID  uint32
	AccountID string
	Metadata  []byte
	VoteCount uint64
	// ApprovedContributions is tracked but not read by any transition yet.
	ApprovedContributions uint32
	Role                  Role
	// Joined is the chain height at which the record was created.
	Joined uint64
}
