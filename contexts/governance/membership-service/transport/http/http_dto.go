package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type JoinRequest struct {
	Metadata string `json:"metadata"`
}

type SetMembershipRequest struct {
	AccountID string `json:"account_id"`
	RoleCode  uint8  `json:"role_code"`
	Metadata  string `json:"metadata"`
}

type MemberResponse struct {
	MemberID              uint32 `json:"member_id"`
	AccountID             string `json:"account_id"`
	Role                  string `json:"role"`
	VoteCount             uint64 `json:"vote_count"`
	ApprovedContributions uint32 `json:"approved_contributions"`
	JoinedHeight          uint64 `json:"joined_height"`
}
