package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ApplyRequest struct {
	TargetRole string `json:"target_role"`
}

type ApplicationCreatedResponse struct {
	ApplicationID uint64 `json:"application_id"`
	TargetRole    string `json:"target_role"`
}

type RoleVoteRequest struct {
	VoteKind      string `json:"vote_kind"`
	ApplicationID uint64 `json:"application_id"`
	Approve       bool   `json:"approve"`
}

type FinalizeRoleVoteRequest struct {
	VoteKind      string `json:"vote_kind"`
	ApplicationID uint64 `json:"application_id"`
}

type FinalizeResponse struct {
	ApplicationID uint64 `json:"application_id"`
	Outcome       string `json:"outcome"`
}

type ApplicationResponse struct {
	ApplicationID uint64 `json:"application_id"`
	ApplicantID   string `json:"applicant_id"`
	AppliedRole   string `json:"applied_role"`
}
