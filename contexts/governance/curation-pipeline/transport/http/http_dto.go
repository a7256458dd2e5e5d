package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type UploadRequest struct {
	ContentHash string `json:"content_hash"`
}

type UploadCreatedResponse struct {
	UploadID uint64 `json:"upload_id"`
	Status   string `json:"status"`
}

type DocumentVoteRequest struct {
	VoteKind string `json:"vote_kind"`
	UploadID uint64 `json:"upload_id"`
	Approve  bool   `json:"approve"`
}

type FinalizeDocumentVoteRequest struct {
	VoteKind string `json:"vote_kind"`
	UploadID uint64 `json:"upload_id"`
}

type FinalizeResponse struct {
	UploadID uint64 `json:"upload_id"`
	Outcome  string `json:"outcome"`
}

type ObjectionRequest struct {
	Reason string `json:"reason"`
}

type ReviewFinalizedResponse struct {
	UploadID uint64 `json:"upload_id"`
	Status   string `json:"status"`
}

type UploadResponse struct {
	UploadID  uint64 `json:"upload_id"`
	CreatorID string `json:"creator_id"`
	Status    string `json:"status"`
}

type ReviewResponse struct {
	UploadID    uint64 `json:"upload_id"`
	StartHeight uint64 `json:"start_height"`
	EndHeight   uint64 `json:"end_height"`
	Objections  int    `json:"objections"`
}

type ApprovedTokensResponse struct {
	TokenIDs []uint64 `json:"token_ids"`
}
