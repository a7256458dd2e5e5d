package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type MintRequest struct {
	To      string `json:"to"`
	TokenID uint64 `json:"token_id"`
	Amount  uint64 `json:"amount"`
	URI     string `json:"uri"`
}

type MintBatchRequest struct {
	Recipients []string `json:"recipients"`
	TokenID    uint64   `json:"token_id"`
	Amounts    []uint64 `json:"amounts"`
	URI        string   `json:"uri"`
}

type TransferRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	TokenID uint64 `json:"token_id"`
	Amount  uint64 `json:"amount"`
}

type ApprovalRequest struct {
	Operator string `json:"operator"`
	Approved bool   `json:"approved"`
}

type BalanceResponse struct {
	TokenID   uint64 `json:"token_id"`
	AccountID string `json:"account_id"`
	Amount    uint64 `json:"amount"`
}

type TokenResponse struct {
	TokenID     uint64 `json:"token_id"`
	URI         string `json:"uri"`
	TotalSupply uint64 `json:"total_supply"`
}
