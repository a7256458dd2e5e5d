package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type BallotResponse struct {
	BallotType  string `json:"ballot_type"`
	BallotID    uint64 `json:"ballot_id"`
	YesVotes    uint64 `json:"yes_votes"`
	NoVotes     uint64 `json:"no_votes"`
	StartHeight uint64 `json:"start_height"`
	EndHeight   uint64 `json:"end_height"`
	Status      string `json:"status"`
}
