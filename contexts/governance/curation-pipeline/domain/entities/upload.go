package entities

type UploadStatus string

const (
	StatusQualificationVoteInProgress UploadStatus = "qualification_vote_in_progress"
	StatusVerificationVoteInProgress  UploadStatus = "verification_vote_in_progress"
	StatusUnderExpertReview           UploadStatus = "under_expert_review"
	// StatusSuccessfulExpertReview is a terminal label no transition assigns;
	// kept for wire compatibility with historic records.
	StatusSuccessfulExpertReview UploadStatus = "successful_expert_review"
	// StatusCouncilVoteInProgress is reserved for a council stage that is not
	// part of the current pipeline.
	StatusCouncilVoteInProgress UploadStatus = "council_vote_in_progress"
	StatusVerified              UploadStatus = "verified"
	StatusRejected              UploadStatus = "rejected"
)

// VoteKind tags which pipeline stage a cast or finalize call targets.
type VoteKind string

const (
	VoteKindQualification VoteKind = "qualification"
	VoteKindVerification  VoteKind = "verification"
)

type Upload struct {
	UploadID    uint64
	CreatorID   string
	ContentHash []byte
	Status      UploadStatus
}

type Objection struct {
	ObjectorID string
	Reason     []byte
}

type ExpertReview struct {
	UploadID uint64
	// Start and End are chain heights; objections are accepted strictly
	// inside the open interval (Start, End).
	Start uint64
	End   uint64
	// Objections keeps insertion order. Any objection at all rejects the
	// document on finalize.
	Objections []Objection
}
