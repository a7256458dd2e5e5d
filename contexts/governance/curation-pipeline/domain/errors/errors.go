package errors

import "errors"

var (
	ErrUploadNotFound          = errors.New("upload not found")
	ErrNotAMember              = errors.New("caller is not a member")
	ErrNotEligibleToContribute = errors.New("not eligible to contribute")
	ErrNotEligibleToVerify     = errors.New("not eligible to verify")
	ErrWrongVoteType           = errors.New("wrong vote type")
	ErrNotAnExpert             = errors.New("not an expert")
	ErrNotUnderExpertReview    = errors.New("upload not under expert review")
	ErrReviewWindowNotValid    = errors.New("review window not valid")
	ErrReviewStillInProgress   = errors.New("expert review still in progress")
	ErrInvalidUpload           = errors.New("invalid upload input")
	ErrOverflow                = errors.New("counter overflow")

	// Ballot failures surfaced through the vote-engine collaborator. The
	// adapter wiring that collaborator translates into these sentinels so
	// callers of this module see one error vocabulary.
	ErrVoteNotFound         = errors.New("vote not found")
	ErrVoteNotInProgress    = errors.New("vote not in progress")
	ErrVotingWindowNotValid = errors.New("voting window not valid")
	ErrVoteStillInProgress  = errors.New("vote still in progress")
	ErrAlreadyVoted         = errors.New("account already voted on this ballot")
)
