package errors

import "errors"

var (
	ErrApplicationNotFound        = errors.New("application not found")
	ErrNotAMember                 = errors.New("caller is not a member")
	ErrWrongRoleApplied           = errors.New("role cannot be applied for")
	ErrNotEligibleForVerifierRole = errors.New("not eligible for verifier role")
	ErrNotEligibleForExpertRole   = errors.New("not eligible for expert role")
	ErrWrongVoteType              = errors.New("wrong vote type")
	ErrNotEligibleToVerify        = errors.New("not eligible to verify")
	ErrNotAnExpert                = errors.New("not an expert")
	ErrOverflow                   = errors.New("counter overflow")

	// Ballot failures surfaced through the vote-engine collaborator. The
	// adapter wiring that collaborator translates into these sentinels so
	// callers of this module see one error vocabulary.
	ErrVoteNotFound         = errors.New("vote not found")
	ErrVoteNotInProgress    = errors.New("vote not in progress")
	ErrVotingWindowNotValid = errors.New("voting window not valid")
	ErrVoteStillInProgress  = errors.New("vote still in progress")
	ErrAlreadyVoted         = errors.New("account already voted on this ballot")
)
