package errors

import "errors"

var (
	ErrVoteNotFound         = errors.New("vote not found")
	ErrVoteNotInProgress    = errors.New("vote not in progress")
	ErrVotingWindowNotValid = errors.New("voting window not valid")
	ErrVoteStillInProgress  = errors.New("vote still in progress")
	ErrAlreadyVoted         = errors.New("account already voted in this ballot")
	ErrUnknownBallotType    = errors.New("unknown ballot type")
	ErrOverflow             = errors.New("counter overflow")
)
