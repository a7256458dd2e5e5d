package errors

import "errors"

var (
	ErrAlreadyMember  = errors.New("member already exists")
	ErrNotAMember     = errors.New("not a member")
	ErrNotAuthorized  = errors.New("caller is not authorized")
	ErrInvalidAccount = errors.New("invalid account id")
	ErrOverflow       = errors.New("counter overflow")
)
