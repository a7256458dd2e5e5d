package errors

import "errors"

var (
	ErrTokenAlreadyExists   = errors.New("token already exists")
	ErrTokenDoesNotExist    = errors.New("token does not exist")
	ErrZeroAmount           = errors.New("amount must be positive")
	ErrSameAddress          = errors.New("sender and recipient are the same")
	ErrInsufficientBalance  = errors.New("insufficient balance for transfer")
	ErrNotAllowedToTransfer = errors.New("caller not allowed to transfer")
	ErrSelfApproval         = errors.New("cannot set approval for self")
	ErrLengthMismatch       = errors.New("recipients and amounts differ in length")
	ErrInvalidAccount       = errors.New("invalid account identity")
	ErrOverflow             = errors.New("counter overflow")
)
