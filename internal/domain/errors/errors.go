package errors

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrDuplicateOrder     = errors.New("order already exists")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrMissingField       = errors.New("missing required field")
	ErrVerificationFailed = errors.New("callback verification failed")
	ErrAlreadySettled     = errors.New("order already settled")
	ErrStoreUnavailable   = errors.New("order store unavailable")
)
