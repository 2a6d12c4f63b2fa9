package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrNotConfirmed = errors.New("booking is not in CONFIRMED status")

	ErrNoCapacity = errors.New("no units left for the requested dates")
)
