package query

import (
	"errors"
)

var (
	ErrSeatNotFound    = errors.New("seat not found")
	ErrBookingNotFound = errors.New("booking not found")
)
