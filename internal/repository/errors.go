package repository

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrSeatNotFound     = errors.New("seat not found")
	ErrSeatsUnavailable = errors.New("some seats unavailable")
	ErrInvalidSelection = errors.New("invalid selection")
)

// SeatsUnavailableError lists the seats that blocked a reservation.
type SeatsUnavailableError struct {
	Labels []string
}

func (e SeatsUnavailableError) Error() string {
	return fmt.Sprintf("seats unavailable: %s", strings.Join(e.Labels, " "))
}

func (e SeatsUnavailableError) Unwrap() error {
	return ErrSeatsUnavailable
}
