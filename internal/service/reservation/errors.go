package reservation

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyName        = errors.New("customer name is empty")
	ErrNoSeats          = errors.New("no seats entered")
	ErrTooManySeats     = errors.New("too many seats")
	ErrInvalidSeatLabel = errors.New("invalid seat label")
	ErrDuplicateSeat    = errors.New("duplicate seat in selection")
	ErrSeatsTaken       = errors.New("seats already reserved")
	ErrInvalidSelection = errors.New("invalid seat selection")
	ErrPaymentFailed    = errors.New("payment failed")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrRefundFailed     = errors.New("refund failed")
)

type InvalidSeatLabelError struct {
	Label string
}

func (e InvalidSeatLabelError) Error() string {
	return fmt.Sprintf("invalid seat label: %s", e.Label)
}

func (e InvalidSeatLabelError) Unwrap() error { return ErrInvalidSeatLabel }

type DuplicateSeatError struct {
	Label string
}

func (e DuplicateSeatError) Error() string {
	return fmt.Sprintf("duplicate seat %s in selection", e.Label)
}

func (e DuplicateSeatError) Unwrap() error { return ErrDuplicateSeat }

type BookingNotFoundError struct {
	BookingID int64
}

func (e BookingNotFoundError) Error() string {
	return fmt.Sprintf("booking not found: %d", e.BookingID)
}

func (e BookingNotFoundError) Unwrap() error { return ErrBookingNotFound }

// StageError records the workflow stage at which a booking was aborted.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("booking aborted while %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func abort(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
