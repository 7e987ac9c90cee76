package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/kirinyoku/tix-console/internal/domain"
)

// FirstBookingID is the id given to the first booking of an event.
const FirstBookingID int64 = 1001

// Store keeps the seat grid and booking ledger of one event in memory.
// It is not safe for concurrent use; the console is its only writer.
type Store struct {
	event         domain.Event
	seats         []domain.Seat
	bookings      []domain.Booking
	nextBookingID int64
}

func NewStore(event domain.Event) (*Store, error) {
	const op = "memory.NewStore"

	if event.Rows < 1 || event.Rows > domain.MaxRows {
		return nil, fmt.Errorf("%s: rows must be between 1 and %d, got %d", op, domain.MaxRows, event.Rows)
	}

	if event.Cols < 1 || event.Cols > domain.MaxCols {
		return nil, fmt.Errorf("%s: cols must be between 1 and %d, got %d", op, domain.MaxCols, event.Cols)
	}

	seats := make([]domain.Seat, 0, event.SeatCount())
	for r := 0; r < event.Rows; r++ {
		price := domain.SeatPrice(event.Rows, r)
		for c := 0; c < event.Cols; c++ {
			seats = append(seats, domain.Seat{
				Index:  r*event.Cols + c,
				Row:    r,
				Number: c + 1,
				Label:  domain.SeatLabel(r, c),
				Price:  price,
				Status: domain.SeatAvailable,
			})
		}
	}

	return &Store{
		event:         event,
		seats:         seats,
		nextBookingID: FirstBookingID,
	}, nil
}

func (s *Store) Event() domain.Event { return s.event }

func (s *Store) Seats() *SeatRepo       { return &SeatRepo{store: s} }
func (s *Store) Bookings() *BookingRepo { return &BookingRepo{store: s} }

type snapshot struct {
	seats         []domain.Seat
	bookings      []domain.Booking
	nextBookingID int64
}

func (s *Store) snapshot() snapshot {
	bookings := make([]domain.Booking, len(s.bookings))
	for i, b := range s.bookings {
		b.SeatIndices = slices.Clone(b.SeatIndices)
		bookings[i] = b
	}

	return snapshot{
		seats:         slices.Clone(s.seats),
		bookings:      bookings,
		nextBookingID: s.nextBookingID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.seats = snap.seats
	s.bookings = snap.bookings
	s.nextBookingID = snap.nextBookingID
}

// RunTx runs fn and restores seats, ledger and id counter to their state
// before the call when fn returns an error.
func (s *Store) RunTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snap := s.snapshot()

	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}

	return nil
}
