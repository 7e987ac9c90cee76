package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/kirinyoku/tix-console/internal/domain"
	"github.com/kirinyoku/tix-console/internal/repository"
	"github.com/kirinyoku/tix-console/internal/repository/memory"
)

type Service struct {
	store *memory.Store
}

func New(store *memory.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Event(_ context.Context) domain.Event {
	return s.store.Event()
}

// SeatMap returns the seats of the event grouped by row, front row first.
func (s *Service) SeatMap(_ context.Context) [][]domain.Seat {
	ev := s.store.Event()
	seats := s.store.Seats().List()

	rows := make([][]domain.Seat, 0, ev.Rows)
	for r := 0; r < ev.Rows; r++ {
		rows = append(rows, seats[r*ev.Cols:(r+1)*ev.Cols])
	}
	return rows
}

// Seat looks up a seat by label.
//
// Parameters:
//   - ctx: request-scoped context.
//   - label: seat label such as "B7", letter case ignored.
//
// Returns:
//   - domain.Seat: the seat with its current status.
//   - error: query.ErrSeatNotFound if the label does not name a seat of the event.
func (s *Service) Seat(_ context.Context, label string) (domain.Seat, error) {
	const op = "service.query.Seat"

	seats := s.store.Seats()

	idx, err := seats.FindIndex(label)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return domain.Seat{}, fmt.Errorf("%s: %w", op, ErrSeatNotFound)
		}
		return domain.Seat{}, fmt.Errorf("%s: %w", op, err)
	}

	seat, err := seats.Get(idx)
	if err != nil {
		return domain.Seat{}, fmt.Errorf("%s: %w", op, ErrSeatNotFound)
	}

	return seat, nil
}

// Bookings lists live bookings with their seats, most recent first.
func (s *Service) Bookings(_ context.Context) ([]domain.BookingWithSeats, error) {
	const op = "service.query.Bookings"

	bookings := s.store.Bookings().List()
	out := make([]domain.BookingWithSeats, 0, len(bookings))

	for _, b := range bookings {
		seats, err := s.store.Seats().GetMany(b.SeatIndices)
		if err != nil {
			return nil, fmt.Errorf("%s: booking %d: %w", op, b.ID, err)
		}
		out = append(out, domain.BookingWithSeats{Booking: b, Seats: seats})
	}

	return out, nil
}

// Booking retrieves one booking with its seats.
//
// Returns:
//   - *domain.BookingWithSeats: the booking, or nil if not found.
//   - error: query.ErrBookingNotFound if no live booking has id.
func (s *Service) Booking(_ context.Context, id int64) (*domain.BookingWithSeats, error) {
	const op = "service.query.Booking"

	b, err := s.store.Bookings().Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrBookingNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seats, err := s.store.Seats().GetMany(b.SeatIndices)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &domain.BookingWithSeats{Booking: b, Seats: seats}, nil
}

// Availability counts seats by status; Available + Reserved always equals Total.
func (s *Service) Availability(_ context.Context) domain.EventCounts {
	return s.store.Seats().Counts()
}
