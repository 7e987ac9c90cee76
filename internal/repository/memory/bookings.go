package memory

import (
	"fmt"
	"slices"

	"github.com/kirinyoku/tix-console/internal/domain"
	"github.com/kirinyoku/tix-console/internal/repository"
)

type BookingRepo struct {
	store *Store
}

// Insert records a booking for seats that are already reserved and assigns it
// the next booking id.
//
// Returns:
//   - domain.Booking: the stored booking with its ID set.
//   - error: repository.ErrInvalidSelection if the seat list is empty, repeats a seat or leaves the grid.
//   - error: repository.ErrConflict if a seat is not reserved or belongs to another booking.
func (r *BookingRepo) Insert(b domain.Booking) (domain.Booking, error) {
	const op = "memory.BookingRepo.Insert"

	if len(b.SeatIndices) == 0 {
		return domain.Booking{}, fmt.Errorf("%s: no seats: %w", op, repository.ErrInvalidSelection)
	}

	seen := make(map[int]struct{}, len(b.SeatIndices))
	for _, idx := range b.SeatIndices {
		if idx < 0 || idx >= len(r.store.seats) {
			return domain.Booking{}, fmt.Errorf("%s: index %d: %w", op, idx, repository.ErrInvalidSelection)
		}
		if _, dup := seen[idx]; dup {
			return domain.Booking{}, fmt.Errorf("%s: seat %s repeated: %w", op, r.store.seats[idx].Label, repository.ErrInvalidSelection)
		}
		seen[idx] = struct{}{}

		if r.store.seats[idx].Status != domain.SeatReserved {
			return domain.Booking{}, fmt.Errorf("%s: seat %s not reserved: %w", op, r.store.seats[idx].Label, repository.ErrConflict)
		}
	}

	for _, existing := range r.store.bookings {
		for _, idx := range existing.SeatIndices {
			if _, ok := seen[idx]; ok {
				return domain.Booking{}, fmt.Errorf("%s: seat %s held by booking %d: %w",
					op, r.store.seats[idx].Label, existing.ID, repository.ErrConflict)
			}
		}
	}

	b.ID = r.store.nextBookingID
	b.SeatIndices = slices.Clone(b.SeatIndices)
	r.store.nextBookingID++
	r.store.bookings = append(r.store.bookings, b)

	return b, nil
}

func (r *BookingRepo) Get(id int64) (domain.Booking, error) {
	const op = "memory.BookingRepo.Get"

	i := r.find(id)
	if i < 0 {
		return domain.Booking{}, fmt.Errorf("%s: booking %d: %w", op, id, repository.ErrNotFound)
	}

	b := r.store.bookings[i]
	b.SeatIndices = slices.Clone(b.SeatIndices)
	return b, nil
}

func (r *BookingRepo) Delete(id int64) error {
	const op = "memory.BookingRepo.Delete"

	i := r.find(id)
	if i < 0 {
		return fmt.Errorf("%s: booking %d: %w", op, id, repository.ErrNotFound)
	}

	r.store.bookings = slices.Delete(r.store.bookings, i, i+1)
	return nil
}

// List returns live bookings, most recent first.
func (r *BookingRepo) List() []domain.Booking {
	out := make([]domain.Booking, 0, len(r.store.bookings))
	for i := len(r.store.bookings) - 1; i >= 0; i-- {
		b := r.store.bookings[i]
		b.SeatIndices = slices.Clone(b.SeatIndices)
		out = append(out, b)
	}
	return out
}

func (r *BookingRepo) Len() int { return len(r.store.bookings) }

// NextID is the id the next inserted booking will get.
func (r *BookingRepo) NextID() int64 { return r.store.nextBookingID }

func (r *BookingRepo) find(id int64) int {
	return slices.IndexFunc(r.store.bookings, func(b domain.Booking) bool {
		return b.ID == id
	})
}
