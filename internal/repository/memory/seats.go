package memory

import (
	"fmt"

	"github.com/kirinyoku/tix-console/internal/domain"
	"github.com/kirinyoku/tix-console/internal/repository"
)

type SeatRepo struct {
	store *Store
}

// FindIndex resolves a label such as "a3" to its seat index.
//
// Returns:
//   - int: index of the seat in the grid.
//   - error: repository.ErrSeatNotFound if the label is malformed or outside the grid.
func (r *SeatRepo) FindIndex(label string) (int, error) {
	const op = "memory.SeatRepo.FindIndex"

	ev := r.store.event

	row, number, ok := domain.ParseSeatLabel(label)
	if !ok || row >= ev.Rows || number > ev.Cols {
		return -1, fmt.Errorf("%s: %q: %w", op, label, repository.ErrSeatNotFound)
	}

	return row*ev.Cols + (number - 1), nil
}

func (r *SeatRepo) Get(idx int) (domain.Seat, error) {
	const op = "memory.SeatRepo.Get"

	if !r.valid(idx) {
		return domain.Seat{}, fmt.Errorf("%s: index %d: %w", op, idx, repository.ErrSeatNotFound)
	}

	return r.store.seats[idx], nil
}

// GetMany returns the seats at indices in the given order.
func (r *SeatRepo) GetMany(indices []int) ([]domain.Seat, error) {
	seats := make([]domain.Seat, 0, len(indices))
	for _, idx := range indices {
		s, err := r.Get(idx)
		if err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, nil
}

func (r *SeatRepo) List() []domain.Seat {
	out := make([]domain.Seat, len(r.store.seats))
	copy(out, r.store.seats)
	return out
}

// Reserve marks every seat in indices as reserved, or none of them.
//
// Returns:
//   - error: repository.ErrInvalidSelection if indices is empty or holds an index outside the grid.
//   - error: repository.SeatsUnavailableError (is repository.ErrSeatsUnavailable) if any seat is already reserved.
func (r *SeatRepo) Reserve(indices []int) error {
	const op = "memory.SeatRepo.Reserve"

	if len(indices) == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrInvalidSelection)
	}

	for _, idx := range indices {
		if !r.valid(idx) {
			return fmt.Errorf("%s: index %d: %w", op, idx, repository.ErrInvalidSelection)
		}
	}

	var taken []string
	for _, idx := range indices {
		if !r.store.seats[idx].Available() {
			taken = append(taken, r.store.seats[idx].Label)
		}
	}
	if len(taken) > 0 {
		return fmt.Errorf("%s: %w", op, repository.SeatsUnavailableError{Labels: taken})
	}

	for _, idx := range indices {
		r.store.seats[idx].Status = domain.SeatReserved
	}

	return nil
}

// Release marks seats as available again. Indices outside the grid are skipped.
func (r *SeatRepo) Release(indices []int) {
	for _, idx := range indices {
		if r.valid(idx) {
			r.store.seats[idx].Status = domain.SeatAvailable
		}
	}
}

func (r *SeatRepo) Counts() domain.EventCounts {
	counts := domain.EventCounts{Total: len(r.store.seats)}
	for _, s := range r.store.seats {
		if s.Available() {
			counts.Available++
		} else {
			counts.Reserved++
		}
	}
	return counts
}

func (r *SeatRepo) valid(idx int) bool {
	return idx >= 0 && idx < len(r.store.seats)
}
