package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/tix-console/internal/domain"
	"github.com/kirinyoku/tix-console/internal/repository"
)

func newTestStore(t *testing.T, rows, cols int) *Store {
	t.Helper()

	s, err := NewStore(domain.Event{Name: "Test Night", Rows: rows, Cols: cols})
	require.NoError(t, err)
	return s
}

func statuses(s *Store) []domain.SeatStatus {
	out := make([]domain.SeatStatus, 0, len(s.seats))
	for _, seat := range s.seats {
		out = append(out, seat.Status)
	}
	return out
}

func TestNewStore(t *testing.T) {
	s := newTestStore(t, 4, 10)

	seats := s.Seats().List()
	require.Len(t, seats, 40)

	for i, seat := range seats {
		assert.Equal(t, i, seat.Index)
		assert.Equal(t, domain.SeatAvailable, seat.Status)
	}

	assert.Equal(t, "A1", seats[0].Label)
	assert.Equal(t, "A10", seats[9].Label)
	assert.Equal(t, "B1", seats[10].Label)
	assert.Equal(t, "D10", seats[39].Label)
	assert.Equal(t, "145.00", seats[0].Price.StringFixed(2))
	assert.Equal(t, "100.00", seats[39].Price.StringFixed(2))
	assert.Equal(t, FirstBookingID, s.Bookings().NextID())
}

func TestNewStore_RejectsBadDimensions(t *testing.T) {
	for _, ev := range []domain.Event{
		{Rows: 0, Cols: 10},
		{Rows: 4, Cols: 0},
		{Rows: 27, Cols: 1},
		{Rows: 1, Cols: 100},
	} {
		_, err := NewStore(ev)
		assert.Error(t, err, "rows=%d cols=%d", ev.Rows, ev.Cols)
	}
}

func TestSeatRepo_FindIndexRoundTrip(t *testing.T) {
	s := newTestStore(t, 4, 10)
	repo := s.Seats()

	for _, seat := range repo.List() {
		idx, err := repo.FindIndex(seat.Label)
		require.NoError(t, err)

		got, err := repo.Get(idx)
		require.NoError(t, err)
		assert.Equal(t, seat.Label, got.Label)
		assert.Equal(t, seat.Row*10+seat.Number-1, idx)
	}
}

func TestSeatRepo_FindIndex(t *testing.T) {
	s := newTestStore(t, 4, 10)

	tests := []struct {
		label string
		want  int
		err   bool
	}{
		{label: "A1", want: 0},
		{label: "a1", want: 0},
		{label: "d10", want: 39},
		{label: "C5", want: 24},
		{label: "E1", err: true},
		{label: "Z9", err: true},
		{label: "A11", err: true},
		{label: "A0", err: true},
		{label: "A", err: true},
		{label: "", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			idx, err := s.Seats().FindIndex(tt.label)
			if tt.err {
				assert.ErrorIs(t, err, repository.ErrSeatNotFound)
				assert.Equal(t, -1, idx)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, idx)
		})
	}
}

func TestSeatRepo_Reserve(t *testing.T) {
	t.Run("reserves every seat", func(t *testing.T) {
		s := newTestStore(t, 2, 2)

		require.NoError(t, s.Seats().Reserve([]int{0, 3}))

		assert.Equal(t, []domain.SeatStatus{
			domain.SeatReserved, domain.SeatAvailable, domain.SeatAvailable, domain.SeatReserved,
		}, statuses(s))
	})

	t.Run("conflict reserves nothing", func(t *testing.T) {
		s := newTestStore(t, 2, 2)
		require.NoError(t, s.Seats().Reserve([]int{1}))
		before := statuses(s)

		err := s.Seats().Reserve([]int{0, 1, 2})

		require.ErrorIs(t, err, repository.ErrSeatsUnavailable)
		var unavailable repository.SeatsUnavailableError
		require.True(t, errors.As(err, &unavailable))
		assert.Equal(t, []string{"A2"}, unavailable.Labels)
		assert.Equal(t, before, statuses(s))
	})

	t.Run("out of range index is invalid", func(t *testing.T) {
		s := newTestStore(t, 2, 2)

		err := s.Seats().Reserve([]int{0, 4})

		assert.ErrorIs(t, err, repository.ErrInvalidSelection)
		assert.NotContains(t, statuses(s), domain.SeatReserved)
	})

	t.Run("invalid index wins over conflict", func(t *testing.T) {
		s := newTestStore(t, 2, 2)
		require.NoError(t, s.Seats().Reserve([]int{0}))

		err := s.Seats().Reserve([]int{0, -1})

		assert.ErrorIs(t, err, repository.ErrInvalidSelection)
		assert.NotErrorIs(t, err, repository.ErrSeatsUnavailable)
	})

	t.Run("empty selection is invalid", func(t *testing.T) {
		s := newTestStore(t, 2, 2)
		assert.ErrorIs(t, s.Seats().Reserve(nil), repository.ErrInvalidSelection)
	})
}

func TestSeatRepo_Release(t *testing.T) {
	s := newTestStore(t, 2, 2)
	require.NoError(t, s.Seats().Reserve([]int{0, 1, 2}))

	s.Seats().Release([]int{0, 2, 99, -5})
	s.Seats().Release([]int{0})

	assert.Equal(t, []domain.SeatStatus{
		domain.SeatAvailable, domain.SeatReserved, domain.SeatAvailable, domain.SeatAvailable,
	}, statuses(s))
}

func TestSeatRepo_Counts(t *testing.T) {
	s := newTestStore(t, 4, 10)
	require.NoError(t, s.Seats().Reserve([]int{0, 1, 2, 39}))

	c := s.Seats().Counts()

	assert.Equal(t, domain.EventCounts{Available: 36, Reserved: 4, Total: 40}, c)
	assert.Equal(t, c.Total, c.Available+c.Reserved)
}
