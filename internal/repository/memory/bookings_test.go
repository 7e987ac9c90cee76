package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/tix-console/internal/domain"
	"github.com/kirinyoku/tix-console/internal/repository"
)

func reserveAndInsert(t *testing.T, s *Store, name string, indices ...int) domain.Booking {
	t.Helper()

	require.NoError(t, s.Seats().Reserve(indices))
	b, err := s.Bookings().Insert(domain.Booking{
		CustomerName: name,
		SeatIndices:  indices,
		AmountPaid:   decimal.NewFromInt(100),
		BookedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)
	return b
}

func TestBookingRepo_InsertAssignsIncreasingIDs(t *testing.T) {
	s := newTestStore(t, 2, 3)

	first := reserveAndInsert(t, s, "Alice", 0)
	second := reserveAndInsert(t, s, "Bob", 1, 2)

	assert.Equal(t, int64(1001), first.ID)
	assert.Equal(t, int64(1002), second.ID)
	assert.Equal(t, int64(1003), s.Bookings().NextID())

	require.NoError(t, s.Bookings().Delete(second.ID))
	third := reserveAndInsert(t, s, "Carol", 3)
	assert.Equal(t, int64(1003), third.ID, "ids are never reused")
}

func TestBookingRepo_InsertRejects(t *testing.T) {
	s := newTestStore(t, 2, 2)
	existing := reserveAndInsert(t, s, "Alice", 0)
	require.NoError(t, s.Seats().Reserve([]int{1}))

	tests := []struct {
		name    string
		indices []int
		want    error
	}{
		{"no seats", nil, repository.ErrInvalidSelection},
		{"out of range", []int{7}, repository.ErrInvalidSelection},
		{"duplicate", []int{1, 1}, repository.ErrInvalidSelection},
		{"seat not reserved", []int{2}, repository.ErrConflict},
		{"seat of another booking", []int{1, existing.SeatIndices[0]}, repository.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Bookings().Insert(domain.Booking{SeatIndices: tt.indices})
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 1, s.Bookings().Len())
			assert.Equal(t, int64(1002), s.Bookings().NextID())
		})
	}
}

func TestBookingRepo_GetAndDelete(t *testing.T) {
	s := newTestStore(t, 2, 2)
	b := reserveAndInsert(t, s, "Alice", 0, 1)

	got, err := s.Bookings().Get(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.CustomerName)
	assert.Equal(t, []int{0, 1}, got.SeatIndices)

	got.SeatIndices[0] = 3
	again, err := s.Bookings().Get(b.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, again.SeatIndices, "callers get copies")

	require.NoError(t, s.Bookings().Delete(b.ID))

	_, err = s.Bookings().Get(b.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, s.Bookings().Delete(b.ID), repository.ErrNotFound)
}

func TestBookingRepo_ListMostRecentFirst(t *testing.T) {
	s := newTestStore(t, 2, 2)
	assert.Empty(t, s.Bookings().List())

	reserveAndInsert(t, s, "Alice", 0)
	reserveAndInsert(t, s, "Bob", 1)
	reserveAndInsert(t, s, "Carol", 2)

	var names []string
	for _, b := range s.Bookings().List() {
		names = append(names, b.CustomerName)
	}
	assert.Equal(t, []string{"Carol", "Bob", "Alice"}, names)
}

func TestStore_RunTx(t *testing.T) {
	t.Run("keeps changes on success", func(t *testing.T) {
		s := newTestStore(t, 2, 2)

		err := s.RunTx(context.Background(), func(ctx context.Context) error {
			reserveAndInsert(t, s, "Alice", 0)
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, s.Bookings().Len())
		assert.Equal(t, 1, s.Seats().Counts().Reserved)
	})

	t.Run("restores state on error", func(t *testing.T) {
		s := newTestStore(t, 2, 2)
		kept := reserveAndInsert(t, s, "Alice", 0)
		boom := errors.New("boom")

		err := s.RunTx(context.Background(), func(ctx context.Context) error {
			reserveAndInsert(t, s, "Bob", 1, 2)
			s.Seats().Release([]int{0})
			require.NoError(t, s.Bookings().Delete(kept.ID))
			return boom
		})

		require.ErrorIs(t, err, boom)
		assert.Equal(t, []domain.SeatStatus{
			domain.SeatReserved, domain.SeatAvailable, domain.SeatAvailable, domain.SeatAvailable,
		}, statuses(s))

		got, err := s.Bookings().Get(kept.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice", got.CustomerName)
		assert.Equal(t, int64(1002), s.Bookings().NextID())
	})

	t.Run("cancelled context runs nothing", func(t *testing.T) {
		s := newTestStore(t, 2, 2)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		err := s.RunTx(ctx, func(ctx context.Context) error {
			called = true
			return nil
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}
