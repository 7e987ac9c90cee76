package uow

import (
	"context"

	"github.com/kirinyoku/tix-console/internal/repository/memory"
)

// AfterCommit is a function that runs after fn of a unit of work succeeded.
type AfterCommit func(ctx context.Context)

// UoW represents a unit of work over the in-memory store.
type UoW struct {
	store *memory.Store
}

func NewUoW(store *memory.Store) *UoW {
	return &UoW{store: store}
}

// Do runs fn inside a store transaction. If fn fails, every change it made to
// seats and bookings is undone and no hook runs. After success it executes
// all after-commit hooks in registration order.
func (u *UoW) Do(
	ctx context.Context,
	fn func(ctx context.Context, after func(AfterCommit)) error,
) error {
	var hooks []AfterCommit

	err := u.store.RunTx(ctx, func(ctx context.Context) error {
		return fn(ctx, func(h AfterCommit) {
			hooks = append(hooks, h)
		})
	})
	if err != nil {
		return err
	}

	for _, h := range hooks {
		h(ctx)
	}

	return nil
}
