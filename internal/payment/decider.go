package payment

import (
	"math/rand/v2"
	"time"
)

// Decider decides whether a simulated gateway call succeeds, given the
// probability of success.
type Decider interface {
	Decide(probability float64) bool
}

type DeciderFunc func(probability float64) bool

func (f DeciderFunc) Decide(probability float64) bool { return f(probability) }

// Always returns a Decider with a fixed outcome.
func Always(ok bool) Decider {
	return DeciderFunc(func(float64) bool { return ok })
}

type randomDecider struct {
	rng *rand.Rand
}

// NewRandomDecider returns a pseudo-random Decider seeded with seed.
func NewRandomDecider(seed uint64) Decider {
	return &randomDecider{rng: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

// NewClockSeededDecider seeds a random Decider from the wall clock.
func NewClockSeededDecider() Decider {
	return NewRandomDecider(uint64(time.Now().UnixNano()))
}

func (d *randomDecider) Decide(probability float64) bool {
	return d.rng.Float64() < probability
}
