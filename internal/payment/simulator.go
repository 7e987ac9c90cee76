package payment

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Method int

const (
	MethodCard Method = iota + 1
	MethodUPI
	MethodNetbanking
)

func (m Method) String() string {
	switch m {
	case MethodCard:
		return "card"
	case MethodUPI:
		return "upi"
	case MethodNetbanking:
		return "netbanking"
	default:
		return "unknown"
	}
}

// MethodFromChoice maps a menu choice to a method. Anything other than 1 or 2
// falls through to netbanking.
func MethodFromChoice(choice int) Method {
	switch choice {
	case 1:
		return MethodCard
	case 2:
		return MethodUPI
	default:
		return MethodNetbanking
	}
}

type ChargeRequest struct {
	Amount decimal.Decimal
	Method Method
}

type RefundRequest struct {
	Amount    decimal.Decimal
	BookingID int64
}

type Receipt struct {
	TransactionID uuid.UUID
	Amount        decimal.Decimal
	Method        Method
	ProcessedAt   time.Time
}

type Config struct {
	Steps             int
	StepDelay         time.Duration
	SuccessRate       float64
	RefundFailureRate float64
}

// Simulator pretends to talk to a payment gateway: it blocks for a fixed
// number of steps and then lets a Decider pick the outcome.
type Simulator struct {
	cfg      Config
	decider  Decider
	sleep    func(time.Duration)
	progress io.Writer
	now      func() time.Time
}

type Option func(*Simulator)

func WithDecider(d Decider) Option {
	return func(s *Simulator) {
		if d != nil {
			s.decider = d
		}
	}
}

// WithSleep replaces time.Sleep, mostly so tests do not wait.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *Simulator) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

// WithProgress sets where the processing dots are written.
func WithProgress(w io.Writer) Option {
	return func(s *Simulator) {
		if w != nil {
			s.progress = w
		}
	}
}

func WithNow(now func() time.Time) Option {
	return func(s *Simulator) {
		if now != nil {
			s.now = now
		}
	}
}

func NewSimulator(cfg Config, opts ...Option) *Simulator {
	if cfg.Steps < 0 {
		cfg.Steps = 0
	}

	s := &Simulator{
		cfg:      cfg,
		decider:  NewClockSeededDecider(),
		sleep:    time.Sleep,
		progress: io.Discard,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Charge simulates taking a payment. The processing delay is not interrupted
// by ctx once it has started.
//
// Returns:
//   - Receipt: transaction details when the charge succeeds.
//   - error: payment.ErrDeclined if the simulated gateway declines.
//   - error: payment.ErrInvalidAmount for non-positive amounts.
func (s *Simulator) Charge(ctx context.Context, req ChargeRequest) (Receipt, error) {
	const op = "payment.Simulator.Charge"

	if err := ctx.Err(); err != nil {
		return Receipt{}, fmt.Errorf("%s:%w", op, err)
	}

	if !req.Amount.IsPositive() {
		return Receipt{}, fmt.Errorf("%s:%w", op, ErrInvalidAmount)
	}

	s.process("Processing")

	if !s.decider.Decide(s.cfg.SuccessRate) {
		return Receipt{}, fmt.Errorf("%s: %s %s:%w", op, req.Method, req.Amount.StringFixed(2), ErrDeclined)
	}

	return Receipt{
		TransactionID: uuid.New(),
		Amount:        req.Amount,
		Method:        req.Method,
		ProcessedAt:   s.now(),
	}, nil
}

// Refund simulates returning money for a booking.
//
// Returns:
//   - Receipt: refund details when the refund succeeds.
//   - error: payment.ErrRefundFailed if the simulated gateway errors.
func (s *Simulator) Refund(ctx context.Context, req RefundRequest) (Receipt, error) {
	const op = "payment.Simulator.Refund"

	if err := ctx.Err(); err != nil {
		return Receipt{}, fmt.Errorf("%s:%w", op, err)
	}

	s.process("Refund processing")

	if !s.decider.Decide(1 - s.cfg.RefundFailureRate) {
		return Receipt{}, fmt.Errorf("%s: booking %d:%w", op, req.BookingID, ErrRefundFailed)
	}

	return Receipt{
		TransactionID: uuid.New(),
		Amount:        req.Amount,
		ProcessedAt:   s.now(),
	}, nil
}

func (s *Simulator) process(label string) {
	fmt.Fprint(s.progress, label)
	for i := 0; i < s.cfg.Steps; i++ {
		fmt.Fprint(s.progress, ".")
		s.sleep(s.cfg.StepDelay)
	}
	fmt.Fprintln(s.progress)
}
