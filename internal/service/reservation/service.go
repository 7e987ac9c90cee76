package reservation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kirinyoku/tix-console/internal/clock"
	"github.com/kirinyoku/tix-console/internal/domain"
	"github.com/kirinyoku/tix-console/internal/metrics"
	"github.com/kirinyoku/tix-console/internal/payment"
	"github.com/kirinyoku/tix-console/internal/repository"
	"github.com/kirinyoku/tix-console/internal/repository/memory"
	"github.com/kirinyoku/tix-console/internal/uow"
)

const defaultMaxSeats = 200

type Config struct {
	MaxSeatsPerBooking int
}

// Gateway takes and returns money for bookings.
type Gateway interface {
	Charge(ctx context.Context, req payment.ChargeRequest) (payment.Receipt, error)
	Refund(ctx context.Context, req payment.RefundRequest) (payment.Receipt, error)
}

// MethodChooser asks the customer how they want to pay amount.
type MethodChooser func(ctx context.Context, amount decimal.Decimal) (payment.Method, error)

type Service struct {
	store   *memory.Store
	uow     *uow.UoW
	gateway Gateway
	metrics *metrics.Metrics
	clock   clock.Clock
	logger  *slog.Logger
	cfg     Config
}

func New(
	store *memory.Store,
	gateway Gateway,
	m *metrics.Metrics,
	clk clock.Clock,
	logger *slog.Logger,
	cfg Config,
) *Service {
	if cfg.MaxSeatsPerBooking <= 0 {
		cfg.MaxSeatsPerBooking = defaultMaxSeats
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Service{
		store:   store,
		uow:     uow.NewUoW(store),
		gateway: gateway,
		metrics: m,
		clock:   clk,
		logger:  logger,
		cfg:     cfg,
	}
}

// MaxSeats is the largest number of seats one booking may hold.
func (s *Service) MaxSeats() int {
	return s.cfg.MaxSeatsPerBooking
}

// ValidateCustomerName rejects names that are empty or only whitespace.
func ValidateCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Select validates the customer details and the seat line and prices the
// selection. It does not change any state.
//
// Parameters:
//   - ctx: request-scoped context.
//   - in: customer details and the raw seat line.
//
// Returns:
//   - *Selection: the chosen seats with their total.
//   - error: a *StageError wrapping ErrEmptyName, ErrNoSeats, ErrTooManySeats,
//     InvalidSeatLabelError or DuplicateSeatError.
func (s *Service) Select(ctx context.Context, in SelectInput) (*Selection, error) {
	const op = "service.reservation.Select"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := ValidateCustomerName(in.CustomerName); err != nil {
		return nil, s.reject(op, abort(StageCollectingCustomer, err))
	}

	labels := SplitSeatLabels(in.Seats)
	if len(labels) == 0 {
		return nil, s.reject(op, abort(StageSelectingSeats, ErrNoSeats))
	}

	if len(labels) > s.cfg.MaxSeatsPerBooking {
		return nil, s.reject(op, abort(StageSelectingSeats,
			fmt.Errorf("%d seats, at most %d: %w", len(labels), s.cfg.MaxSeatsPerBooking, ErrTooManySeats)))
	}

	seatRepo := s.store.Seats()
	seen := make(map[int]struct{}, len(labels))
	seats := make([]domain.Seat, 0, len(labels))

	for _, label := range labels {
		idx, err := seatRepo.FindIndex(label)
		if err != nil {
			return nil, s.reject(op, abort(StageSelectingSeats, InvalidSeatLabelError{Label: label}))
		}

		seat, err := seatRepo.Get(idx)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}

		if _, dup := seen[idx]; dup {
			return nil, s.reject(op, abort(StageSelectingSeats, DuplicateSeatError{Label: seat.Label}))
		}
		seen[idx] = struct{}{}

		seats = append(seats, seat)
	}

	return &Selection{
		CustomerName: strings.TrimSpace(in.CustomerName),
		Phone:        strings.TrimSpace(in.Phone),
		Seats:        seats,
		Total:        domain.Total(seats),
	}, nil
}

// Book reserves the selected seats, takes payment and records the booking.
// If payment fails the seats are released and nothing is recorded.
//
// Parameters:
//   - ctx: request-scoped context.
//   - sel: selection returned by Select.
//   - choose: asks the customer for a payment method once the seats are held.
//
// Returns:
//   - domain.Booking: the recorded booking.
//   - error: a *StageError wrapping ErrSeatsTaken, ErrInvalidSelection or ErrPaymentFailed.
func (s *Service) Book(ctx context.Context, sel *Selection, choose MethodChooser) (domain.Booking, error) {
	const op = "service.reservation.Book"

	if sel == nil || len(sel.Seats) == 0 {
		return domain.Booking{}, s.reject(op, abort(StageReserving, ErrInvalidSelection))
	}

	indices := sel.Indices()
	var booking domain.Booking

	err := s.uow.Do(ctx, func(ctx context.Context, after func(uow.AfterCommit)) error {
		seats := s.store.Seats()

		if err := seats.Reserve(indices); err != nil {
			if errors.Is(err, repository.ErrSeatsUnavailable) {
				s.metrics.TrackBooking(metrics.OutcomeSeatsTaken)
				return abort(StageReserving, fmt.Errorf("%w: %w", ErrSeatsTaken, err))
			}

			s.metrics.TrackBooking(metrics.OutcomeInvalidSelection)
			return abort(StageReserving, fmt.Errorf("%w: %w", ErrInvalidSelection, err))
		}

		receipt, err := s.pay(ctx, sel.Total, choose)
		if err != nil {
			seats.Release(indices)
			s.metrics.TrackBooking(metrics.OutcomePaymentFailed)
			s.logger.Info("payment failed, seats released",
				"seats", sel.Labels(), "amount", sel.Total.StringFixed(2), "error", err)
			return abort(StagePaying, fmt.Errorf("%w: %w", ErrPaymentFailed, err))
		}

		b, err := s.store.Bookings().Insert(domain.Booking{
			Reference:    uuid.New(),
			PaymentRef:   receipt.TransactionID,
			CustomerName: sel.CustomerName,
			Phone:        sel.Phone,
			SeatIndices:  indices,
			AmountPaid:   sel.Total,
			BookedAt:     s.clock.Now(),
		})
		if err != nil {
			s.metrics.TrackBooking(metrics.OutcomeError)
			return abort(StageRecording, err)
		}

		booking = b

		after(func(ctx context.Context) {
			s.metrics.TrackBooking(metrics.OutcomeConfirmed)
			s.metrics.AddRevenue(b.AmountPaid.InexactFloat64())
			s.metrics.SetSeatCounts(seats.Counts())
			s.logger.Info("booking confirmed",
				"booking_id", b.ID, "seats", sel.Labels(), "amount", b.AmountPaid.StringFixed(2))
		})

		return nil
	})
	if err != nil {
		s.logger.Debug("booking aborted", "op", op, "error", err)
		return domain.Booking{}, fmt.Errorf("%s:%w", op, err)
	}

	return booking, nil
}

// Cancel refunds a booking, releases its seats and removes it from the ledger.
// A failed refund leaves the booking and its seats untouched.
//
// Parameters:
//   - ctx: request-scoped context.
//   - bookingID: ID of the booking to cancel.
//
// Returns:
//   - domain.Booking: the removed booking.
//   - error: BookingNotFoundError (is ErrBookingNotFound) if no such booking exists.
//   - error: reservation.ErrRefundFailed if the simulated refund fails.
func (s *Service) Cancel(ctx context.Context, bookingID int64) (domain.Booking, error) {
	const op = "service.reservation.Cancel"

	b, err := s.store.Bookings().Get(bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.TrackCancellation(metrics.OutcomeNotFound)
			return domain.Booking{}, fmt.Errorf("%s:%w", op, BookingNotFoundError{BookingID: bookingID})
		}

		return domain.Booking{}, fmt.Errorf("%s:%w", op, err)
	}

	if _, err := s.gateway.Refund(ctx, payment.RefundRequest{Amount: b.AmountPaid, BookingID: b.ID}); err != nil {
		s.metrics.TrackCancellation(metrics.OutcomeRefundFailed)
		s.logger.Warn("refund failed", "booking_id", b.ID, "error", err)
		return domain.Booking{}, fmt.Errorf("%s:%w: %w", op, ErrRefundFailed, err)
	}

	err = s.uow.Do(ctx, func(ctx context.Context, after func(uow.AfterCommit)) error {
		seats := s.store.Seats()
		seats.Release(b.SeatIndices)

		if err := s.store.Bookings().Delete(b.ID); err != nil {
			return err
		}

		after(func(ctx context.Context) {
			s.metrics.TrackCancellation(metrics.OutcomeCancelled)
			s.metrics.AddRevenue(-b.AmountPaid.InexactFloat64())
			s.metrics.SetSeatCounts(seats.Counts())
			s.logger.Info("booking cancelled", "booking_id", b.ID, "amount", b.AmountPaid.StringFixed(2))
		})

		return nil
	})
	if err != nil {
		return domain.Booking{}, fmt.Errorf("%s:%w", op, err)
	}

	return b, nil
}

func (s *Service) pay(ctx context.Context, amount decimal.Decimal, choose MethodChooser) (payment.Receipt, error) {
	method := payment.MethodNetbanking
	if choose != nil {
		m, err := choose(ctx, amount)
		if err != nil {
			return payment.Receipt{}, err
		}
		method = m
	}

	return s.gateway.Charge(ctx, payment.ChargeRequest{Amount: amount, Method: method})
}

func (s *Service) reject(op string, err error) error {
	s.metrics.TrackBooking(metrics.OutcomeRejected)
	s.logger.Debug("selection rejected", "op", op, "error", err)
	return fmt.Errorf("%s:%w", op, err)
}
