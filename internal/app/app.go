package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kirinyoku/tix-console/internal/clock"
	"github.com/kirinyoku/tix-console/internal/config"
	"github.com/kirinyoku/tix-console/internal/domain"
	"github.com/kirinyoku/tix-console/internal/metrics"
	"github.com/kirinyoku/tix-console/internal/payment"
	"github.com/kirinyoku/tix-console/internal/repository/memory"
	"github.com/kirinyoku/tix-console/internal/service"
	"github.com/kirinyoku/tix-console/internal/service/reservation"
	"github.com/kirinyoku/tix-console/internal/transport/console"
)

type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	services *service.Services
	metrics  *metrics.Metrics
	console  *console.Console
}

type options struct {
	in      io.Reader
	out     io.Writer
	decider payment.Decider
	sleep   func(time.Duration)
	clock   clock.Clock
}

type Option func(*options)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(o *options) {
		o.in = in
		o.out = out
	}
}

// WithDecider fixes how simulated payments and refunds turn out.
func WithDecider(d payment.Decider) Option {
	return func(o *options) { o.decider = d }
}

func WithSleep(sleep func(time.Duration)) Option {
	return func(o *options) { o.sleep = sleep }
}

func WithClock(clk clock.Clock) Option {
	return func(o *options) { o.clock = clk }
}

func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	o := options{
		in:      os.Stdin,
		out:     os.Stdout,
		decider: payment.NewClockSeededDecider(),
		sleep:   time.Sleep,
		clock:   clock.NewSystem(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	// Initialize the event
	store, err := memory.NewStore(domain.Event{
		Name: cfg.Event.Name,
		Rows: cfg.Event.Rows,
		Cols: cfg.Event.Cols,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event: %w", err)
	}

	m := metrics.New()
	m.SetSeatCounts(store.Seats().Counts())

	gateway := payment.NewSimulator(
		payment.Config{
			Steps:             cfg.Payment.Steps,
			StepDelay:         cfg.Payment.StepDelay,
			SuccessRate:       cfg.Payment.SuccessRate,
			RefundFailureRate: cfg.Payment.RefundFailureRate,
		},
		payment.WithDecider(o.decider),
		payment.WithSleep(o.sleep),
		payment.WithProgress(o.out),
		payment.WithNow(o.clock.Now),
	)

	// Initialize services
	services := service.NewServices(store, gateway, m, o.clock, logger, service.Config{
		Reservation: reservation.Config{MaxSeatsPerBooking: cfg.Booking.MaxSeats},
	})

	return &App{
		cfg:      cfg,
		logger:   logger,
		services: services,
		metrics:  m,
		console:  console.New(services, o.in, o.out, logger),
	}, nil
}

func (a *App) Services() *service.Services { return a.services }

func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Console session
	g.Go(func() error {
		defer cancel()
		a.logger.Info("console session started",
			"event", a.cfg.Event.Name, "rows", a.cfg.Event.Rows, "cols", a.cfg.Event.Cols)
		return a.console.Run(gCtx)
	})

	// Shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down console session")
		return nil
	})

	err := g.Wait()
	a.logSummary()

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

func (a *App) logSummary() {
	s, err := a.metrics.Summary()
	if err != nil {
		a.logger.Warn("failed to gather session metrics", "error", err)
		return
	}

	a.logger.Info("session summary",
		"bookings", s.Bookings,
		"cancellations", s.Cancellations,
		"seats_available", s.Available,
		"seats_reserved", s.Reserved,
		"revenue", s.Revenue,
	)
}
