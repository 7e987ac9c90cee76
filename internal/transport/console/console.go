package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/kirinyoku/tix-console/internal/service"
)

const (
	choiceSeatMap = iota + 1
	choiceSeatDetails
	choiceNewBooking
	choiceListBookings
	choiceCancelBooking
	choiceAvailability
	choiceExit
)

// Console is the interactive menu on top of the services.
type Console struct {
	svcs   *service.Services
	in     *lineReader
	out    io.Writer
	logger *slog.Logger
	styles styles
}

func New(svcs *service.Services, in io.Reader, out io.Writer, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Console{
		svcs:   svcs,
		in:     newLineReader(in),
		out:    out,
		logger: logger,
		styles: newStyles(out),
	}
}

// Run shows the menu until the user exits or input ends. It returns ctx.Err()
// when ctx is cancelled while waiting for input.
func (c *Console) Run(ctx context.Context) error {
	ev := c.svcs.Query.Event(ctx)

	fmt.Fprintln(c.out, "Welcome to the Ticket Booking System (single event)")
	fmt.Fprintf(c.out, "Event: %s | Seats: %d\n", ev.Name, ev.SeatCount())

	for {
		fmt.Fprintf(c.out, "\n%s\n", c.styles.title.Render(fmt.Sprintf("=== Ticket Booking System — Event: %s ===", ev.Name)))
		fmt.Fprint(c.out, "1) Show seat map\n2) Show seat details\n3) New booking\n4) List bookings\n5) Cancel booking\n6) Availability summary\n7) Exit\nChoose: ")

		line, err := c.in.ReadLine(ctx)
		if err != nil {
			return c.stop(err)
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(c.out, "Invalid choice.")
			continue
		}

		switch choice {
		case choiceSeatMap:
			c.showSeatMap(ctx)
		case choiceSeatDetails:
			err = c.showSeatDetails(ctx)
		case choiceNewBooking:
			err = c.newBooking(ctx)
		case choiceListBookings:
			err = c.listBookings(ctx)
		case choiceCancelBooking:
			err = c.cancelBooking(ctx)
		case choiceAvailability:
			renderAvailability(c.out, c.svcs.Query.Availability(ctx))
		case choiceExit:
			fmt.Fprintln(c.out, "Exiting. Goodbye!")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid choice.")
		}

		if err != nil {
			return c.stop(err)
		}
	}
}

// stop turns the end of input into a normal exit.
func (c *Console) stop(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(c.out, "\nExiting. Goodbye!")
		return nil
	}
	return err
}

func (c *Console) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(c.out, label)
	return c.in.ReadLine(ctx)
}

func (c *Console) showSeatMap(ctx context.Context) {
	renderSeatMap(c.out, c.styles, c.svcs.Query.Event(ctx), c.svcs.Query.SeatMap(ctx))
}

func (c *Console) showSeatDetails(ctx context.Context) error {
	label, err := c.prompt(ctx, "Enter seat label (e.g., A3): ")
	if err != nil {
		return err
	}

	seat, err := c.svcs.Query.Seat(ctx, label)
	if err != nil {
		fmt.Fprintln(c.out, "Invalid seat label.")
		return nil
	}

	renderSeat(c.out, seat)
	return nil
}

func (c *Console) listBookings(ctx context.Context) error {
	bookings, err := c.svcs.Query.Bookings(ctx)
	if err != nil {
		c.logger.Error("failed to list bookings", "error", err)
		fmt.Fprintln(c.out, "Could not list bookings.")
		return nil
	}

	renderBookings(c.out, bookings)
	return nil
}
