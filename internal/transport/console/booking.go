package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kirinyoku/tix-console/internal/payment"
	"github.com/kirinyoku/tix-console/internal/service/query"
	"github.com/kirinyoku/tix-console/internal/service/reservation"
)

func (c *Console) newBooking(ctx context.Context) error {
	name, err := c.prompt(ctx, "Enter customer name: ")
	if err != nil {
		return err
	}
	if err := reservation.ValidateCustomerName(name); err != nil {
		fmt.Fprintln(c.out, "Name cannot be empty.")
		return nil
	}

	phone, err := c.prompt(ctx, "Enter phone number: ")
	if err != nil {
		return err
	}

	c.showSeatMap(ctx)

	line, err := c.prompt(ctx, fmt.Sprintf(
		"Enter seats to book separated by spaces (e.g., A1 A2 A3). Max %d seats: \n",
		c.svcs.Reservation.MaxSeats()))
	if err != nil {
		return err
	}

	sel, err := c.svcs.Reservation.Select(ctx, reservation.SelectInput{
		CustomerName: name,
		Phone:        phone,
		Seats:        line,
	})
	if err != nil {
		c.reportSelectionError(err)
		return nil
	}

	fmt.Fprintln(c.out, "\nSelected seats:")
	for _, s := range sel.Seats {
		renderSeat(c.out, s)
	}
	fmt.Fprintf(c.out, "\nTotal amount: %s\n", sel.Total.StringFixed(2))

	booking, err := c.svcs.Reservation.Book(ctx, sel, c.choosePaymentMethod)
	switch {
	case err == nil:
		fmt.Fprintln(c.out, "Payment successful ✅")
		fmt.Fprintf(c.out, "Booking confirmed! Booking ID: %d\n", booking.ID)
		fmt.Fprintf(c.out, "Reference: %s\n", booking.Reference)
		fmt.Fprintf(c.out, "A booking confirmation has been created for %s. Thank you!\n", booking.CustomerName)
		return nil
	case errors.Is(err, reservation.ErrSeatsTaken):
		fmt.Fprintln(c.out, "One or more seats have just been reserved by someone else. Please try again.")
		return nil
	case errors.Is(err, reservation.ErrInvalidSelection):
		fmt.Fprintln(c.out, "Invalid seat selection.")
		return nil
	case errors.Is(err, reservation.ErrPaymentFailed):
		if errors.Is(err, payment.ErrDeclined) {
			fmt.Fprintln(c.out, "Payment failed ❌ (simulated)")
		}
		fmt.Fprintln(c.out, "Booking aborted due to payment failure. Seats released.")
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	default:
		c.logger.Error("booking failed", "error", err)
		fmt.Fprintln(c.out, "Booking failed. Nothing was reserved.")
		return nil
	}
}

func (c *Console) reportSelectionError(err error) {
	var invalid reservation.InvalidSeatLabelError
	var dup reservation.DuplicateSeatError

	switch {
	case errors.As(err, &invalid):
		fmt.Fprintf(c.out, "Invalid seat label: %s — aborting selection.\n", invalid.Label)
	case errors.As(err, &dup):
		fmt.Fprintf(c.out, "Duplicate seat %s in selection — aborting.\n", dup.Label)
	case errors.Is(err, reservation.ErrEmptyName):
		fmt.Fprintln(c.out, "Name cannot be empty.")
	case errors.Is(err, reservation.ErrNoSeats):
		fmt.Fprintln(c.out, "No seats entered.")
	case errors.Is(err, reservation.ErrTooManySeats):
		fmt.Fprintf(c.out, "Too many seats selected. Max %d seats.\n", c.svcs.Reservation.MaxSeats())
	default:
		c.logger.Error("seat selection failed", "error", err)
		fmt.Fprintln(c.out, "Invalid seat selection.")
	}
}

// choosePaymentMethod collects the simulated payment details. They are only
// asked for, never checked or kept.
func (c *Console) choosePaymentMethod(ctx context.Context, amount decimal.Decimal) (payment.Method, error) {
	fmt.Fprintln(c.out, "\n--- Payment Processing ---")
	fmt.Fprintf(c.out, "Amount to pay: %s\n", amount.StringFixed(2))

	line, err := c.prompt(ctx, "Select payment method:\n1) Card\n2) UPI\n3) Netbanking\nChoose (1-3): ")
	if err != nil {
		return 0, err
	}

	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		fmt.Fprintln(c.out, "Invalid payment method.")
		return 0, payment.ErrInvalidMethod
	}

	method := payment.MethodFromChoice(choice)

	var fields []string
	switch method {
	case payment.MethodCard:
		fields = []string{"Enter card number (simulated): ", "Enter name on card: ", "Enter CVV: "}
	case payment.MethodUPI:
		fields = []string{"Enter UPI ID (simulated): "}
	default:
		fields = []string{"Enter bank name (simulated): "}
	}

	for _, f := range fields {
		if _, err := c.prompt(ctx, f); err != nil {
			return 0, err
		}
	}

	return method, nil
}

func (c *Console) cancelBooking(ctx context.Context) error {
	line, err := c.prompt(ctx, "Enter Booking ID to cancel: ")
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		fmt.Fprintln(c.out, "Invalid input.")
		return nil
	}

	b, err := c.svcs.Query.Booking(ctx, id)
	if err != nil {
		if !errors.Is(err, query.ErrBookingNotFound) {
			c.logger.Error("failed to look up booking", "booking_id", id, "error", err)
		}
		fmt.Fprintf(c.out, "Booking ID %d not found.\n", id)
		return nil
	}

	fmt.Fprintf(c.out, "Processing refund of %s\n", b.Booking.AmountPaid.StringFixed(2))

	_, err = c.svcs.Reservation.Cancel(ctx, id)
	switch {
	case err == nil:
		fmt.Fprintln(c.out, "Booking cancelled and seats released. Refund successful.")
	case errors.Is(err, reservation.ErrBookingNotFound):
		fmt.Fprintf(c.out, "Booking ID %d not found.\n", id)
	case errors.Is(err, reservation.ErrRefundFailed):
		fmt.Fprintln(c.out, "Refund failed due to simulated gateway error. Try again later.")
	default:
		c.logger.Error("cancellation failed", "booking_id", id, "error", err)
		fmt.Fprintln(c.out, "Cancellation failed. Try again later.")
	}

	return nil
}
