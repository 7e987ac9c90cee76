package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kirinyoku/tix-console/internal/domain"
)

const timeLayout = "2006-01-02 15:04:05"

type styles struct {
	title     lipgloss.Style
	available lipgloss.Style
	reserved  lipgloss.Style
}

// newStyles binds styles to out so colours are only emitted on terminals.
func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title:     r.NewStyle().Bold(true),
		available: r.NewStyle().Foreground(lipgloss.Color("2")),
		reserved:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func (st styles) mark(s domain.Seat) string {
	if s.Available() {
		return st.available.Render("A")
	}
	return st.reserved.Render("R")
}

func renderSeatMap(w io.Writer, st styles, ev domain.Event, rows [][]domain.Seat) {
	fmt.Fprintf(w, "\nEvent: %s — Seat Map (A = available, R = reserved)\n", ev.Name)
	for r, row := range rows {
		var b strings.Builder
		fmt.Fprintf(&b, "%c: ", 'A'+r)
		for _, s := range row {
			fmt.Fprintf(&b, "%2s[%s] ", s.Label, st.mark(s))
		}
		fmt.Fprintln(w, b.String())
	}
	fmt.Fprintln(w)
}

func renderSeat(w io.Writer, s domain.Seat) {
	fmt.Fprintf(w, "Seat %s — Price: %s — %s\n", s.Label, s.Price.StringFixed(2), s.Status)
}

func renderBookings(w io.Writer, bookings []domain.BookingWithSeats) {
	if len(bookings) == 0 {
		fmt.Fprintln(w, "No bookings yet.")
		return
	}

	fmt.Fprintln(w, "\n--- Bookings ---")
	for _, b := range bookings {
		fmt.Fprintf(w, "Booking ID: %d | Name: %s | Phone: %s | Seats: %s | Amount: %s | Time: %s\n",
			b.Booking.ID,
			b.Booking.CustomerName,
			b.Booking.Phone,
			strings.Join(b.Labels(), " "),
			b.Booking.AmountPaid.StringFixed(2),
			b.Booking.BookedAt.Local().Format(timeLayout),
		)
	}
	fmt.Fprintln(w)
}

func renderAvailability(w io.Writer, c domain.EventCounts) {
	fmt.Fprintf(w, "Total seats: %d | Available: %d | Reserved: %d\n", c.Total, c.Available, c.Reserved)
}
