package reservation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kirinyoku/tix-console/internal/domain"
)

type SelectInput struct {
	CustomerName string
	Phone        string
	// Seats is the raw line typed by the user, e.g. "A1 A2,B3".
	Seats string
}

// Selection is a validated seat choice waiting to be reserved and paid for.
type Selection struct {
	CustomerName string
	Phone        string
	Seats        []domain.Seat
	Total        decimal.Decimal
}

func (s *Selection) Indices() []int {
	out := make([]int, 0, len(s.Seats))
	for _, seat := range s.Seats {
		out = append(out, seat.Index)
	}
	return out
}

func (s *Selection) Labels() []string {
	out := make([]string, 0, len(s.Seats))
	for _, seat := range s.Seats {
		out = append(out, seat.Label)
	}
	return out
}

// SplitSeatLabels splits a seat line on spaces, tabs and commas.
func SplitSeatLabels(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ',' || r == '\r' || r == '\n'
	})
}
