package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MaxRows = 26
	MaxCols = 99
)

var (
	// BasePrice is the price of a seat in the back row.
	BasePrice = decimal.NewFromInt(100)
	// RowPremium is added to the multiplier for every row closer to the stage.
	RowPremium = decimal.RequireFromString("0.15")
)

// SeatPrice returns the price of a seat in row (0 is the front) of a grid
// with rows rows.
func SeatPrice(rows, row int) decimal.Decimal {
	multiplier := decimal.NewFromInt(1).Add(RowPremium.Mul(decimal.NewFromInt(int64(rows - 1 - row))))
	return BasePrice.Mul(multiplier)
}

// SeatLabel builds labels like "A1" from a 0-based row and column.
func SeatLabel(row, col int) string {
	return string(rune('A'+row)) + strconv.Itoa(col+1)
}

// ParseSeatLabel splits a label into a 0-based row and a 1-based seat number.
// It does not check grid bounds.
func ParseSeatLabel(label string) (row, number int, ok bool) {
	label = strings.TrimSpace(label)
	if len(label) < 2 {
		return 0, 0, false
	}

	letter := label[0]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	if letter < 'A' || letter > 'Z' {
		return 0, 0, false
	}

	n, err := strconv.Atoi(label[1:])
	if err != nil || n <= 0 {
		return 0, 0, false
	}

	return int(letter - 'A'), n, true
}

// Total sums the prices of seats.
func Total(seats []Seat) decimal.Decimal {
	total := decimal.Zero
	for _, s := range seats {
		total = total.Add(s.Price)
	}
	return total
}
