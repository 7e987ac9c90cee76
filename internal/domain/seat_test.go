package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeatPrice(t *testing.T) {
	tests := []struct {
		rows, row int
		want      string
	}{
		{rows: 4, row: 0, want: "145.00"},
		{rows: 4, row: 1, want: "130.00"},
		{rows: 4, row: 2, want: "115.00"},
		{rows: 4, row: 3, want: "100.00"},
		{rows: 2, row: 0, want: "115.00"},
		{rows: 1, row: 0, want: "100.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SeatPrice(tt.rows, tt.row).StringFixed(2), "rows=%d row=%d", tt.rows, tt.row)
	}
}

func TestSeatLabel(t *testing.T) {
	assert.Equal(t, "A1", SeatLabel(0, 0))
	assert.Equal(t, "D10", SeatLabel(3, 9))
	assert.Equal(t, "Z99", SeatLabel(25, 98))
}

func TestParseSeatLabel(t *testing.T) {
	tests := []struct {
		name       string
		label      string
		wantRow    int
		wantNumber int
		wantOK     bool
	}{
		{"upper case", "A1", 0, 1, true},
		{"lower case", "c7", 2, 7, true},
		{"two digit number", "B10", 1, 10, true},
		{"surrounding spaces", "  D3 ", 3, 3, true},
		{"too short", "A", 0, 0, false},
		{"empty", "", 0, 0, false},
		{"zero seat", "A0", 0, 0, false},
		{"negative seat", "A-1", 0, 0, false},
		{"not a letter", "11", 0, 0, false},
		{"trailing junk", "A1x", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, number, ok := ParseSeatLabel(tt.label)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantRow, row)
				assert.Equal(t, tt.wantNumber, number)
			}
		})
	}
}

func TestTotal(t *testing.T) {
	seats := []Seat{
		{Price: SeatPrice(2, 0)},
		{Price: SeatPrice(2, 1)},
	}
	assert.Equal(t, "215.00", Total(seats).StringFixed(2))
	assert.True(t, Total(nil).IsZero())
}
