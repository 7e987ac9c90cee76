package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatReserved  SeatStatus = "reserved"
)

func (s SeatStatus) String() string {
	switch s {
	case SeatAvailable:
		return "Available"
	case SeatReserved:
		return "Reserved"
	default:
		return string(s)
	}
}

// Event is the single event the console sells seats for.
type Event struct {
	Name string
	Rows int
	Cols int
}

func (e Event) SeatCount() int {
	return e.Rows * e.Cols
}

type Seat struct {
	Index  int
	Row    int
	Number int // 1-based
	Label  string
	Price  decimal.Decimal
	Status SeatStatus
}

func (s Seat) Available() bool {
	return s.Status == SeatAvailable
}

type Booking struct {
	ID           int64
	Reference    uuid.UUID
	PaymentRef   uuid.UUID
	CustomerName string
	Phone        string
	SeatIndices  []int
	AmountPaid   decimal.Decimal
	BookedAt     time.Time
}

type BookingWithSeats struct {
	Booking Booking
	Seats   []Seat
}

func (b BookingWithSeats) Labels() []string {
	labels := make([]string, 0, len(b.Seats))
	for _, s := range b.Seats {
		labels = append(labels, s.Label)
	}
	return labels
}

type EventCounts struct {
	Available int
	Reserved  int
	Total     int
}
