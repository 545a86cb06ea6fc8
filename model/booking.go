package model

import (
	"math"
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a persisted booking.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCancelled BookingStatus = "Cancelled"
)

// ParseStatus maps a stored status field onto a known status. Unknown or
// empty values default to Confirmed: every record ever written started out
// confirmed, and the oldest ledger layouts carried no status field at all.
func ParseStatus(raw string) BookingStatus {
	if strings.EqualFold(strings.TrimSpace(raw), string(StatusCancelled)) {
		return StatusCancelled
	}
	return StatusConfirmed
}

// Booking is the durable unit of record in the ledger.
type Booking struct {
	Id            int
	Code          string // 3 letters + 3 digits; empty on pre-code records
	MovieId       string
	MovieTitle    string
	MovieGenre    string
	CustomerName  string
	CustomerEmail string
	Tickets       int
	TotalPrice    float64
	CreatedAt     time.Time
	Showtime      string
	Seats         []string
	Status        BookingStatus
}

// Active reports whether the booking still holds its seats.
func (b Booking) Active() bool {
	return b.Status == StatusConfirmed
}

// UnitPrice derives the per-ticket price from the stored total. The ledger
// never stores the unit price; it is always total/tickets.
func (b Booking) UnitPrice() float64 {
	if b.Tickets <= 0 {
		return 0
	}
	return b.TotalPrice / float64(b.Tickets)
}

// SetTickets changes the ticket count, re-deriving the total from the
// original unit price rather than re-pricing the booking.
func (b *Booking) SetTickets(count int) {
	unit := b.UnitPrice()
	b.Tickets = count
	b.TotalPrice = math.Round(unit*float64(count)*100) / 100
}
