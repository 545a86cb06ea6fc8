package service

import (
	"fmt"
	"strconv"
	"strings"

	"cinebook/model"
)

// Inventory is the in-memory seat availability grid. Booked state is a
// projection over active bookings, rebuilt by replaying the ledger; it is
// never persisted on its own.
type Inventory struct {
	rows   int
	cols   int
	booked map[string]bool
}

// NewInventory builds a fully available grid of rows x cols seats. Rows
// are lettered from A; columns are numbered from 1.
func NewInventory(rows, cols int) (*Inventory, error) {
	if rows < 1 || rows > 26 {
		return nil, fmt.Errorf("inventory rows must be 1-26, got %d", rows)
	}
	if cols < 1 || cols > 99 {
		return nil, fmt.Errorf("inventory columns must be 1-99, got %d", cols)
	}
	return &Inventory{rows: rows, cols: cols, booked: make(map[string]bool)}, nil
}

// Rows returns the number of seat rows.
func (inv *Inventory) Rows() int { return inv.rows }

// Cols returns the number of seat columns.
func (inv *Inventory) Cols() int { return inv.cols }

// Normalize validates a seat identifier against the grid and canonicalizes
// it to uppercase. Accepted shape: one row letter followed by a one or two
// digit column, case-insensitive.
func (inv *Inventory) Normalize(seat string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(seat))
	if len(s) < 2 || len(s) > 3 {
		return "", ErrSeatFormat
	}
	row := s[0]
	if row < 'A' || row > 'Z' {
		return "", ErrSeatFormat
	}
	col, err := strconv.Atoi(s[1:])
	if err != nil {
		return "", ErrSeatFormat
	}
	if int(row-'A') >= inv.rows || col < 1 || col > inv.cols {
		return "", ErrSeatOutOfRange
	}
	return fmt.Sprintf("%c%d", row, col), nil
}

// SeatLabel renders the canonical identifier for a zero-based grid cell.
func (inv *Inventory) SeatLabel(row, col int) string {
	return fmt.Sprintf("%c%d", 'A'+row, col+1)
}

// Rebuild resets the grid to fully available and replays the given
// bookings, marking every seat of every Confirmed booking as booked.
// Cancelled bookings leave their seats free. If two active bookings claim
// the same seat the later one wins by load order; the collision count is
// returned so the caller can report corrupted history.
func (inv *Inventory) Rebuild(bookings []model.Booking) int {
	inv.booked = make(map[string]bool)
	conflicts := 0
	for _, booking := range bookings {
		if !booking.Active() {
			continue
		}
		for _, seat := range booking.Seats {
			canonical, err := inv.Normalize(seat)
			if err != nil {
				// Stored seats are accepted as-is; out-of-grid ones
				// simply can't occupy a cell.
				continue
			}
			if inv.booked[canonical] {
				conflicts++
			}
			inv.booked[canonical] = true
		}
	}
	return conflicts
}

// IsAvailable reports whether the seat can be booked right now. Malformed
// or out-of-range identifiers are simply unavailable.
func (inv *Inventory) IsAvailable(seat string) bool {
	canonical, err := inv.Normalize(seat)
	if err != nil {
		return false
	}
	return !inv.booked[canonical]
}

// IsBooked reports whether the zero-based grid cell is currently booked.
func (inv *Inventory) IsBooked(row, col int) bool {
	return inv.booked[inv.SeatLabel(row, col)]
}

// Reserve marks a seat booked. Reserving an already-booked seat is a
// no-op.
func (inv *Inventory) Reserve(seat string) {
	if canonical, err := inv.Normalize(seat); err == nil {
		inv.booked[canonical] = true
	}
}

// Release marks a seat available again. Releasing a free seat is a no-op.
func (inv *Inventory) Release(seat string) {
	if canonical, err := inv.Normalize(seat); err == nil {
		delete(inv.booked, canonical)
	}
}

// AvailableCount returns how many seats are currently free.
func (inv *Inventory) AvailableCount() int {
	return inv.rows*inv.cols - len(inv.booked)
}
