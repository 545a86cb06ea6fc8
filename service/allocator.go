package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"cinebook/model"
)

// Allocator issues booking identifiers using only ledger contents as
// state. Numeric ids come from a full scan, so out-of-band edits to the
// ledger file are respected on the next load; short codes are drawn at
// random and kept unique against every code the ledger has ever issued.
type Allocator struct {
	rng  *rand.Rand
	used map[string]bool
}

// NewAllocator seeds the used-code set from the given bookings. Codes of
// cancelled bookings stay reserved; they are never recycled.
func NewAllocator(bookings []model.Booking) *Allocator {
	a := &Allocator{
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		used: make(map[string]bool),
	}
	for _, booking := range bookings {
		if booking.Code != "" {
			a.used[strings.ToUpper(booking.Code)] = true
		}
	}
	return a
}

// NextId returns 1 + the highest numeric id across the given bookings, or
// 1 for an empty ledger. Callers pass a fresh scan rather than a cached
// list so the ledger file stays the single source of truth.
func NextId(bookings []model.Booking) int {
	next := 1
	for _, booking := range bookings {
		if booking.Id >= next {
			next = booking.Id + 1
		}
	}
	return next
}

// ReserveCode generates a fresh short code (3 letters + 3 digits),
// retrying until it misses the used set, and reserves it immediately. An
// attempt abandoned before confirmation must give the code back via
// ReleaseCode or it stays burned for the life of the process.
func (a *Allocator) ReserveCode() string {
	for {
		code := a.randomCode()
		if !a.used[code] {
			a.used[code] = true
			return code
		}
	}
}

// ReleaseCode returns a reserved code to the pool.
func (a *Allocator) ReleaseCode(code string) {
	delete(a.used, strings.ToUpper(code))
}

// Used reports whether a code is reserved.
func (a *Allocator) Used(code string) bool {
	return a.used[strings.ToUpper(code)]
}

func (a *Allocator) randomCode() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	var b strings.Builder
	for i := 0; i < 3; i++ {
		b.WriteByte(letters[a.rng.Intn(len(letters))])
	}
	b.WriteString(fmt.Sprintf("%03d", a.rng.Intn(1000)))
	return b.String()
}
