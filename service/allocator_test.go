package service

import (
	"regexp"
	"testing"

	"cinebook/model"
)

func TestNextId(t *testing.T) {
	bookings := []model.Booking{{Id: 1}, {Id: 2}, {Id: 5}}
	if got := NextId(bookings); got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
	if got := NextId(nil); got != 1 {
		t.Fatalf("expected 1 for empty ledger, got %d", got)
	}
}

func TestReserveCode_FormatAndUniqueness(t *testing.T) {
	alloc := NewAllocator(nil)
	pattern := regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)

	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		code := alloc.ReserveCode()
		if !pattern.MatchString(code) {
			t.Fatalf("unexpected code format: %q", code)
		}
		if seen[code] {
			t.Fatalf("duplicate code issued: %q", code)
		}
		seen[code] = true
	}
}

func TestReserveCode_SkipsLedgerCodes(t *testing.T) {
	bookings := []model.Booking{
		{Id: 1, Code: "AAA000", Status: model.StatusConfirmed},
		{Id: 2, Code: "BBB111", Status: model.StatusCancelled},
	}
	alloc := NewAllocator(bookings)

	// Cancelled bookings keep their codes reserved.
	if !alloc.Used("AAA000") || !alloc.Used("bbb111") {
		t.Fatal("expected ledger codes to be reserved")
	}
	for i := 0; i < 1000; i++ {
		if code := alloc.ReserveCode(); code == "AAA000" || code == "BBB111" {
			t.Fatalf("reissued a ledger code: %q", code)
		}
	}
}

func TestReleaseCode(t *testing.T) {
	alloc := NewAllocator(nil)
	code := alloc.ReserveCode()
	if !alloc.Used(code) {
		t.Fatal("expected code reserved at generation time")
	}
	alloc.ReleaseCode(code)
	if alloc.Used(code) {
		t.Fatal("expected code released")
	}
}
