package service

import (
	"errors"
	"testing"

	"cinebook/model"
)

func TestNewInventory_Bounds(t *testing.T) {
	if _, err := NewInventory(0, 10); err == nil {
		t.Fatal("expected error for zero rows")
	}
	if _, err := NewInventory(27, 10); err == nil {
		t.Fatal("expected error for too many rows")
	}
	if _, err := NewInventory(10, 100); err == nil {
		t.Fatal("expected error for too many columns")
	}
	inv, err := NewInventory(10, 10)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if inv.AvailableCount() != 100 {
		t.Fatalf("expected 100 available seats, got %d", inv.AvailableCount())
	}
}

func TestNormalize(t *testing.T) {
	inv, _ := NewInventory(10, 10)

	got, err := inv.Normalize(" a1 ")
	if err != nil || got != "A1" {
		t.Fatalf("expected A1, got %q (%v)", got, err)
	}
	if got, _ := inv.Normalize("j10"); got != "J10" {
		t.Fatalf("expected J10, got %q", got)
	}
	if _, err := inv.Normalize("K1"); !errors.Is(err, ErrSeatOutOfRange) {
		t.Fatalf("expected out-of-range for K1, got %v", err)
	}
	if _, err := inv.Normalize("A11"); !errors.Is(err, ErrSeatOutOfRange) {
		t.Fatalf("expected out-of-range for A11, got %v", err)
	}
	if _, err := inv.Normalize("11"); !errors.Is(err, ErrSeatFormat) {
		t.Fatalf("expected format error for 11, got %v", err)
	}
	if _, err := inv.Normalize("A"); !errors.Is(err, ErrSeatFormat) {
		t.Fatalf("expected format error for A, got %v", err)
	}
}

func TestRebuild(t *testing.T) {
	inv, _ := NewInventory(10, 10)
	bookings := []model.Booking{
		{Id: 1, Seats: []string{"A1", "A2"}, Status: model.StatusConfirmed},
		{Id: 2, Seats: []string{"B1"}, Status: model.StatusCancelled},
	}

	if conflicts := inv.Rebuild(bookings); conflicts != 0 {
		t.Fatalf("expected no conflicts, got %d", conflicts)
	}
	if inv.IsAvailable("A1") || inv.IsAvailable("a2") {
		t.Fatal("expected confirmed seats to be booked")
	}
	if !inv.IsAvailable("B1") {
		t.Fatal("expected cancelled booking's seat to stay available")
	}
	if got := inv.AvailableCount(); got != 98 {
		t.Fatalf("expected 98 available, got %d", got)
	}
}

func TestRebuild_CountsConflicts(t *testing.T) {
	inv, _ := NewInventory(10, 10)
	bookings := []model.Booking{
		{Id: 1, Seats: []string{"A1"}, Status: model.StatusConfirmed},
		{Id: 2, Seats: []string{"A1", "A2"}, Status: model.StatusConfirmed},
	}

	if conflicts := inv.Rebuild(bookings); conflicts != 1 {
		t.Fatalf("expected 1 conflict, got %d", conflicts)
	}
	if inv.IsAvailable("A1") {
		t.Fatal("expected contested seat to stay booked")
	}
}

func TestReserveRelease_Idempotent(t *testing.T) {
	inv, _ := NewInventory(10, 10)

	inv.Reserve("A1")
	inv.Reserve("A1")
	if got := inv.AvailableCount(); got != 99 {
		t.Fatalf("expected 99 available after double reserve, got %d", got)
	}

	inv.Release("A1")
	inv.Release("A1")
	if got := inv.AvailableCount(); got != 100 {
		t.Fatalf("expected 100 available after double release, got %d", got)
	}
	if !inv.IsAvailable("A1") {
		t.Fatal("expected A1 available again")
	}
}

func TestIsAvailable_MalformedSeat(t *testing.T) {
	inv, _ := NewInventory(10, 10)
	if inv.IsAvailable("Z99") || inv.IsAvailable("seat one") {
		t.Fatal("expected malformed or out-of-range seats to be unavailable")
	}
}
