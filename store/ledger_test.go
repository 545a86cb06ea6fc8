package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cinebook/model"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	return NewLedger(filepath.Join(t.TempDir(), "movie_bookings.csv"), testResolver())
}

func confirmedBooking(id int, code string, seats ...string) model.Booking {
	return model.Booking{
		Id:            id,
		Code:          code,
		MovieId:       "AC003",
		MovieTitle:    "Dunkirk",
		MovieGenre:    "AC",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Tickets:       len(seats),
		TotalPrice:    35.00 * float64(len(seats)),
		Showtime:      "11:00 PM",
		Seats:         seats,
		Status:        model.StatusConfirmed,
	}
}

func TestLoadAll_MissingFileIsEmptyLedger(t *testing.T) {
	ledger := testLedger(t)

	bookings, report, err := ledger.LoadAll()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(bookings) != 0 || report.Lines != 0 {
		t.Fatalf("expected empty ledger, got %d bookings", len(bookings))
	}
}

func TestLoadAll_SkipsMalformedLines(t *testing.T) {
	ledger := testLedger(t)
	content := strings.Join([]string{
		"1,Dunkirk,John,john@example.com,2,70.00,2024-06-01,18:30:00,11:00 PM",
		"garbage line",
		"2,Dunkirk,Jane,jane@example.com,1,35.00,2024-06-02,18:30:00,11:00 PM,A1,Confirmed",
	}, "\n") + "\n"
	if err := os.WriteFile(ledger.Path(), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	bookings, report, err := ledger.LoadAll()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("expected 2 decoded bookings, got %d", len(bookings))
	}
	if report.Skipped != 1 || report.Decoded != 2 || report.Lines != 3 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Warnings) == 0 {
		t.Fatal("expected a skip warning")
	}
}

func TestAppend_RoundTrip(t *testing.T) {
	ledger := testLedger(t)
	if err := ledger.Append(confirmedBooking(1, "ABC123", "A1", "A2")); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := ledger.Append(confirmedBooking(2, "XYZ999", "B1")); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	bookings, report, err := ledger.LoadAll()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if report.Skipped != 0 || len(bookings) != 2 {
		t.Fatalf("expected 2 clean bookings, got %d (report %+v)", len(bookings), report)
	}
	if bookings[0].Code != "ABC123" || bookings[1].Code != "XYZ999" {
		t.Fatalf("unexpected codes: %+v", bookings)
	}
}

func TestUpdateInPlace_RewritesMatchedRecord(t *testing.T) {
	ledger := testLedger(t)
	if err := ledger.Append(confirmedBooking(1, "ABC123", "A1", "A2")); err != nil {
		t.Fatal(err)
	}
	if err := ledger.Append(confirmedBooking(2, "XYZ999", "B1")); err != nil {
		t.Fatal(err)
	}

	cancelled := confirmedBooking(1, "ABC123", "A1", "A2")
	cancelled.Status = model.StatusCancelled
	if err := ledger.UpdateInPlace(cancelled); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	bookings, _, err := ledger.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings after update, got %d", len(bookings))
	}
	if bookings[0].Status != model.StatusCancelled {
		t.Fatalf("expected booking 1 cancelled, got %s", bookings[0].Status)
	}
	if got := bookings[0].Seats; len(got) != 2 || got[0] != "A1" {
		t.Fatalf("expected seats unchanged on the record, got %v", got)
	}
	if bookings[1].Status != model.StatusConfirmed {
		t.Fatalf("expected booking 2 untouched, got %s", bookings[1].Status)
	}
}

func TestUpdateInPlace_NoMatchLeavesFileUntouched(t *testing.T) {
	ledger := testLedger(t)
	if err := ledger.Append(confirmedBooking(1, "ABC123", "A1")); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(ledger.Path())
	if err != nil {
		t.Fatal(err)
	}

	if err := ledger.UpdateInPlace(confirmedBooking(42, "ZZZ000", "C1")); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	after, err := os.ReadFile(ledger.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Fatalf("expected file unchanged, got:\n%s", after)
	}
}

func TestUpdateInPlace_PreCodeRecordMatchesByIdAlone(t *testing.T) {
	ledger := testLedger(t)
	legacy := "1,Dunkirk,John,john@example.com,2,70.00,2024-06-01,18:30:00,11:00 PM\n"
	if err := os.WriteFile(ledger.Path(), []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	bookings, _, err := ledger.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	updated := bookings[0]
	updated.Status = model.StatusCancelled
	if err := ledger.UpdateInPlace(updated); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	reloaded, _, err := ledger.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if reloaded[0].Status != model.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", reloaded[0].Status)
	}
	if reloaded[0].Code != "" {
		t.Fatalf("expected code to stay empty, got %q", reloaded[0].Code)
	}
}

func TestFindByCode_CaseInsensitive(t *testing.T) {
	ledger := testLedger(t)
	if err := ledger.Append(confirmedBooking(1, "ABC123", "A1")); err != nil {
		t.Fatal(err)
	}

	booking, found, err := ledger.FindByCode("abc123")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !found || booking.Id != 1 {
		t.Fatalf("expected booking 1, got found=%v %+v", found, booking)
	}

	if _, found, _ := ledger.FindByCode("NOPE00"); found {
		t.Fatal("expected no match for unknown code")
	}
}

func TestFindById(t *testing.T) {
	ledger := testLedger(t)
	if err := ledger.Append(confirmedBooking(5, "ABC123", "A1")); err != nil {
		t.Fatal(err)
	}

	booking, found, err := ledger.FindById(5)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !found || booking.Code != "ABC123" {
		t.Fatalf("expected booking, got found=%v %+v", found, booking)
	}
	if _, found, _ := ledger.FindById(99); found {
		t.Fatal("expected no match for unknown id")
	}
}
