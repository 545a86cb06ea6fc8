package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cinebook/model"
)

// LoadReport summarizes one full replay of the ledger file. The ledger
// never aborts a load over bad records; everything it had to skip or guess
// at is reported here instead.
type LoadReport struct {
	Lines    int
	Decoded  int
	Skipped  int
	Warnings []string
}

// Ledger is the authoritative read/write path over the booking file. The
// file is the single source of truth: ids, seat state and the used-code
// set are all reconstructed from a full replay, never cached across runs.
type Ledger struct {
	path    string
	decoder *Decoder
}

// NewLedger opens a ledger over the given file path. The file does not
// need to exist yet; an absent file reads as an empty ledger.
func NewLedger(path string, resolver MovieResolver) *Ledger {
	return &Ledger{path: path, decoder: NewDecoder(resolver)}
}

// Path returns the backing file path.
func (l *Ledger) Path() string {
	return l.path
}

// LoadAll replays every stored line through the decoder. Undecodable lines
// are counted and reported, never fatal. A missing file is a normal fresh
// start, not an error.
func (l *Ledger) LoadAll() ([]model.Booking, LoadReport, error) {
	var report LoadReport

	file, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, report, nil
		}
		return nil, report, fmt.Errorf("open ledger: %w", err)
	}
	defer file.Close()

	var bookings []model.Booking
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		report.Lines++
		booking, warnings, err := l.decoder.Decode(line)
		if err != nil {
			report.Skipped++
			report.Warnings = append(report.Warnings, fmt.Sprintf("line %d skipped: %v", report.Lines, err))
			continue
		}
		report.Decoded++
		report.Warnings = append(report.Warnings, warnings...)
		bookings = append(bookings, booking)
	}
	if err := scanner.Err(); err != nil {
		return nil, report, fmt.Errorf("read ledger: %w", err)
	}
	return bookings, report, nil
}

// Append encodes the booking in the newest layout and adds it as a new
// line. Existing lines are never touched.
func (l *Ledger) Append(booking model.Booking) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("append booking: %w", err)
	}
	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("append booking: %w", err)
	}
	if _, err := file.WriteString(Encode(booking) + "\n"); err != nil {
		file.Close()
		return fmt.Errorf("append booking: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("append booking: %w", err)
	}
	return nil
}

// UpdateInPlace replaces the stored record matching the incoming booking
// and rewrites the whole collection. Records are matched by numeric id plus
// short code when the incoming record carries one, by numeric id alone for
// pre-code records; first match wins. If nothing matches the call is a
// no-op and the file is left untouched.
//
// The delimited text medium has no stable line addressing once any line
// can change length, so the update path is always read-all, replace one,
// write-all. The write goes through a temp file renamed over the original
// so a failure mid-write can never leave the ledger truncated.
func (l *Ledger) UpdateInPlace(booking model.Booking) error {
	bookings, _, err := l.LoadAll()
	if err != nil {
		return err
	}

	matched := false
	for i := range bookings {
		if !matchesRecord(bookings[i], booking) {
			continue
		}
		bookings[i] = booking
		matched = true
		break
	}
	if !matched {
		return nil
	}
	return l.rewrite(bookings)
}

func matchesRecord(stored, incoming model.Booking) bool {
	if stored.Id != incoming.Id {
		return false
	}
	if incoming.Code == "" {
		return true
	}
	return strings.EqualFold(stored.Code, incoming.Code)
}

func (l *Ledger) rewrite(bookings []model.Booking) error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("rewrite ledger: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".bookings-*.tmp")
	if err != nil {
		return fmt.Errorf("rewrite ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, booking := range bookings {
		if _, err := w.WriteString(Encode(booking) + "\n"); err != nil {
			tmp.Close()
			return fmt.Errorf("rewrite ledger: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("rewrite ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("rewrite ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("rewrite ledger: %w", err)
	}
	return nil
}

// FindById returns the first stored booking with the given numeric id.
func (l *Ledger) FindById(id int) (model.Booking, bool, error) {
	bookings, _, err := l.LoadAll()
	if err != nil {
		return model.Booking{}, false, err
	}
	for _, booking := range bookings {
		if booking.Id == id {
			return booking, true, nil
		}
	}
	return model.Booking{}, false, nil
}

// FindByCode returns the first stored booking with the given short code,
// compared case-insensitively.
func (l *Ledger) FindByCode(code string) (model.Booking, bool, error) {
	bookings, _, err := l.LoadAll()
	if err != nil {
		return model.Booking{}, false, err
	}
	for _, booking := range bookings {
		if booking.Code != "" && strings.EqualFold(booking.Code, code) {
			return booking, true, nil
		}
	}
	return model.Booking{}, false, nil
}
