package store

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cinebook/model"
)

const (
	fieldDelim = ","
	seatDelim  = ";"
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// MovieResolver looks a movie up by its free-text title. It is only
// consulted when decoding legacy records that predate catalog ids.
type MovieResolver interface {
	ResolveByTitle(title string) (model.Movie, bool)
}

// layout is one historical field arrangement of a stored record line.
// Layouts are registered in strictly decreasing field count; detection is
// by field count alone, so the longest (most recent) layout always wins a
// tie. Keep the list append-only as formats evolve.
type layout struct {
	name     string
	fieldMin int
	decode   func(d *Decoder, fields []string) (model.Booking, []string, error)
}

// Decoder turns one delimited ledger line into a canonical Booking,
// detecting which historical layout produced it.
type Decoder struct {
	resolver MovieResolver
	layouts  []layout
}

// NewDecoder builds a decoder over every known ledger layout. resolver may
// be nil; legacy titles then stay unresolved with a warning.
func NewDecoder(resolver MovieResolver) *Decoder {
	return &Decoder{
		resolver: resolver,
		layouts: []layout{
			{name: "full", fieldMin: 14, decode: (*Decoder).decodeFull},
			{name: "pre-code", fieldMin: 13, decode: (*Decoder).decodePreCode},
			{name: "legacy+status", fieldMin: 11, decode: (*Decoder).decodeLegacy},
			{name: "legacy+seats", fieldMin: 10, decode: (*Decoder).decodeLegacy},
			{name: "legacy", fieldMin: 9, decode: (*Decoder).decodeLegacy},
		},
	}
}

// Decode parses one stored line. Warnings report degraded but usable data
// (unresolved movie title, unparseable timestamp); an error means the line
// is unusable and should be skipped.
func (d *Decoder) Decode(line string) (model.Booking, []string, error) {
	fields, err := splitFields(line)
	if err != nil {
		return model.Booking{}, nil, err
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	for _, l := range d.layouts {
		if len(fields) >= l.fieldMin {
			booking, warnings, err := l.decode(d, fields)
			if err != nil {
				return model.Booking{}, nil, fmt.Errorf("%s layout: %w", l.name, err)
			}
			return booking, warnings, nil
		}
	}
	return model.Booking{}, nil, fmt.Errorf("unrecognized record: %d fields", len(fields))
}

// splitFields splits a line into raw fields. The primary ledger format is
// plain comma-delimited with no escaping, but one historical variant wrote
// quoted fields; those lines are handed to a CSV reader instead.
func splitFields(line string) ([]string, error) {
	if !strings.Contains(line, `"`) {
		return strings.Split(line, fieldDelim), nil
	}
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("quoted record: %w", err)
	}
	return fields, nil
}

// decodeFull handles the current 14-field layout:
// id, code, movieId, movieTitle, movieGenre, name, email, tickets,
// total, date, time, showtime, seats, status.
func (d *Decoder) decodeFull(fields []string) (model.Booking, []string, error) {
	booking, warnings, err := d.decodeCommon(fields[0], fields[5], fields[6], fields[7], fields[8], fields[9], fields[10], fields[11])
	if err != nil {
		return model.Booking{}, nil, err
	}
	booking.Code = strings.ToUpper(fields[1])
	booking.MovieId = fields[2]
	booking.MovieTitle = fields[3]
	booking.MovieGenre = fields[4]
	booking.Seats = splitSeats(fields[12])
	booking.Status = model.ParseStatus(fields[13])
	return booking, warnings, nil
}

// decodePreCode handles the 13-field layout written before short codes
// existed. Field positions match the full layout shifted down by one; the
// booking stays addressable by numeric id only.
func (d *Decoder) decodePreCode(fields []string) (model.Booking, []string, error) {
	booking, warnings, err := d.decodeCommon(fields[0], fields[4], fields[5], fields[6], fields[7], fields[8], fields[9], fields[10])
	if err != nil {
		return model.Booking{}, nil, err
	}
	booking.MovieId = fields[1]
	booking.MovieTitle = fields[2]
	booking.MovieGenre = fields[3]
	booking.Seats = splitSeats(fields[11])
	booking.Status = model.ParseStatus(fields[12])
	return booking, warnings, nil
}

// decodeLegacy handles the oldest family of layouts (9 to 11 fields):
// id, movieTitle, name, email, tickets, total, date, time, showtime, with
// seats and status as optional trailing fields. The movie carried only a
// title, so catalog id and genre are recovered by title lookup.
func (d *Decoder) decodeLegacy(fields []string) (model.Booking, []string, error) {
	booking, warnings, err := d.decodeCommon(fields[0], fields[2], fields[3], fields[4], fields[5], fields[6], fields[7], fields[8])
	if err != nil {
		return model.Booking{}, nil, err
	}
	booking.MovieTitle = fields[1]
	if len(fields) >= 10 {
		booking.Seats = splitSeats(fields[9])
	}
	if len(fields) >= 11 {
		booking.Status = model.ParseStatus(fields[10])
	}
	if booking.MovieTitle != "" {
		if d.resolver != nil {
			if movie, ok := d.resolver.ResolveByTitle(booking.MovieTitle); ok {
				booking.MovieId = movie.Id
				booking.MovieGenre = movie.GenrePrefix
			} else {
				warnings = append(warnings, fmt.Sprintf("booking %d: movie %q not in catalog", booking.Id, booking.MovieTitle))
			}
		} else {
			warnings = append(warnings, fmt.Sprintf("booking %d: no catalog to resolve movie %q", booking.Id, booking.MovieTitle))
		}
	}
	return booking, warnings, nil
}

// decodeCommon parses the fields every layout shares. A numeric field that
// fails to parse makes the whole line undecodable.
func (d *Decoder) decodeCommon(id, name, email, tickets, total, date, clock, showtime string) (model.Booking, []string, error) {
	numericId, err := strconv.Atoi(id)
	if err != nil {
		return model.Booking{}, nil, fmt.Errorf("booking id %q: %w", id, err)
	}
	ticketCount, err := strconv.Atoi(tickets)
	if err != nil {
		return model.Booking{}, nil, fmt.Errorf("ticket count %q: %w", tickets, err)
	}
	totalPrice, err := strconv.ParseFloat(total, 64)
	if err != nil {
		return model.Booking{}, nil, fmt.Errorf("total price %q: %w", total, err)
	}

	var warnings []string
	createdAt, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+clock, time.Local)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("booking %d: bad timestamp %q %q", numericId, date, clock))
	}

	return model.Booking{
		Id:            numericId,
		CustomerName:  name,
		CustomerEmail: email,
		Tickets:       ticketCount,
		TotalPrice:    totalPrice,
		CreatedAt:     createdAt,
		Showtime:      showtime,
		Status:        model.StatusConfirmed,
	}, warnings, nil
}

func splitSeats(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, seatDelim)
	seats := make([]string, 0, len(parts))
	for _, part := range parts {
		if seat := strings.ToUpper(strings.TrimSpace(part)); seat != "" {
			seats = append(seats, seat)
		}
	}
	return seats
}

// Encode renders a booking in the newest layout. Free-text fields have the
// delimiter replaced so a stray comma can never shift every later field.
func Encode(b model.Booking) string {
	fields := []string{
		strconv.Itoa(b.Id),
		strings.ToUpper(b.Code),
		sanitize(b.MovieId),
		sanitize(b.MovieTitle),
		sanitize(b.MovieGenre),
		sanitize(b.CustomerName),
		sanitize(b.CustomerEmail),
		strconv.Itoa(b.Tickets),
		fmt.Sprintf("%.2f", b.TotalPrice),
		b.CreatedAt.Format(dateLayout),
		b.CreatedAt.Format(timeLayout),
		sanitize(b.Showtime),
		strings.Join(b.Seats, seatDelim),
		string(b.Status),
	}
	return strings.Join(fields, fieldDelim)
}

func sanitize(field string) string {
	return strings.ReplaceAll(field, fieldDelim, " ")
}
