package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"cinebook/model"
	"cinebook/store"
)

// Bookings orchestrates the booking lifecycle over the ledger, the seat
// inventory and the id allocator. One instance serves one interactive
// session; there is no concurrent writer.
type Bookings struct {
	ledger  *store.Ledger
	catalog *store.Catalog
	inv     *Inventory
	alloc   *Allocator

	report    store.LoadReport
	conflicts int
}

// NewBookings replays the ledger and derives all in-memory state from it:
// the seat grid, the used-code set and the load diagnostics.
func NewBookings(ledger *store.Ledger, catalog *store.Catalog, rows, cols int) (*Bookings, error) {
	inv, err := NewInventory(rows, cols)
	if err != nil {
		return nil, err
	}
	s := &Bookings{ledger: ledger, catalog: catalog, inv: inv}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Bookings) reload() error {
	bookings, report, err := s.ledger.LoadAll()
	if err != nil {
		return err
	}
	s.report = report
	s.conflicts = s.inv.Rebuild(bookings)
	s.alloc = NewAllocator(bookings)
	return nil
}

// Inventory exposes the live seat grid for rendering and availability
// queries.
func (s *Bookings) Inventory() *Inventory { return s.inv }

// Catalog exposes the movie catalog.
func (s *Bookings) Catalog() *store.Catalog { return s.catalog }

// LoadReport returns the diagnostics from the startup ledger replay.
func (s *Bookings) LoadReport() store.LoadReport { return s.report }

// SeatConflicts returns how many seats were claimed by more than one
// active booking during the replay. Anything above zero means the stored
// history is corrupted; the later booking kept each contested seat.
func (s *Bookings) SeatConflicts() int { return s.conflicts }

// Attempt is one in-flight booking flow: a movie, a ticket count, the
// seats picked so far and a short code reserved up front. Nothing about an
// attempt is durable until Confirm succeeds.
type Attempt struct {
	Movie   model.Movie
	Tickets int
	Seats   []string

	svc  *Bookings
	code string
	done bool
}

// Begin starts a booking attempt for a catalog movie. The short code is
// reserved immediately so no parallel flow inside the session can draw the
// same one; Abandon gives it back.
func (s *Bookings) Begin(movieId string, tickets int) (*Attempt, error) {
	movie, ok := s.catalog.MovieById(movieId)
	if !ok {
		return nil, ErrUnknownMovie
	}
	if tickets <= 0 {
		return nil, ErrTicketCount
	}
	if tickets > s.inv.AvailableCount() {
		return nil, ErrNotEnoughSeats
	}
	return &Attempt{
		Movie:   movie,
		Tickets: tickets,
		svc:     s,
		code:    s.alloc.ReserveCode(),
	}, nil
}

// Code returns the short code reserved for this attempt.
func (a *Attempt) Code() string { return a.code }

// Complete reports whether a seat has been picked for every ticket.
func (a *Attempt) Complete() bool { return len(a.Seats) == a.Tickets }

// Total is the attempt's price: tickets times the movie's unit price.
func (a *Attempt) Total() float64 {
	return math.Round(a.Movie.Price*float64(a.Tickets)*100) / 100
}

// SelectSeat adds one seat to the selection and tentatively reserves it in
// the inventory. Re-picking a seat from this selection, or picking a seat
// someone else holds, is rejected without disturbing the seats already
// picked.
func (a *Attempt) SelectSeat(seat string) error {
	if a.Complete() {
		return ErrSelectionFull
	}
	canonical, err := a.svc.inv.Normalize(seat)
	if err != nil {
		return err
	}
	for _, picked := range a.Seats {
		if picked == canonical {
			return ErrSeatSelected
		}
	}
	if !a.svc.inv.IsAvailable(canonical) {
		return ErrSeatTaken
	}
	a.svc.inv.Reserve(canonical)
	a.Seats = append(a.Seats, canonical)
	return nil
}

// UnselectSeat drops a seat from the selection and releases its tentative
// hold. Unknown seats are ignored.
func (a *Attempt) UnselectSeat(seat string) {
	canonical, err := a.svc.inv.Normalize(seat)
	if err != nil {
		return
	}
	for i, picked := range a.Seats {
		if picked == canonical {
			a.Seats = append(a.Seats[:i], a.Seats[i+1:]...)
			a.svc.inv.Release(canonical)
			return
		}
	}
}

// Selected reports whether the seat is part of this attempt's selection.
func (a *Attempt) Selected(seat string) bool {
	canonical, err := a.svc.inv.Normalize(seat)
	if err != nil {
		return false
	}
	for _, picked := range a.Seats {
		if picked == canonical {
			return true
		}
	}
	return false
}

// Abandon releases every tentative seat and the reserved short code. Safe
// to call on an attempt that was never completed or was already
// confirmed.
func (a *Attempt) Abandon() {
	if a.done {
		return
	}
	for _, seat := range a.Seats {
		a.svc.inv.Release(seat)
	}
	a.Seats = nil
	a.svc.alloc.ReleaseCode(a.code)
	a.done = true
}

// Confirm persists the attempt as a Confirmed booking. The numeric id is
// taken from a fresh ledger scan at confirmation time, so edits made to
// the file behind the process's back still produce a unique id. On a save
// failure the attempt stays open: its seats remain tentatively held and
// nothing durable has happened.
func (a *Attempt) Confirm(customerName, customerEmail string) (model.Booking, error) {
	if !a.Complete() {
		return model.Booking{}, ErrSelectionShort
	}
	existing, _, err := a.svc.ledger.LoadAll()
	if err != nil {
		return model.Booking{}, err
	}
	booking := model.Booking{
		Id:            NextId(existing),
		Code:          a.code,
		MovieId:       a.Movie.Id,
		MovieTitle:    a.Movie.Title,
		MovieGenre:    a.Movie.GenrePrefix,
		CustomerName:  strings.TrimSpace(customerName),
		CustomerEmail: strings.TrimSpace(customerEmail),
		Tickets:       a.Tickets,
		TotalPrice:    a.Total(),
		CreatedAt:     time.Now(),
		Showtime:      a.Movie.Showtime,
		Seats:         append([]string(nil), a.Seats...),
		Status:        model.StatusConfirmed,
	}
	if err := a.svc.ledger.Append(booking); err != nil {
		return model.Booking{}, err
	}
	a.done = true
	return booking, nil
}

// All returns every booking in the ledger, oldest first.
func (s *Bookings) All() ([]model.Booking, error) {
	bookings, _, err := s.ledger.LoadAll()
	return bookings, err
}

// ByEmail returns the bookings whose customer email matches,
// case-insensitively.
func (s *Bookings) ByEmail(email string) ([]model.Booking, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	var matched []model.Booking
	for _, booking := range all {
		if strings.EqualFold(booking.CustomerEmail, strings.TrimSpace(email)) {
			matched = append(matched, booking)
		}
	}
	return matched, nil
}

// Find looks a booking up by whatever the user typed: an all-digits query
// is a numeric id, anything else a short code.
func (s *Bookings) Find(query string) (model.Booking, bool, error) {
	query = strings.TrimSpace(query)
	if id, err := strconv.Atoi(query); err == nil {
		return s.ledger.FindById(id)
	}
	return s.ledger.FindByCode(query)
}

// Cancel transitions a confirmed booking to Cancelled, persists the
// change, and releases its seats. Cancelling twice is reported as
// ErrAlreadyCancelled, which callers treat as a friendly no-op.
func (s *Bookings) Cancel(booking model.Booking) (model.Booking, error) {
	if booking.Status == model.StatusCancelled {
		return booking, ErrAlreadyCancelled
	}
	booking.Status = model.StatusCancelled
	if err := s.ledger.UpdateInPlace(booking); err != nil {
		return model.Booking{}, err
	}
	for _, seat := range booking.Seats {
		s.inv.Release(seat)
	}
	return booking, nil
}

// SetTickets changes a booking's ticket count, keeping the original unit
// price, and persists the change. The seat list is left as recorded; seat
// counts and ticket counts were already allowed to drift apart in older
// records.
func (s *Bookings) SetTickets(booking model.Booking, count int) (model.Booking, error) {
	if count <= 0 {
		return model.Booking{}, ErrTicketCount
	}
	booking.SetTickets(count)
	if err := s.ledger.UpdateInPlace(booking); err != nil {
		return model.Booking{}, err
	}
	return booking, nil
}

// SetStatus is the administrative status override. It can also move a
// booking back from Cancelled to Confirmed; because the seats may have
// been resold in the meantime, reinstatement is refused with
// ErrSeatConflict if any seat on the booking is now held elsewhere.
func (s *Bookings) SetStatus(booking model.Booking, status model.BookingStatus) (model.Booking, error) {
	if booking.Status == status {
		return booking, nil
	}
	if status == model.StatusConfirmed {
		for _, seat := range booking.Seats {
			if !s.inv.IsAvailable(seat) {
				return model.Booking{}, ErrSeatConflict
			}
		}
	}
	booking.Status = status
	if err := s.ledger.UpdateInPlace(booking); err != nil {
		return model.Booking{}, err
	}
	for _, seat := range booking.Seats {
		if status == model.StatusConfirmed {
			s.inv.Reserve(seat)
		} else {
			s.inv.Release(seat)
		}
	}
	return booking, nil
}
