package service

import "errors"

var (
	ErrSeatTaken        = errors.New("seat is already booked")
	ErrSeatSelected     = errors.New("seat is already in this selection")
	ErrSeatFormat       = errors.New("seat must be a row letter followed by a column number")
	ErrSeatOutOfRange   = errors.New("seat is outside the auditorium")
	ErrNotEnoughSeats   = errors.New("not enough seats available")
	ErrTicketCount      = errors.New("ticket count must be positive")
	ErrSelectionShort   = errors.New("selection has fewer seats than tickets")
	ErrSelectionFull    = errors.New("selection already has a seat per ticket")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrSeatConflict     = errors.New("a seat on this booking has since been booked by someone else")
	ErrUnknownMovie     = errors.New("movie is not in the catalog")
	ErrEmailTaken       = errors.New("an account with this email already exists")
	ErrBadCredentials   = errors.New("email or password is incorrect")
	ErrInvalidName      = errors.New("name must be at least 2 characters")
	ErrInvalidEmail     = errors.New("email address looks invalid")
	ErrWeakPassword     = errors.New("password must be at least 6 characters")
)
