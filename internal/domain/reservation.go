package domain

import (
	"context"
	"time"
)

// Reservation is one booking basket: the tickets a user committed together
// for a single performance. Reference is the opaque code quoted back to the
// user in confirmations.
type Reservation struct {
	ID        int
	Reference string
	UserID    int
	CreatedAt time.Time
	Tickets   []Ticket
}

type ReservationSummary struct {
	ID        int
	Reference string
	PlayTitle string
	HallName  string
	ShowTime  time.Time
	Seats     []SeatPosition
	CreatedAt time.Time
}

type ReservationRepository interface {
	// CreateWithTickets persists the reservation and every ticket in its
	// basket in one transaction, re-validating each seat against its hall
	// layout under a shared lock so layout replacements serialize with the
	// basket. Any seat conflict rolls the whole basket back and surfaces as
	// ErrSeatAlreadyTaken; an out-of-grid seat as *InvalidSeatError.
	CreateWithTickets(ctx context.Context, reservation *Reservation) error
	GetSummariesByUserID(ctx context.Context, userID int, pagination Pagination) ([]ReservationSummary, *Metadata, error)
	// Delete removes the reservation; its tickets are released by cascade.
	// It returns the ids of the performances whose seats were freed.
	Delete(ctx context.Context, id int) ([]int, error)
}
