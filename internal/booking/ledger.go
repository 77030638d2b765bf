// Package booking holds the seat allocation core: the ledger that is the
// sole gatekeeper for committing tickets, and the read-side availability
// queries derived from it.
package booking

import (
	"context"
	"fmt"

	"github.com/dkaratas/theatre-reservation-system/internal/domain"
	"github.com/google/uuid"
)

// Ledger validates and commits seat reservations against hall layouts. The
// backing store's unique constraint over (performance, row, seat) is the
// authority on double booking; the ledger never caches taken seats, so any
// number of processes can share one database.
type Ledger struct {
	performances domain.PerformanceRepository
	tickets      domain.TicketRepository
	reservations domain.ReservationRepository
}

func NewLedger(
	performances domain.PerformanceRepository,
	tickets domain.TicketRepository,
	reservations domain.ReservationRepository,
) *Ledger {
	return &Ledger{
		performances: performances,
		tickets:      tickets,
		reservations: reservations,
	}
}

// Commit validates the requested seat against the performance's hall and
// atomically records a ticket for it. The validation here fails fast without
// opening a transaction; the repository re-validates under a lock on the hall
// row, which is what makes a commit safe against a concurrent layout
// replacement.
//
// Expected failures are returned as ordinary values: ErrRecordNotFound when
// the performance does not exist, *InvalidSeatError when the position lies
// outside the hall's grid, and ErrSeatAlreadyTaken when another ticket holds
// the same (performance, row, seat) key. A commit that times out leaves no
// partial record, so retrying is safe: a retry either proceeds normally or
// re-observes ErrSeatAlreadyTaken if the first attempt actually landed.
func (l *Ledger) Commit(ctx context.Context, performanceID, row, seat, reservationID int) (int, error) {
	hall, err := l.performances.GetHall(ctx, performanceID)
	if err != nil {
		return 0, err
	}

	if err := domain.ValidateSeat(*hall, row, seat); err != nil {
		return 0, err
	}

	ticket := domain.Ticket{
		Row:           row,
		Seat:          seat,
		PerformanceID: performanceID,
		ReservationID: reservationID,
	}

	if err := l.tickets.Insert(ctx, &ticket); err != nil {
		return 0, err
	}

	return ticket.ID, nil
}

// CommitBasket creates a reservation and commits every requested seat in one
// transaction. One invalid or taken seat rolls the whole basket back.
func (l *Ledger) CommitBasket(ctx context.Context, userID, performanceID int, seats []domain.SeatPosition) (*domain.Reservation, error) {
	hall, err := l.performances.GetHall(ctx, performanceID)
	if err != nil {
		return nil, err
	}

	claimed := make(map[domain.SeatPosition]bool, len(seats))

	for _, pos := range seats {
		if err := domain.ValidateSeat(*hall, pos.Row, pos.Seat); err != nil {
			return nil, err
		}
		if claimed[pos] {
			return nil, fmt.Errorf("seat (%d, %d) requested twice in one basket: %w",
				pos.Row, pos.Seat, domain.ErrSeatAlreadyTaken)
		}
		claimed[pos] = true
	}

	reservation := domain.Reservation{
		Reference: uuid.New().String(),
		UserID:    userID,
		Tickets:   make([]domain.Ticket, len(seats)),
	}

	for i, pos := range seats {
		reservation.Tickets[i] = domain.Ticket{
			Row:           pos.Row,
			Seat:          pos.Seat,
			PerformanceID: performanceID,
		}
	}

	if err := l.reservations.CreateWithTickets(ctx, &reservation); err != nil {
		return nil, err
	}

	return &reservation, nil
}

// Release removes a committed ticket and returns it, freeing its seat.
// ErrRecordNotFound when no such ticket exists.
func (l *Ledger) Release(ctx context.Context, ticketID int) (*domain.Ticket, error) {
	return l.tickets.Delete(ctx, ticketID)
}
