package domain

import (
	"context"
	"fmt"
	"strings"
)

type Ticket struct {
	ID            int
	Row           int
	Seat          int
	PerformanceID int
	ReservationID int
}

// SeatPosition identifies one physical seat within a hall's grid.
type SeatPosition struct {
	Row  int
	Seat int
}

// SeatFieldError describes a single out-of-range field of a requested seat.
type SeatFieldError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e SeatFieldError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
}

// InvalidSeatError carries every range violation of a requested seat, so a
// caller sees both a bad row and a bad seat number in one response.
type InvalidSeatError struct {
	Fields []SeatFieldError
}

func (e *InvalidSeatError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return strings.Join(msgs, "; ")
}

// ValidateSeat checks a requested (row, seat) against the hall's grid. It is
// pure and evaluates both bounds rather than stopping at the first violation.
// A nil return means the position exists in the hall.
func ValidateSeat(hall Hall, row, seat int) error {
	if hall.Contains(row, seat) {
		return nil
	}

	var fields []SeatFieldError

	if row < 1 || row > hall.Rows {
		fields = append(fields, SeatFieldError{Field: "row", Value: row, Min: 1, Max: hall.Rows})
	}
	if seat < 1 || seat > hall.SeatsPerRow {
		fields = append(fields, SeatFieldError{Field: "seat", Value: seat, Min: 1, Max: hall.SeatsPerRow})
	}

	return &InvalidSeatError{Fields: fields}
}

type TicketRepository interface {
	// Insert atomically records the ticket, relying on the store's unique
	// constraint over (performance_id, row, seat). The implementation must
	// re-validate the seat against the hall layout inside the insert
	// transaction, holding a shared lock on the hall, so commits serialize
	// with layout replacements. A conflicting ticket surfaces as
	// ErrSeatAlreadyTaken, an out-of-grid seat as *InvalidSeatError, and a
	// missing performance as ErrRecordNotFound.
	Insert(ctx context.Context, ticket *Ticket) error
	// Delete removes a committed ticket and returns it, so callers can
	// tell which performance's seat was freed. ErrRecordNotFound when
	// absent.
	Delete(ctx context.Context, id int) (*Ticket, error)
	// GetSeatsByPerformance returns the committed positions ordered by
	// (row, seat) ascending. No tickets yields an empty slice, not an error.
	GetSeatsByPerformance(ctx context.Context, performanceID int) ([]SeatPosition, error)
	CountByPerformance(ctx context.Context, performanceID int) (int, error)
}
