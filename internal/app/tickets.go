package app

import (
	"errors"
	"net/http"

	"github.com/dkaratas/theatre-reservation-system/api"
	"github.com/dkaratas/theatre-reservation-system/internal/domain"
)

// CreateTicket commits a single seat into an existing reservation. The bulk
// path for new baskets is POST /reservations.
func (app *Application) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var input api.CreateTicketRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	ticketID, err := app.ledger.Commit(r.Context(), input.PerformanceId, input.Row, input.Seat, input.ReservationId)
	if err != nil {
		var seatErr *domain.InvalidSeatError

		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.As(err, &seatErr):
			app.invalidSeatResponse(w, r, seatErr)
		case errors.Is(err, domain.ErrSeatAlreadyTaken):
			app.conflictResponse(w, r, ErrSeatTaken)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if err := app.availability.Invalidate(r.Context(), input.PerformanceId); err != nil {
		app.logError(r, err)
	}

	app.contextGetLogger(r).Info("committed ticket",
		"ticket_id", ticketID,
		"performance_id", input.PerformanceId,
		"row", input.Row,
		"seat", input.Seat)

	ticket := domain.Ticket{
		ID:            ticketID,
		Row:           input.Row,
		Seat:          input.Seat,
		PerformanceID: input.PerformanceId,
		ReservationID: input.ReservationId,
	}

	err = app.writeJSON(w, http.StatusCreated, toTicketResponse(ticket), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// DeleteTicket releases one committed seat without touching the rest of its
// reservation.
func (app *Application) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "ticketId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ticket, err := app.ledger.Release(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if err := app.availability.Invalidate(r.Context(), ticket.PerformanceID); err != nil {
		app.logError(r, err)
	}

	app.contextGetLogger(r).Info("released ticket",
		"ticket_id", id,
		"performance_id", ticket.PerformanceID,
		"row", ticket.Row,
		"seat", ticket.Seat)

	w.WriteHeader(http.StatusNoContent)
}

func toTicketResponse(ticket domain.Ticket) api.Ticket {
	return api.Ticket{
		Id:            ticket.ID,
		Row:           ticket.Row,
		Seat:          ticket.Seat,
		PerformanceId: ticket.PerformanceID,
		ReservationId: ticket.ReservationID,
	}
}
