package app

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dkaratas/theatre-reservation-system/api"
	"github.com/dkaratas/theatre-reservation-system/internal/domain"
)

func (app *Application) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var input api.CreateReservationRequest

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

	seats := make([]domain.SeatPosition, len(input.Seats))
	for i, seat := range input.Seats {
		seats[i] = domain.SeatPosition{Row: seat.Row, Seat: seat.Seat}
	}

	reservation, err := app.ledger.CommitBasket(r.Context(), input.UserId, input.PerformanceId, seats)
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

	app.contextGetLogger(r).Info("committed reservation",
		"reservation_id", reservation.ID,
		"reference", reservation.Reference,
		"performance_id", input.PerformanceId,
		"seats", len(reservation.Tickets))

	if input.Email != "" {
		app.sendReservationConfirmation(r, input.Email, *reservation, input.PerformanceId)
	}

	err = app.writeJSON(w, http.StatusCreated, toReservationResponse(*reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetReservations(w http.ResponseWriter, r *http.Request) {
	params, err := listReservationsParamsFromQuery(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	pagination := domain.Pagination{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
	if params.Page != nil {
		pagination.Page = *params.Page
	}
	if params.PageSize != nil {
		pagination.PageSize = *params.PageSize
	}

	summaries, metadata, err := app.reservationRepo.GetSummariesByUserID(r.Context(), params.UserId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ReservationListResponse{
		Reservations: toReservationSummaries(summaries),
		Metadata:     toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// DeleteReservation cancels a whole basket. Every seat it held becomes
// bookable again the moment the cascade commits.
func (app *Application) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "reservationId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	performanceIDs, err := app.reservationRepo.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	for _, performanceID := range performanceIDs {
		if err := app.availability.Invalidate(r.Context(), performanceID); err != nil {
			app.logError(r, err)
		}
	}

	app.contextGetLogger(r).Info("cancelled reservation", "reservation_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// sendReservationConfirmation delivers the confirmation mail off the request
// goroutine; a failed delivery is logged but never fails the booking.
func (app *Application) sendReservationConfirmation(r *http.Request, email string, reservation domain.Reservation, performanceID int) {
	logger := app.contextGetLogger(r)

	performance, err := app.performanceRepo.GetByID(r.Context(), performanceID)
	if err != nil {
		logger.Error("failed to load performance for confirmation mail", "error", err)
		return
	}

	seats := make([]string, len(reservation.Tickets))
	for i, ticket := range reservation.Tickets {
		seats[i] = fmt.Sprintf("row %d seat %d", ticket.Row, ticket.Seat)
	}

	data := map[string]any{
		"reference": reservation.Reference,
		"playTitle": performance.Play.Title,
		"seats":     strings.Join(seats, ", "),
	}

	go func() {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic during confirmation mail delivery", "error", fmt.Sprintf("%s", err))
			}
		}()

		err := app.mailer.Send(email, "reservation_confirmation.tmpl", data)
		if err != nil {
			logger.Error("failed to send confirmation mail", "error", err)
		}
	}()
}

func listReservationsParamsFromQuery(r *http.Request) (api.ListReservationsParams, error) {
	var params api.ListReservationsParams

	qs := r.URL.Query()

	userID, err := readIntQuery(qs, "userId")
	if err != nil {
		return params, err
	}
	if userID != nil {
		params.UserId = *userID
	}

	params.Page, err = readIntQuery(qs, "page")
	if err != nil {
		return params, err
	}

	params.PageSize, err = readIntQuery(qs, "pageSize")
	if err != nil {
		return params, err
	}

	return params, nil
}

func toReservationResponse(reservation domain.Reservation) api.ReservationResponse {
	resp := api.ReservationResponse{
		Id:        reservation.ID,
		Reference: reservation.Reference,
		UserId:    reservation.UserID,
		CreatedAt: reservation.CreatedAt,
		Tickets:   make([]api.Ticket, len(reservation.Tickets)),
	}

	for i, ticket := range reservation.Tickets {
		resp.Tickets[i] = toTicketResponse(ticket)
	}

	return resp
}

func toReservationSummaries(summaries []domain.ReservationSummary) []api.ReservationSummary {
	responses := make([]api.ReservationSummary, len(summaries))

	for i, summary := range summaries {
		responses[i] = api.ReservationSummary{
			Id:        summary.ID,
			Reference: summary.Reference,
			PlayTitle: summary.PlayTitle,
			HallName:  summary.HallName,
			ShowTime:  summary.ShowTime,
			Seats:     toSeatPositions(summary.Seats),
			CreatedAt: summary.CreatedAt,
		}
	}

	return responses
}
