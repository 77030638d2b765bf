package app

import (
	"errors"
	"net/http"

	"github.com/dkaratas/theatre-reservation-system/api"
	"github.com/dkaratas/theatre-reservation-system/internal/domain"
)

func (app *Application) GetPerformances(w http.ResponseWriter, r *http.Request) {
	params, err := listPerformancesParamsFromQuery(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	performances, metadata, err := app.performanceRepo.GetAll(r.Context(), toPerformanceFilters(params))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	summaries := make([]api.PerformanceSummary, len(performances))
	for i, performance := range performances {
		available, err := app.availability.AvailableCount(r.Context(), performance.ID)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		summaries[i] = toPerformanceSummary(performance, available)
	}

	resp := api.PerformanceListResponse{
		Performances: summaries,
		Metadata:     toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetPerformanceById(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "performanceId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	performance, err := app.performanceRepo.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	takenSeats, err := app.availability.TakenSeats(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.PerformanceDetailResponse{
		Id:         performance.ID,
		ShowTime:   performance.ShowTime,
		Play:       toPlayResponse(performance.Play),
		Hall:       toHallResponse(performance.Hall),
		TakenSeats: toSeatPositions(takenSeats),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetPerformanceSeats reports which seats are already sold. Everything not in
// the list and inside the hall's grid is free to book.
func (app *Application) GetPerformanceSeats(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "performanceId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	takenSeats, err := app.availability.TakenSeats(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := api.TakenSeatsResponse{
		PerformanceId: id,
		Seats:         toSeatPositions(takenSeats),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreatePerformance(w http.ResponseWriter, r *http.Request) {
	var input api.CreatePerformanceRequest

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

	performance := domain.Performance{
		PlayID:   input.PlayId,
		HallID:   input.HallId,
		ShowTime: input.ShowTime,
	}

	err = app.performanceRepo.Create(r.Context(), &performance)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusUnprocessableEntity, "The referenced play or hall does not exist")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	detail, err := app.performanceRepo.GetByID(r.Context(), performance.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("created performance",
		"performance_id", performance.ID, "play_id", performance.PlayID, "hall_id", performance.HallID)

	resp := api.PerformanceDetailResponse{
		Id:         detail.ID,
		ShowTime:   detail.ShowTime,
		Play:       toPlayResponse(detail.Play),
		Hall:       toHallResponse(detail.Hall),
		TakenSeats: []api.SeatPosition{},
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func listPerformancesParamsFromQuery(r *http.Request) (api.ListPerformancesParams, error) {
	var params api.ListPerformancesParams
	var err error

	qs := r.URL.Query()

	params.Play, err = readIntQuery(qs, "play")
	if err != nil {
		return params, err
	}

	params.Date, err = readDateQuery(qs, "date")
	if err != nil {
		return params, err
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

func toPerformanceFilters(params api.ListPerformancesParams) domain.PerformanceFilters {
	filters := domain.PerformanceFilters{
		Pagination: domain.Pagination{
			Page:     DefaultPage,
			PageSize: DefaultPageSize,
		},
	}

	if params.Play != nil {
		filters.PlayID = *params.Play
	}
	if params.Date != nil {
		filters.Date = *params.Date
	}
	if params.Page != nil {
		filters.Page = *params.Page
	}
	if params.PageSize != nil {
		filters.PageSize = *params.PageSize
	}

	return filters
}

func toPerformanceSummary(performance domain.PerformanceSummary, available int) api.PerformanceSummary {
	return api.PerformanceSummary{
		Id:               performance.ID,
		ShowTime:         performance.ShowTime,
		PlayTitle:        performance.PlayTitle,
		HallName:         performance.HallName,
		HallCapacity:     performance.HallCapacity,
		TicketsAvailable: available,
	}
}

func toSeatPositions(seats []domain.SeatPosition) []api.SeatPosition {
	positions := make([]api.SeatPosition, len(seats))
	for i, seat := range seats {
		positions[i] = api.SeatPosition{Row: seat.Row, Seat: seat.Seat}
	}

	return positions
}
