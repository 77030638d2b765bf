package app

import (
	"errors"
	"net/http"

	"github.com/dkaratas/theatre-reservation-system/api"
	"github.com/dkaratas/theatre-reservation-system/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

func (app *Application) GetHalls(w http.ResponseWriter, r *http.Request) {
	pagination, err := paginationFromQuery(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	halls, metadata, err := app.hallRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.HallListResponse{
		Halls:    toHallResponses(halls),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetHallById(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "hallId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	hall, err := app.hallRepo.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, toHallResponse(*hall), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateHall(w http.ResponseWriter, r *http.Request) {
	var input api.CreateHallRequest

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

	hall := domain.Hall{
		Name:        input.Name,
		Rows:        input.Rows,
		SeatsPerRow: input.SeatsPerRow,
	}

	err = app.hallRepo.Create(r.Context(), &hall)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("created hall", "hall_id", hall.ID, "capacity", hall.Capacity())

	err = app.writeJSON(w, http.StatusCreated, toHallResponse(hall), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ReplaceHall swaps a hall's layout wholesale. A layout that no longer seats
// every sold ticket is refused with a conflict rather than stranding them.
func (app *Application) ReplaceHall(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "hallId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.ReplaceHallRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	hall := domain.Hall{
		ID:          id,
		Name:        input.Name,
		Rows:        input.Rows,
		SeatsPerRow: input.SeatsPerRow,
	}

	err = app.hallRepo.Replace(r.Context(), hall)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrCapacityShrink):
			app.conflictResponse(w, r, ErrLayoutConflict)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.contextGetLogger(r).Info("replaced hall layout", "hall_id", hall.ID, "capacity", hall.Capacity())

	err = app.writeJSON(w, http.StatusOK, toHallResponse(hall), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toHallResponses(halls []domain.Hall) []api.Hall {
	responses := make([]api.Hall, len(halls))
	for i, hall := range halls {
		responses[i] = toHallResponse(hall)
	}

	return responses
}

func toHallResponse(hall domain.Hall) api.Hall {
	return api.Hall{
		Id:          hall.ID,
		Name:        hall.Name,
		Rows:        hall.Rows,
		SeatsPerRow: hall.SeatsPerRow,
		Capacity:    hall.Capacity(),
	}
}

func paginationFromQuery(r *http.Request) (domain.Pagination, error) {
	pagination := domain.Pagination{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	qs := r.URL.Query()

	page, err := readIntQuery(qs, "page")
	if err != nil {
		return pagination, err
	}
	if page != nil {
		pagination.Page = *page
	}

	pageSize, err := readIntQuery(qs, "pageSize")
	if err != nil {
		return pagination, err
	}
	if pageSize != nil {
		pagination.PageSize = *pageSize
	}

	if pagination.Page < 1 {
		return pagination, errors.New("query parameter page must be at least 1")
	}
	if pagination.PageSize < 1 || pagination.PageSize > 100 {
		return pagination, errors.New("query parameter pageSize must be between 1 and 100")
	}

	return pagination, nil
}

func toApiMetadata(metadata *domain.Metadata) *api.Metadata {
	if metadata == nil {
		return nil
	}

	return &api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
