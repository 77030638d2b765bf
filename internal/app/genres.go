package app

import (
	"errors"
	"net/http"

	"github.com/dkaratas/theatre-reservation-system/api"
	"github.com/dkaratas/theatre-reservation-system/internal/domain"
)

func (app *Application) GetGenres(w http.ResponseWriter, r *http.Request) {
	pagination, err := paginationFromQuery(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	genres, metadata, err := app.genreRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	responses := make([]api.Genre, len(genres))
	for i, genre := range genres {
		responses[i] = toGenreResponse(genre)
	}

	resp := api.GenreListResponse{
		Genres:   responses,
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var input api.CreateGenreRequest

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

	genre := domain.Genre{
		Name: input.Name,
	}

	err = app.genreRepo.Create(r.Context(), &genre)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateName):
			app.conflictResponse(w, r, "A genre with this name already exists")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toGenreResponse(genre), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toGenreResponse(genre domain.Genre) api.Genre {
	return api.Genre{
		Id:   genre.ID,
		Name: genre.Name,
	}
}
