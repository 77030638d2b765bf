package app

import (
	"errors"
	"net/http"

	"github.com/dkaratas/theatre-reservation-system/api"
	"github.com/dkaratas/theatre-reservation-system/internal/domain"
)

func (app *Application) GetPlays(w http.ResponseWriter, r *http.Request) {
	params, err := listPlaysParamsFromQuery(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	plays, metadata, err := app.playRepo.GetAll(r.Context(), toPlayFilters(params))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.PlayListResponse{
		Plays:    toPlayResponses(plays),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetPlayById(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "playId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	play, err := app.playRepo.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, toPlayResponse(*play), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreatePlay(w http.ResponseWriter, r *http.Request) {
	var input api.CreatePlayRequest

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

	play := domain.Play{
		Title:       input.Title,
		Description: input.Description,
	}

	for _, actorID := range input.ActorIds {
		play.Actors = append(play.Actors, domain.Actor{ID: actorID})
	}
	for _, genreID := range input.GenreIds {
		play.Genres = append(play.Genres, domain.Genre{ID: genreID})
	}

	err = app.playRepo.Create(r.Context(), &play)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusUnprocessableEntity, "One or more referenced actors or genres do not exist")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	created, err := app.playRepo.GetByID(r.Context(), play.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("created play", "play_id", play.ID)

	err = app.writeJSON(w, http.StatusCreated, toPlayResponse(*created), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func listPlaysParamsFromQuery(r *http.Request) (api.ListPlaysParams, error) {
	var params api.ListPlaysParams

	qs := r.URL.Query()

	if title := readStringQuery(qs, "title"); title != nil {
		params.Title = *title
	}

	genres, err := readIntListQuery(qs, "genres")
	if err != nil {
		return params, err
	}
	params.Genres = genres

	actors, err := readIntListQuery(qs, "actors")
	if err != nil {
		return params, err
	}
	params.Actors = actors

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

func toPlayFilters(params api.ListPlaysParams) domain.PlayFilters {
	filters := domain.PlayFilters{
		Title:    params.Title,
		GenreIDs: params.Genres,
		ActorIDs: params.Actors,
		Pagination: domain.Pagination{
			Page:     DefaultPage,
			PageSize: DefaultPageSize,
		},
	}

	if params.Page != nil {
		filters.Page = *params.Page
	}
	if params.PageSize != nil {
		filters.PageSize = *params.PageSize
	}

	return filters
}

func toPlayResponses(plays []domain.Play) []api.Play {
	responses := make([]api.Play, len(plays))
	for i, play := range plays {
		responses[i] = toPlayResponse(play)
	}

	return responses
}

func toPlayResponse(play domain.Play) api.Play {
	resp := api.Play{
		Id:          play.ID,
		Title:       play.Title,
		Description: play.Description,
		Actors:      make([]api.Actor, len(play.Actors)),
		Genres:      make([]api.Genre, len(play.Genres)),
	}

	for i, actor := range play.Actors {
		resp.Actors[i] = toActorResponse(actor)
	}
	for i, genre := range play.Genres {
		resp.Genres[i] = toGenreResponse(genre)
	}

	return resp
}
