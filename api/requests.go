// Package api holds the request and response types of the HTTP surface.
package api

import "time"

type CreateActorRequest struct {
	FirstName string `json:"firstName" validate:"required,max=63"`
	LastName  string `json:"lastName" validate:"required,max=63"`
}

type CreateGenreRequest struct {
	Name string `json:"name" validate:"required,max=63"`
}

type CreatePlayRequest struct {
	Title       string `json:"title" validate:"required,max=63"`
	Description string `json:"description"`
	ActorIds    []int  `json:"actorIds" validate:"dive,min=1"`
	GenreIds    []int  `json:"genreIds" validate:"dive,min=1"`
}

type ListPlaysParams struct {
	Title    string `validate:"max=63"`
	Genres   []int  `validate:"dive,min=1"`
	Actors   []int  `validate:"dive,min=1"`
	Page     *int   `validate:"omitempty,min=1"`
	PageSize *int   `validate:"omitempty,min=1,max=100"`
}

type CreateHallRequest struct {
	Name        string `json:"name" validate:"required,max=63"`
	Rows        int    `json:"rows" validate:"required,min=1"`
	SeatsPerRow int    `json:"seatsPerRow" validate:"required,min=1"`
}

// ReplaceHallRequest swaps a hall's layout wholesale; partial updates are not
// offered because they could silently strand committed tickets.
type ReplaceHallRequest struct {
	Name        string `json:"name" validate:"required,max=63"`
	Rows        int    `json:"rows" validate:"required,min=1"`
	SeatsPerRow int    `json:"seatsPerRow" validate:"required,min=1"`
}

type CreatePerformanceRequest struct {
	PlayId   int       `json:"playId" validate:"required,min=1"`
	HallId   int       `json:"hallId" validate:"required,min=1"`
	ShowTime time.Time `json:"showTime" validate:"required,future"`
}

type ListPerformancesParams struct {
	Play     *int `validate:"omitempty,min=1"`
	Date     *time.Time
	Page     *int `validate:"omitempty,min=1"`
	PageSize *int `validate:"omitempty,min=1,max=100"`
}

type SeatSelection struct {
	Row  int `json:"row" validate:"required,min=1"`
	Seat int `json:"seat" validate:"required,min=1"`
}

type CreateReservationRequest struct {
	UserId        int             `json:"userId" validate:"required,min=1"`
	PerformanceId int             `json:"performanceId" validate:"required,min=1"`
	Email         string          `json:"email" validate:"omitempty,email"`
	Seats         []SeatSelection `json:"seats" validate:"required,min=1,max=20,dive"`
}

type ListReservationsParams struct {
	UserId   int  `validate:"required,min=1"`
	Page     *int `validate:"omitempty,min=1"`
	PageSize *int `validate:"omitempty,min=1,max=100"`
}

type CreateTicketRequest struct {
	Row           int `json:"row" validate:"required,min=1"`
	Seat          int `json:"seat" validate:"required,min=1"`
	PerformanceId int `json:"performanceId" validate:"required,min=1"`
	ReservationId int `json:"reservationId" validate:"required,min=1"`
}
