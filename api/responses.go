package api

import "time"

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type Actor struct {
	Id        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
}

type ActorListResponse struct {
	Actors   []Actor   `json:"actors"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

type Genre struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type GenreListResponse struct {
	Genres   []Genre   `json:"genres"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

type Play struct {
	Id          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Actors      []Actor `json:"actors"`
	Genres      []Genre `json:"genres"`
}

type PlayListResponse struct {
	Plays    []Play    `json:"plays"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

type Hall struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seatsPerRow"`
	Capacity    int    `json:"capacity"`
}

type HallListResponse struct {
	Halls    []Hall    `json:"halls"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

type PerformanceSummary struct {
	Id               int       `json:"id"`
	ShowTime         time.Time `json:"showTime"`
	PlayTitle        string    `json:"playTitle"`
	HallName         string    `json:"hallName"`
	HallCapacity     int       `json:"hallCapacity"`
	TicketsAvailable int       `json:"ticketsAvailable"`
}

type PerformanceListResponse struct {
	Performances []PerformanceSummary `json:"performances"`
	Metadata     *Metadata            `json:"metadata,omitempty"`
}

type SeatPosition struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type PerformanceDetailResponse struct {
	Id         int            `json:"id"`
	ShowTime   time.Time      `json:"showTime"`
	Play       Play           `json:"play"`
	Hall       Hall           `json:"hall"`
	TakenSeats []SeatPosition `json:"takenSeats"`
}

type TakenSeatsResponse struct {
	PerformanceId int            `json:"performanceId"`
	Seats         []SeatPosition `json:"seats"`
}

type Ticket struct {
	Id            int `json:"id"`
	Row           int `json:"row"`
	Seat          int `json:"seat"`
	PerformanceId int `json:"performanceId"`
	ReservationId int `json:"reservationId"`
}

type ReservationResponse struct {
	Id        int       `json:"id"`
	Reference string    `json:"reference"`
	UserId    int       `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	Tickets   []Ticket  `json:"tickets"`
}

type ReservationSummary struct {
	Id        int            `json:"id"`
	Reference string         `json:"reference"`
	PlayTitle string         `json:"playTitle"`
	HallName  string         `json:"hallName"`
	ShowTime  time.Time      `json:"showTime"`
	Seats     []SeatPosition `json:"seats"`
	CreatedAt time.Time      `json:"createdAt"`
}

type ReservationListResponse struct {
	Reservations []ReservationSummary `json:"reservations"`
	Metadata     *Metadata            `json:"metadata,omitempty"`
}
