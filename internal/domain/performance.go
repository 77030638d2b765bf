package domain

import (
	"context"
	"time"
)

type Performance struct {
	ID       int
	PlayID   int
	HallID   int
	ShowTime time.Time
}

// PerformanceSummary is the read model behind performance listings. The
// available-ticket count is filled in by the availability query, not the
// repository.
type PerformanceSummary struct {
	ID               int
	ShowTime         time.Time
	PlayTitle        string
	HallName         string
	HallCapacity     int
	TicketsAvailable int
}

type PerformanceDetail struct {
	ID       int
	ShowTime time.Time
	Play     Play
	Hall     Hall
}

type PerformanceFilters struct {
	PlayID int
	Date   time.Time
	Pagination
}

type PerformanceRepository interface {
	GetAll(ctx context.Context, filters PerformanceFilters) ([]PerformanceSummary, *Metadata, error)
	GetByID(ctx context.Context, id int) (*PerformanceDetail, error)
	// GetHall resolves the hall layout a performance plays in,
	// ErrRecordNotFound when the performance does not exist.
	GetHall(ctx context.Context, performanceID int) (*Hall, error)
	Create(ctx context.Context, performance *Performance) error
}
