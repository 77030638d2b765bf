package domain

import "context"

// Hall is the immutable seating grid of a venue. Updates go through
// HallRepository.Replace, which swaps the whole value and refuses any
// change that would leave a committed ticket outside the new grid.
type Hall struct {
	ID          int
	Name        string
	Rows        int
	SeatsPerRow int
}

func (h Hall) Capacity() int {
	return h.Rows * h.SeatsPerRow
}

// Contains reports whether the given position exists within the hall's grid.
func (h Hall) Contains(row, seat int) bool {
	return row >= 1 && row <= h.Rows && seat >= 1 && seat <= h.SeatsPerRow
}

type HallRepository interface {
	GetAll(ctx context.Context, pagination Pagination) ([]Hall, *Metadata, error)
	GetByID(ctx context.Context, id int) (*Hall, error)
	Create(ctx context.Context, hall *Hall) error
	// Replace swaps the stored layout for the given hall. It fails with
	// ErrCapacityShrink when any committed ticket falls outside the new
	// dimensions, and ErrRecordNotFound when the hall does not exist.
	Replace(ctx context.Context, hall Hall) error
}
