package domain

import (
	"context"
	"fmt"
)

type Play struct {
	ID          int
	Title       string
	Description string
	Actors      []Actor
	Genres      []Genre
}

type Actor struct {
	ID        int
	FirstName string
	LastName  string
}

func (a Actor) FullName() string {
	return fmt.Sprintf("%s %s", a.FirstName, a.LastName)
}

type Genre struct {
	ID   int
	Name string
}

type PlayFilters struct {
	Title    string
	GenreIDs []int
	ActorIDs []int
	Pagination
}

type PlayRepository interface {
	GetAll(ctx context.Context, filters PlayFilters) ([]Play, *Metadata, error)
	GetByID(ctx context.Context, id int) (*Play, error)
	// Create persists the play together with its actor and genre links.
	// A reference to a missing actor or genre fails with ErrRecordNotFound.
	Create(ctx context.Context, play *Play) error
}

type ActorRepository interface {
	GetAll(ctx context.Context, pagination Pagination) ([]Actor, *Metadata, error)
	Create(ctx context.Context, actor *Actor) error
}

type GenreRepository interface {
	GetAll(ctx context.Context, pagination Pagination) ([]Genre, *Metadata, error)
	Create(ctx context.Context, genre *Genre) error
}
