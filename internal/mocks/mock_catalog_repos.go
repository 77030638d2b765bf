package mocks

import (
	"context"

	"github.com/dkaratas/theatre-reservation-system/internal/domain"
)

type MockActorRepo struct {
	GetAllFunc func(ctx context.Context, pagination domain.Pagination) ([]domain.Actor, *domain.Metadata, error)
	CreateFunc func(ctx context.Context, actor *domain.Actor) error
}

func (m *MockActorRepo) GetAll(ctx context.Context, pagination domain.Pagination) ([]domain.Actor, *domain.Metadata, error) {
	return m.GetAllFunc(ctx, pagination)
}

func (m *MockActorRepo) Create(ctx context.Context, actor *domain.Actor) error {
	return m.CreateFunc(ctx, actor)
}

type MockGenreRepo struct {
	GetAllFunc func(ctx context.Context, pagination domain.Pagination) ([]domain.Genre, *domain.Metadata, error)
	CreateFunc func(ctx context.Context, genre *domain.Genre) error
}

func (m *MockGenreRepo) GetAll(ctx context.Context, pagination domain.Pagination) ([]domain.Genre, *domain.Metadata, error) {
	return m.GetAllFunc(ctx, pagination)
}

func (m *MockGenreRepo) Create(ctx context.Context, genre *domain.Genre) error {
	return m.CreateFunc(ctx, genre)
}
