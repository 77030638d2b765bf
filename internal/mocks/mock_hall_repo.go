package mocks

import (
	"context"

	"github.com/dkaratas/theatre-reservation-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockHallRepo struct {
	mock.Mock
	domain.HallRepository
}

func (m *MockHallRepo) GetAll(ctx context.Context, pagination domain.Pagination) ([]domain.Hall, *domain.Metadata, error) {
	args := m.Called(ctx, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Hall), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockHallRepo) GetByID(ctx context.Context, id int) (*domain.Hall, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hall), args.Error(1)
}

func (m *MockHallRepo) Create(ctx context.Context, hall *domain.Hall) error {
	args := m.Called(ctx, hall)
	return args.Error(0)
}

func (m *MockHallRepo) Replace(ctx context.Context, hall domain.Hall) error {
	args := m.Called(ctx, hall)
	return args.Error(0)
}
