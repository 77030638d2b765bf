package mocks

import (
	"context"

	"github.com/dkaratas/theatre-reservation-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTicketRepo struct {
	mock.Mock
	domain.TicketRepository
}

func (m *MockTicketRepo) Insert(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepo) Delete(ctx context.Context, id int) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepo) GetSeatsByPerformance(ctx context.Context, performanceID int) ([]domain.SeatPosition, error) {
	args := m.Called(ctx, performanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeatPosition), args.Error(1)
}

func (m *MockTicketRepo) CountByPerformance(ctx context.Context, performanceID int) (int, error) {
	args := m.Called(ctx, performanceID)
	return args.Int(0), args.Error(1)
}
