package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ticket-inventory-manager/internal/model"
)

type EventRepositoryMock struct {
	mock.Mock
}

func NewEventRepositoryMock() *EventRepositoryMock {
	return &EventRepositoryMock{}
}

func (m *EventRepositoryMock) FindByID(ctx context.Context, id int) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) UpdateCapacity(ctx context.Context, id int, capacity int) (*model.Event, error) {
	args := m.Called(ctx, id, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

type TicketRepositoryMock struct {
	mock.Mock
}

func NewTicketRepositoryMock() *TicketRepositoryMock {
	return &TicketRepositoryMock{}
}

func (m *TicketRepositoryMock) Create(ctx context.Context, eventID int, params model.CreateTicketParams) (*model.Ticket, error) {
	args := m.Called(ctx, eventID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) ListByEventID(ctx context.Context, eventID int) ([]*model.Ticket, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) FindByTicketID(ctx context.Context, ticketID uuid.UUID) (*model.Ticket, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) Update(ctx context.Context, id int, params model.UpdateTicketParams) (*model.Ticket, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TicketRepositoryMock) SumCapacityByEventID(ctx context.Context, eventID int) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}
