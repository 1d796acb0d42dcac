package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ticket-inventory-manager/internal/model"
)

type EventServiceMock struct {
	mock.Mock
}

func NewEventServiceMock() *EventServiceMock {
	return &EventServiceMock{}
}

func (m *EventServiceMock) GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventServiceMock) UpdateCapacityByEventID(ctx context.Context, eventID uuid.UUID, capacity int) (*model.Event, error) {
	args := m.Called(ctx, eventID, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

type TicketServiceMock struct {
	mock.Mock
}

func NewTicketServiceMock() *TicketServiceMock {
	return &TicketServiceMock{}
}

func (m *TicketServiceMock) ListByEventID(ctx context.Context, eventID uuid.UUID) ([]*model.Ticket, int, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Ticket), args.Int(1), args.Error(2)
}

func (m *TicketServiceMock) Create(ctx context.Context, eventID uuid.UUID, params model.CreateTicketParams) (*model.Ticket, error) {
	args := m.Called(ctx, eventID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketServiceMock) Update(ctx context.Context, eventID uuid.UUID, ticketID uuid.UUID, params model.UpdateTicketParams) (*model.Ticket, error) {
	args := m.Called(ctx, eventID, ticketID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketServiceMock) Delete(ctx context.Context, eventID uuid.UUID, ticketID uuid.UUID) error {
	args := m.Called(ctx, eventID, ticketID)
	return args.Error(0)
}
