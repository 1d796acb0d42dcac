package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type CapacityCacheMock struct {
	mock.Mock
}

func NewCapacityCacheMock() *CapacityCacheMock {
	return &CapacityCacheMock{}
}

func (m *CapacityCacheMock) Warm(ctx context.Context, eventID int, total int) error {
	args := m.Called(ctx, eventID, total)
	return args.Error(0)
}

func (m *CapacityCacheMock) GetTotal(ctx context.Context, eventID int) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *CapacityCacheMock) ApplyDelta(ctx context.Context, eventID int, delta int) error {
	args := m.Called(ctx, eventID, delta)
	return args.Error(0)
}

func (m *CapacityCacheMock) Invalidate(ctx context.Context, eventID int) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}
