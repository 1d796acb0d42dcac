package service

import (
	"context"

	"github.com/google/uuid"

	"ticket-inventory-manager/internal/model"
	"ticket-inventory-manager/internal/repository"
)

type EventService interface {
	GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	// UpdateCapacityByEventID 設定活動層級的容量上限，與各票種容量總和獨立
	UpdateCapacityByEventID(ctx context.Context, eventID uuid.UUID, capacity int) (*model.Event, error)
}

type EventServiceImpl struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) EventService {
	return &EventServiceImpl{repo: repo}
}

func (s *EventServiceImpl) GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	return s.repo.FindByEventID(ctx, eventID)
}

func (s *EventServiceImpl) UpdateCapacityByEventID(ctx context.Context, eventID uuid.UUID, capacity int) (*model.Event, error) {
	event, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateCapacity(ctx, event.ID, capacity)
}
