package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ticket-inventory-manager/internal/cache"
	"ticket-inventory-manager/internal/model"
	"ticket-inventory-manager/internal/repository"
	apperrors "ticket-inventory-manager/pkg/app_errors"
	"ticket-inventory-manager/pkg/logger"
)

type TicketService interface {
	// ListByEventID 回傳活動底下的票券與容量總額(快取優先，miss 時從資料庫加總回填)
	ListByEventID(ctx context.Context, eventID uuid.UUID) ([]*model.Ticket, int, error)
	Create(ctx context.Context, eventID uuid.UUID, params model.CreateTicketParams) (*model.Ticket, error)
	Update(ctx context.Context, eventID uuid.UUID, ticketID uuid.UUID, params model.UpdateTicketParams) (*model.Ticket, error)
	Delete(ctx context.Context, eventID uuid.UUID, ticketID uuid.UUID) error
}

type TicketServiceImpl struct {
	eventRepo     repository.EventRepository
	ticketRepo    repository.TicketRepository
	capacityCache cache.CapacityCache
	log           *zap.Logger
}

func NewTicketService(
	eventRepo repository.EventRepository,
	ticketRepo repository.TicketRepository,
	capacityCache cache.CapacityCache,
) TicketService {
	return &TicketServiceImpl{
		eventRepo:     eventRepo,
		ticketRepo:    ticketRepo,
		capacityCache: capacityCache,
		log:           logger.WithComponent("service"),
	}
}

func (s *TicketServiceImpl) ListByEventID(ctx context.Context, eventID uuid.UUID) ([]*model.Ticket, int, error) {
	event, err := s.eventRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, 0, err
	}

	tickets, err := s.ticketRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.capacityCache.GetTotal(ctx, event.ID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCapacityNotCached) {
			s.log.Warn("capacity cache read failed", zap.Error(err))
		}
		total, err = s.ticketRepo.SumCapacityByEventID(ctx, event.ID)
		if err != nil {
			return nil, 0, err
		}
		if err := s.capacityCache.Warm(ctx, event.ID, total); err != nil {
			s.log.Warn("capacity cache warm failed", zap.Error(err))
		}
	}

	return tickets, total, nil
}

func (s *TicketServiceImpl) Create(ctx context.Context, eventID uuid.UUID, params model.CreateTicketParams) (*model.Ticket, error) {
	event, err := s.eventRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if params.Capacity < 0 {
		return nil, apperrors.NewFieldError("capacity", "capacity cannot be negative")
	}

	ticket, err := s.ticketRepo.Create(ctx, event.ID, params)
	if err != nil {
		return nil, err
	}

	s.applyCapacityDelta(ctx, event.ID, ticket.Capacity)
	return ticket, nil
}

func (s *TicketServiceImpl) Update(ctx context.Context, eventID uuid.UUID, ticketID uuid.UUID, params model.UpdateTicketParams) (*model.Ticket, error) {
	event, err := s.eventRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	old, err := s.ticketRepo.FindByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if old.EventID != event.ID {
		return nil, apperrors.ErrTicketNotFound
	}

	// sold 是訂單流程的事實，容量不能砍到已售出數量以下
	if params.Capacity != nil && *params.Capacity < old.Sold {
		return nil, apperrors.NewFieldError("capacity", "capacity cannot be below tickets already sold")
	}

	updated, err := s.ticketRepo.Update(ctx, old.ID, params)
	if err != nil {
		return nil, err
	}

	s.applyCapacityDelta(ctx, event.ID, updated.Capacity-old.Capacity)
	return updated, nil
}

func (s *TicketServiceImpl) Delete(ctx context.Context, eventID uuid.UUID, ticketID uuid.UUID) error {
	event, err := s.eventRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return err
	}

	old, err := s.ticketRepo.FindByTicketID(ctx, ticketID)
	if err != nil {
		return err
	}
	if old.EventID != event.ID {
		return apperrors.ErrTicketNotFound
	}

	if err := s.ticketRepo.Delete(ctx, old.ID); err != nil {
		return err
	}

	s.applyCapacityDelta(ctx, event.ID, -old.Capacity)
	return nil
}

// 快取增量失敗不讓請求失敗，下一次 list 會從資料庫回填
func (s *TicketServiceImpl) applyCapacityDelta(ctx context.Context, eventID int, delta int) {
	if err := s.capacityCache.ApplyDelta(ctx, eventID, delta); err != nil {
		s.log.Warn("capacity cache delta failed",
			zap.Int("event_id", eventID),
			zap.Int("delta", delta),
			zap.Error(err))
	}
}
