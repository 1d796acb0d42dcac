package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ticket-inventory-manager/internal/model"
	apperrors "ticket-inventory-manager/pkg/app_errors"
)

type EventRepository interface {
	FindByID(ctx context.Context, id int) (*model.Event, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	// UpdateCapacity 設定活動層級的容量上限
	UpdateCapacity(ctx context.Context, id int, capacity int) (*model.Event, error)
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `id, event_id, name, date, end_time, capacity_override, created_at, updated_at`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var (
		event   model.Event
		endTime *string
	)
	err := row.Scan(
		&event.ID,
		&event.EventID,
		&event.Name,
		&event.Date,
		&endTime,
		&event.CapacityOverride,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// 沒有結束時間的活動視為 23:59 結束
	event.EndTime = model.DefaultEventEndTime
	if endTime != nil {
		parsed, err := model.ParseClockTime(*endTime)
		if err != nil {
			return nil, err
		}
		event.EndTime = parsed
	}

	return &event, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE event_id = $1
	`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) UpdateCapacity(ctx context.Context, id int, capacity int) (*model.Event, error) {
	if capacity < 0 {
		return nil, apperrors.ErrInvalidInput
	}

	query := `
		UPDATE events
		SET capacity_override = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + eventColumns + `
	`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, capacity, time.Now().UTC(), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}
