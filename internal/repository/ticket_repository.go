package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"ticket-inventory-manager/internal/model"
	apperrors "ticket-inventory-manager/pkg/app_errors"
)

type TicketRepository interface {
	Create(ctx context.Context, eventID int, params model.CreateTicketParams) (*model.Ticket, error)
	ListByEventID(ctx context.Context, eventID int) ([]*model.Ticket, error)
	FindByTicketID(ctx context.Context, ticketID uuid.UUID) (*model.Ticket, error)
	Update(ctx context.Context, id int, params model.UpdateTicketParams) (*model.Ticket, error)
	Delete(ctx context.Context, id int) error
	// SumCapacityByEventID 重新載入時用，平常容量總額走快取增量
	SumCapacityByEventID(ctx context.Context, eventID int) (int, error)
}

type TicketRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &TicketRepositoryImpl{
		pool: pool,
	}
}

const ticketColumns = `id, ticket_id, event_id, name, type, capacity, price,
		sale_start, sale_end, start_time, end_time,
		min_per_order, max_per_order, sold, created_at, updated_at, deleted_at`

func scanTicket(row pgx.Row) (*model.Ticket, error) {
	var (
		ticket    model.Ticket
		price     *string
		startTime string
		endTime   string
	)
	err := row.Scan(
		&ticket.ID,
		&ticket.TicketID,
		&ticket.EventID,
		&ticket.Name,
		&ticket.Type,
		&ticket.Capacity,
		&price,
		&ticket.SaleStart,
		&ticket.SaleEnd,
		&startTime,
		&endTime,
		&ticket.MinPerOrder,
		&ticket.MaxPerOrder,
		&ticket.Sold,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	if price != nil {
		parsed, err := decimal.NewFromString(*price)
		if err != nil {
			return nil, fmt.Errorf("invalid price: %v", err)
		}
		ticket.Price = &parsed
	}
	if ticket.StartTime, err = model.ParseClockTime(startTime); err != nil {
		return nil, err
	}
	if ticket.EndTime, err = model.ParseClockTime(endTime); err != nil {
		return nil, err
	}

	return &ticket, nil
}

func priceArg(price *decimal.Decimal) *string {
	if price == nil {
		return nil
	}
	s := price.String()
	return &s
}

func (r *TicketRepositoryImpl) Create(ctx context.Context, eventID int, params model.CreateTicketParams) (*model.Ticket, error) {
	query := `
		INSERT INTO tickets (
			ticket_id, event_id, name, type, capacity, price,
			sale_start, sale_end, start_time, end_time,
			min_per_order, max_per_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + ticketColumns + `
	`

	row := r.pool.QueryRow(ctx, query,
		uuid.New(), eventID, params.Name, params.Type, params.Capacity, priceArg(params.Price),
		params.SaleStart, params.SaleEnd, params.StartTime.Format24(), params.EndTime.Format24(),
		params.MinPerOrder, params.MaxPerOrder,
	)

	return scanTicket(row)
}

func (r *TicketRepositoryImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE event_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*model.Ticket, 0)

	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (r *TicketRepositoryImpl) FindByTicketID(ctx context.Context, ticketID uuid.UUID) (*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE ticket_id = $1 AND deleted_at IS NULL
	`

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, ticketID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateTicketParams) (*model.Ticket, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.Name != nil {
		addSet("name", *params.Name)
	}
	if params.Type != nil {
		addSet("type", *params.Type)
	}
	if params.Capacity != nil {
		addSet("capacity", *params.Capacity)
	}
	if params.Price != nil {
		addSet("price", params.Price.String())
	} else if params.ClearPrice {
		addSet("price", nil)
	}
	if params.SaleStart != nil {
		addSet("sale_start", *params.SaleStart)
	}
	if params.SaleEnd != nil {
		addSet("sale_end", *params.SaleEnd)
	}
	if params.StartTime != nil {
		addSet("start_time", params.StartTime.Format24())
	}
	if params.EndTime != nil {
		addSet("end_time", params.EndTime.Format24())
	}
	if params.MinPerOrder != nil {
		addSet("min_per_order", *params.MinPerOrder)
	}
	if params.MaxPerOrder != nil {
		addSet("max_per_order", *params.MaxPerOrder)
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add updated_at
	addSet("updated_at", time.Now().UTC())

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE tickets
		SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING `+ticketColumns+`
	`, strings.Join(sets, ", "), argPos)

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		UPDATE tickets
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	// check if ticket exists and not already deleted
	if result.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}

	return nil
}

func (r *TicketRepositoryImpl) SumCapacityByEventID(ctx context.Context, eventID int) (int, error) {
	query := `
		SELECT COALESCE(SUM(capacity), 0)
		FROM tickets
		WHERE event_id = $1 AND deleted_at IS NULL
	`

	var total int
	if err := r.pool.QueryRow(ctx, query, eventID).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}
