package model

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "ticket-inventory-manager/pkg/app_errors"
)

// TicketDraft 編輯中票券的暫存欄位。新增與編輯共用同一份 draft，
// 同一時間只會有一份在編輯中
type TicketDraft struct {
	Name        string           `json:"name"`
	Type        TicketType       `json:"type"`
	Capacity    int              `json:"capacity"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	SaleStart   time.Time        `json:"sale_start"`
	SaleEnd     time.Time        `json:"sale_end"`
	StartTime   ClockTime        `json:"start_time"`
	EndTime     ClockTime        `json:"end_time"`
	MinPerOrder int              `json:"min_per_order"`
	MaxPerOrder int              `json:"max_per_order"`
}

// DraftFromTicket 把既有票券的可編輯欄位複製進 draft
func DraftFromTicket(t *Ticket) TicketDraft {
	var price *decimal.Decimal
	if t.Price != nil {
		p := *t.Price
		price = &p
	}
	return TicketDraft{
		Name:        t.Name,
		Type:        t.Type,
		Capacity:    t.Capacity,
		Price:       price,
		SaleStart:   t.SaleStart,
		SaleEnd:     t.SaleEnd,
		StartTime:   t.StartTime,
		EndTime:     t.EndTime,
		MinPerOrder: t.MinPerOrder,
		MaxPerOrder: t.MaxPerOrder,
	}
}

// Validate 送出前的必填與欄位檢查。視窗的時間關係由 schedule.Reconcile 負責
func (d TicketDraft) Validate() error {
	if d.Name == "" {
		return apperrors.NewFieldError("name", "name is required")
	}
	if !d.Type.Valid() {
		return apperrors.NewFieldError("type", "unknown ticket type")
	}
	if d.SaleStart.IsZero() {
		return apperrors.NewFieldError("sale_start", "sale start date is required")
	}
	if d.SaleEnd.IsZero() {
		return apperrors.NewFieldError("sale_end", "sale end date is required")
	}
	if d.Capacity < 0 {
		return apperrors.NewFieldError("capacity", "capacity cannot be negative")
	}
	if d.MinPerOrder < 1 {
		return apperrors.NewFieldError("min_per_order", "must be at least 1")
	}
	if d.MaxPerOrder < d.MinPerOrder {
		return apperrors.NewFieldError("max_per_order", "must be at least min per order")
	}
	switch d.Type {
	case TicketTypeFree:
		if d.Price != nil {
			return apperrors.NewFieldError("price", "free tickets cannot have a price")
		}
	case TicketTypePaid:
		if d.Price == nil {
			return apperrors.NewFieldError("price", "price is required for paid tickets")
		}
	}
	if d.Price != nil && d.Price.IsNegative() {
		return apperrors.NewFieldError("price", "price cannot be negative")
	}
	return nil
}

// CreateParams 轉成建立票券的參數
func (d TicketDraft) CreateParams() CreateTicketParams {
	return CreateTicketParams{
		Name:        d.Name,
		Type:        d.Type,
		Capacity:    d.Capacity,
		Price:       d.Price,
		SaleStart:   DateOnly(d.SaleStart),
		SaleEnd:     DateOnly(d.SaleEnd),
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		MinPerOrder: d.MinPerOrder,
		MaxPerOrder: d.MaxPerOrder,
	}
}

// UpdateParams 編輯流程送出完整 draft，所有欄位都帶值
func (d TicketDraft) UpdateParams() UpdateTicketParams {
	name := d.Name
	ticketType := d.Type
	capacity := d.Capacity
	saleStart := DateOnly(d.SaleStart)
	saleEnd := DateOnly(d.SaleEnd)
	startTime := d.StartTime
	endTime := d.EndTime
	minPerOrder := d.MinPerOrder
	maxPerOrder := d.MaxPerOrder
	return UpdateTicketParams{
		Name:        &name,
		Type:        &ticketType,
		Capacity:    &capacity,
		Price:       d.Price,
		ClearPrice:  d.Price == nil,
		SaleStart:   &saleStart,
		SaleEnd:     &saleEnd,
		StartTime:   &startTime,
		EndTime:     &endTime,
		MinPerOrder: &minPerOrder,
		MaxPerOrder: &maxPerOrder,
	}
}
