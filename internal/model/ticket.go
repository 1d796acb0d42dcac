package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketType 票種類型
type TicketType string

const (
	TicketTypeFree     TicketType = "free"
	TicketTypePaid     TicketType = "paid"
	TicketTypeDonation TicketType = "donation"
)

func (t TicketType) Valid() bool {
	switch t {
	case TicketTypeFree, TicketTypePaid, TicketTypeDonation:
		return true
	}
	return false
}

// Ticket 票券模型
type Ticket struct {
	ID       int        `json:"id" db:"id"`
	TicketID uuid.UUID  `json:"ticket_id" db:"ticket_id"`
	EventID  int        `json:"event_id" db:"event_id"`
	Name     string     `json:"name" db:"name"`
	Type     TicketType `json:"type" db:"type"`
	Capacity int        `json:"capacity" db:"capacity"`
	// Price 免費票為 nil；donation 票為建議金額，可以為 nil
	Price       *decimal.Decimal `json:"price,omitempty" db:"price"`
	SaleStart   time.Time        `json:"sale_start" db:"sale_start"`
	SaleEnd     time.Time        `json:"sale_end" db:"sale_end"`
	StartTime   ClockTime        `json:"start_time" db:"start_time"`
	EndTime     ClockTime        `json:"end_time" db:"end_time"`
	MinPerOrder int              `json:"min_per_order" db:"min_per_order"`
	MaxPerOrder int              `json:"max_per_order" db:"max_per_order"`
	// Sold 由訂單流程維護，這裡只讀取
	Sold      int        `json:"sold" db:"sold"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// IsDeleted 檢查票券是否已刪除
func (t *Ticket) IsDeleted() bool {
	return t.DeletedAt != nil
}

func (t *Ticket) Remaining() int {
	return t.Capacity - t.Sold
}

// IsOnSale 檢查現在是否落在販售期間內
func (t *Ticket) IsOnSale(now time.Time) bool {
	if t.IsDeleted() || t.Remaining() <= 0 {
		return false
	}
	day := DateOnly(now)
	if day.Before(DateOnly(t.SaleStart)) || day.After(DateOnly(t.SaleEnd)) {
		return false
	}
	clock := ClockTimeOf(now.Hour(), now.Minute())
	return !clock.Before(t.StartTime) && !clock.After(t.EndTime)
}

// CreateTicketParams 建立票券的欄位(不含 id 與 sold)
type CreateTicketParams struct {
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

// UpdateTicketParams 部分更新。nil 欄位表示不變；ClearPrice 會把價格清掉(改為免費票時)
type UpdateTicketParams struct {
	Name        *string          `json:"name,omitempty"`
	Type        *TicketType      `json:"type,omitempty"`
	Capacity    *int             `json:"capacity,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	ClearPrice  bool             `json:"clear_price,omitempty"`
	SaleStart   *time.Time       `json:"sale_start,omitempty"`
	SaleEnd     *time.Time       `json:"sale_end,omitempty"`
	StartTime   *ClockTime       `json:"start_time,omitempty"`
	EndTime     *ClockTime       `json:"end_time,omitempty"`
	MinPerOrder *int             `json:"min_per_order,omitempty"`
	MaxPerOrder *int             `json:"max_per_order,omitempty"`
}
