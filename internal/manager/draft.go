package manager

import (
	"time"

	"ticket-inventory-manager/internal/model"
	"ticket-inventory-manager/internal/schedule"
)

const (
	defaultCapacity    = 100
	defaultMinPerOrder = 1
	defaultMaxPerOrder = 10
	defaultSaleWindow  = 30 // days, for undated events
)

// newAddDraft 新增流程的預設值：今天開賣，賣到活動日(沒有日期就賣 30 天)，
// 每日結束時刻為活動結束前一小時
func newAddDraft(event *model.Event, now time.Time) model.TicketDraft {
	today := model.DateOnly(now)

	saleEnd := today.AddDate(0, 0, defaultSaleWindow)
	if event.Date != nil {
		saleEnd = model.DateOnly(*event.Date)
	}

	slots := schedule.TimeSlots(event.EndTime)

	return model.TicketDraft{
		Type:        model.TicketTypePaid,
		Capacity:    defaultCapacity,
		SaleStart:   today,
		SaleEnd:     saleEnd,
		StartTime:   slots[0],
		EndTime:     event.EndTime.HourBefore(),
		MinPerOrder: defaultMinPerOrder,
		MaxPerOrder: defaultMaxPerOrder,
	}
}
