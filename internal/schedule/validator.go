package schedule

import (
	"time"

	"ticket-inventory-manager/internal/model"
	apperrors "ticket-inventory-manager/pkg/app_errors"
)

// Adjustment 驗證時自動收窄販售視窗的紀錄，要回報給使用者，不能默默套用
type Adjustment struct {
	Field  string `json:"field"`
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

// Reconcile 核對販售視窗與活動日期/結束時間的關係。規則依序套用：
//
//  1. 販售結束日晚於活動日期 → 夾回活動日期
//  2. 販售結束日等於活動日期、且每日結束時刻離活動結束不足一小時
//     → 改為活動結束前一小時(活動結束 hour 為 0 時 wrap 到 23)
//  3. 販售起日晚於結束日 → 硬性錯誤，不自動修正
//
// 只會往活動方向收窄，不會放寬。純函式，回傳調整後的 draft 與調整紀錄
func Reconcile(draft model.TicketDraft, event *model.Event) (model.TicketDraft, []Adjustment, error) {
	var adjustments []Adjustment

	if event.Date != nil {
		eventDate := model.DateOnly(*event.Date)

		if !draft.SaleEnd.IsZero() && model.DateOnly(draft.SaleEnd).After(eventDate) {
			adjustments = append(adjustments, Adjustment{
				Field:  "sale_end",
				From:   model.DateOnly(draft.SaleEnd).Format(time.DateOnly),
				To:     eventDate.Format(time.DateOnly),
				Reason: "ticket sales must close by the event date",
			})
			draft.SaleEnd = eventDate
		}

		if !draft.SaleEnd.IsZero() && model.SameDay(draft.SaleEnd, eventDate) &&
			draft.EndTime.Hour() >= event.EndTime.Hour()-1 {
			narrowed := event.EndTime.HourBefore()
			if narrowed != draft.EndTime {
				adjustments = append(adjustments, Adjustment{
					Field:  "end_time",
					From:   draft.EndTime.String(),
					To:     narrowed.String(),
					Reason: "daily sales must stop an hour before the event ends",
				})
				draft.EndTime = narrowed
			}
		}
	}

	if !draft.SaleStart.IsZero() && !draft.SaleEnd.IsZero() &&
		model.DateOnly(draft.SaleStart).After(model.DateOnly(draft.SaleEnd)) {
		return draft, adjustments, apperrors.ErrInvalidWindow
	}

	return draft, adjustments, nil
}
