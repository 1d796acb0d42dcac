package schedule

import "ticket-inventory-manager/internal/model"

const slotInterval = 30

// TimeSlots 產生每日販售時段的下拉選項：從 00:00 起每 30 分鐘一格，
// 上界(不含)為活動結束前一小時。活動在 01:00 前結束時退化為單一選項，
// 即上界本身(跨午夜視為 +24h)
func TimeSlots(eventEnd model.ClockTime) []model.ClockTime {
	bound := eventEnd.Minutes() - 60
	if bound <= 0 {
		return []model.ClockTime{model.FromMinutes(bound)}
	}
	slots := make([]model.ClockTime, 0, bound/slotInterval+1)
	for m := 0; m < bound; m += slotInterval {
		slots = append(slots, model.FromMinutes(m))
	}
	return slots
}
