package manager

import "ticket-inventory-manager/internal/model"

// CapacityLedger 活動總容量的累加帳。載入時從票券清單算一次，
// 之後只吃增量，不重新掃描
type CapacityLedger struct {
	total int
}

func NewCapacityLedger(tickets []*model.Ticket) *CapacityLedger {
	l := &CapacityLedger{}
	for _, t := range tickets {
		l.total += t.Capacity
	}
	return l
}

// Apply 套用增量並回傳新總額。必須在對應的持久化呼叫成功後才呼叫
func (l *CapacityLedger) Apply(delta int) int {
	l.total += delta
	return l.total
}

func (l *CapacityLedger) Total() int {
	return l.total
}
