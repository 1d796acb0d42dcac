package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ticket-inventory-manager/internal/model"
	"ticket-inventory-manager/internal/schedule"
	apperrors "ticket-inventory-manager/pkg/app_errors"
	"ticket-inventory-manager/pkg/logger"
)

// Persistence 票券管理端看到的持久化服務
type Persistence interface {
	GetEvent(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	GetTickets(ctx context.Context, eventID uuid.UUID) ([]*model.Ticket, int, error)
	CreateTicket(ctx context.Context, eventID uuid.UUID, params model.CreateTicketParams) (*model.Ticket, error)
	UpdateTicket(ctx context.Context, eventID uuid.UUID, ticketID uuid.UUID, params model.UpdateTicketParams) (*model.Ticket, error)
	DeleteTicket(ctx context.Context, eventID uuid.UUID, ticketID uuid.UUID) error
	UpdateEventCapacity(ctx context.Context, eventID uuid.UUID, capacity int) (*model.Event, error)
}

// TicketManager 主辦方票券管理的單一資料來源：票券集合、容量帳、
// dialog/calendar 狀態與編輯中的 draft 都由它獨佔持有。
// 預期由單一 UI goroutine 持有，不做內部鎖；送出用 submitting 一個旗標擋重入
type TicketManager struct {
	store Persistence
	now   func() time.Time
	log   *zap.Logger

	coord  DialogCoordinator
	ledger *CapacityLedger

	event        *model.Event
	tickets      []*model.Ticket
	slots        []model.ClockTime
	draft        model.TicketDraft
	editTarget   uuid.UUID
	deleteTarget uuid.UUID
	notices      []schedule.Adjustment

	loading    bool
	loadErr    error
	submitting bool
}

// NewTicketManager 建立 manager。now 傳 nil 會用 time.Now，測試時可注入固定時鐘
func NewTicketManager(store Persistence, now func() time.Time) *TicketManager {
	if now == nil {
		now = time.Now
	}
	return &TicketManager{
		store: store,
		now:   now,
		log:   logger.WithComponent("manager"),
	}
}

// Initialize 載入活動與既有票券，從票券清單算出容量帳的初始值，
// 並依活動結束時間算好時段選項。失敗時 manager 停在錯誤狀態，沒有票券
func (m *TicketManager) Initialize(ctx context.Context, eventID uuid.UUID) error {
	m.loading = true
	m.event = nil
	m.tickets = nil
	m.ledger = nil
	m.slots = nil
	m.notices = nil
	m.coord.Close()
	defer func() { m.loading = false }()

	event, err := m.store.GetEvent(ctx, eventID)
	if err != nil {
		m.loadErr = fmt.Errorf("load event: %w", err)
		return m.loadErr
	}

	tickets, totalCapacity, err := m.store.GetTickets(ctx, eventID)
	if err != nil {
		m.loadErr = fmt.Errorf("load tickets: %w", err)
		return m.loadErr
	}

	m.event = event
	m.tickets = tickets
	m.ledger = NewCapacityLedger(tickets)
	m.slots = schedule.TimeSlots(event.EndTime)
	m.loadErr = nil

	if totalCapacity != m.ledger.Total() {
		m.log.Warn("capacity total reported by service disagrees with ticket sum",
			zap.Int("reported", totalCapacity),
			zap.Int("computed", m.ledger.Total()))
	}

	return nil
}

func (m *TicketManager) Event() *model.Event {
	return m.event
}

func (m *TicketManager) Tickets() []*model.Ticket {
	out := make([]*model.Ticket, len(m.tickets))
	copy(out, m.tickets)
	return out
}

func (m *TicketManager) TotalCapacity() int {
	if m.ledger == nil {
		return 0
	}
	return m.ledger.Total()
}

// TimeSlots 販售時段的下拉選項，也是 draft 時刻欄位的合法值域
func (m *TicketManager) TimeSlots() []model.ClockTime {
	out := make([]model.ClockTime, len(m.slots))
	copy(out, m.slots)
	return out
}

func (m *TicketManager) Dialog() DialogKind {
	return m.coord.Dialog()
}

func (m *TicketManager) Calendar() CalendarKind {
	return m.coord.Calendar()
}

func (m *TicketManager) Draft() model.TicketDraft {
	return m.draft
}

// SetDraft UI 編輯 draft 欄位後寫回。dialog 沒開時忽略
func (m *TicketManager) SetDraft(draft model.TicketDraft) {
	if m.coord.Dialog() != DialogAdd && m.coord.Dialog() != DialogEdit {
		return
	}
	m.draft = draft
}

func (m *TicketManager) IsSubmitting() bool {
	return m.submitting
}

func (m *TicketManager) Loading() bool {
	return m.loading
}

func (m *TicketManager) Err() error {
	return m.loadErr
}

// Notices 最近一次 reconcile 自動收窄的紀錄，給 UI 顯示
func (m *TicketManager) Notices() []schedule.Adjustment {
	out := make([]schedule.Adjustment, len(m.notices))
	copy(out, m.notices)
	return out
}

// OpenAdd 開新增 dialog，draft 重設為預設值後防禦性地 reconcile 一次
func (m *TicketManager) OpenAdd() {
	if m.event == nil {
		return
	}
	draft := newAddDraft(m.event, m.now())
	adjusted, notices, err := schedule.Reconcile(draft, m.event)
	if err != nil {
		// 預設視窗不可能起日晚於結束日
		m.log.Error("default draft failed reconcile", zap.Error(err))
		return
	}
	m.draft = adjusted
	m.notices = notices
	m.editTarget = uuid.Nil
	m.coord.OpenDialog(DialogAdd)
}

// OpenEdit 把既有票券複製進 draft。活動日期可能在票券建好之後改過，
// 所以開啟當下一定重新 reconcile
func (m *TicketManager) OpenEdit(ticketID uuid.UUID) error {
	ticket, _ := m.findTicket(ticketID)
	if ticket == nil {
		return apperrors.ErrTicketNotFound
	}
	draft := model.DraftFromTicket(ticket)
	adjusted, notices, err := schedule.Reconcile(draft, m.event)
	if err != nil {
		return err
	}
	m.draft = adjusted
	m.notices = notices
	m.editTarget = ticketID
	m.coord.OpenDialog(DialogEdit)
	return nil
}

func (m *TicketManager) OpenDelete(ticketID uuid.UUID) error {
	ticket, _ := m.findTicket(ticketID)
	if ticket == nil {
		return apperrors.ErrTicketNotFound
	}
	m.deleteTarget = ticketID
	m.notices = nil
	m.coord.OpenDialog(DialogDelete)
	return nil
}

func (m *TicketManager) OpenCapacity() {
	if m.event == nil {
		return
	}
	m.notices = nil
	m.coord.OpenDialog(DialogCapacity)
}

// CloseAll 取消操作：關 dialog、重設 calendar、丟棄通知。冪等
func (m *TicketManager) CloseAll() {
	m.coord.Close()
	m.notices = nil
}

func (m *TicketManager) ToggleCalendar(kind CalendarKind) {
	m.coord.ToggleCalendar(kind)
}

// AddTicket 送出新增。送出前再 reconcile 一次(開啟後活動或日期可能又變了)，
// 驗證失敗 dialog 保持開啟。成功後票券入列、容量帳 +capacity、dialog 關閉
func (m *TicketManager) AddTicket(ctx context.Context) error {
	if m.submitting {
		return apperrors.ErrSubmissionInFlight
	}

	adjusted, notices, err := schedule.Reconcile(m.draft, m.event)
	if err != nil {
		return err
	}
	m.draft = adjusted
	m.notices = notices
	if err := m.draft.Validate(); err != nil {
		return err
	}

	m.submitting = true
	defer func() { m.submitting = false }()

	created, err := m.store.CreateTicket(ctx, m.event.EventID, m.draft.CreateParams())
	if err != nil {
		m.log.Error("create ticket failed", zap.Error(err))
		return fmt.Errorf("create ticket: %w", err)
	}

	m.tickets = append(m.tickets, created)
	m.ledger.Apply(created.Capacity)
	m.coord.Close()
	return nil
}

// UpdateTicket 送出編輯。容量帳吃的是新舊容量的差額，不重算
func (m *TicketManager) UpdateTicket(ctx context.Context) error {
	if m.submitting {
		return apperrors.ErrSubmissionInFlight
	}

	old, idx := m.findTicket(m.editTarget)
	if old == nil {
		return apperrors.ErrTicketNotFound
	}

	adjusted, notices, err := schedule.Reconcile(m.draft, m.event)
	if err != nil {
		return err
	}
	m.draft = adjusted
	m.notices = notices
	if err := m.draft.Validate(); err != nil {
		return err
	}

	m.submitting = true
	defer func() { m.submitting = false }()

	updated, err := m.store.UpdateTicket(ctx, m.event.EventID, old.TicketID, m.draft.UpdateParams())
	if err != nil {
		m.log.Error("update ticket failed", zap.Error(err))
		return fmt.Errorf("update ticket: %w", err)
	}

	delta := updated.Capacity - old.Capacity
	m.tickets[idx] = updated
	m.ledger.Apply(delta)
	m.coord.Close()
	return nil
}

// DeleteTicket 送出刪除，成功後把票券移出集合、容量帳 -capacity
func (m *TicketManager) DeleteTicket(ctx context.Context) error {
	if m.submitting {
		return apperrors.ErrSubmissionInFlight
	}

	ticket, idx := m.findTicket(m.deleteTarget)
	if ticket == nil {
		return apperrors.ErrTicketNotFound
	}

	m.submitting = true
	defer func() { m.submitting = false }()

	if err := m.store.DeleteTicket(ctx, m.event.EventID, ticket.TicketID); err != nil {
		m.log.Error("delete ticket failed", zap.Error(err))
		return fmt.Errorf("delete ticket: %w", err)
	}

	m.tickets = append(m.tickets[:idx], m.tickets[idx+1:]...)
	m.ledger.Apply(-ticket.Capacity)
	m.deleteTarget = uuid.Nil
	m.coord.Close()
	return nil
}

// UpdateCapacity 設定活動層級的容量上限，與各票種容量總和無關
func (m *TicketManager) UpdateCapacity(ctx context.Context, capacity int) error {
	if m.submitting {
		return apperrors.ErrSubmissionInFlight
	}
	if capacity < 0 {
		return apperrors.NewFieldError("capacity", "capacity cannot be negative")
	}

	m.submitting = true
	defer func() { m.submitting = false }()

	updated, err := m.store.UpdateEventCapacity(ctx, m.event.EventID, capacity)
	if err != nil {
		m.log.Error("update event capacity failed", zap.Error(err))
		return fmt.Errorf("update event capacity: %w", err)
	}

	m.event = updated
	m.coord.Close()
	return nil
}

func (m *TicketManager) findTicket(ticketID uuid.UUID) (*model.Ticket, int) {
	if ticketID == uuid.Nil {
		return nil, -1
	}
	for i, t := range m.tickets {
		if t.TicketID == ticketID {
			return t, i
		}
	}
	return nil, -1
}
