package manager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ticket-inventory-manager/internal/manager/mocks"
	"ticket-inventory-manager/internal/model"
	apperrors "ticket-inventory-manager/pkg/app_errors"
)

var (
	eventUUID  = uuid.MustParse("a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11")
	ticketUUID = uuid.MustParse("b1eebc99-9c0b-4ef8-bb6d-6bb9bd380a22")
)

func fixedNow() time.Time {
	return time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
}

func managedEvent() *model.Event {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	return &model.Event{
		ID:      1,
		EventID: eventUUID,
		Name:    "Summer Concert",
		Date:    &date,
		EndTime: model.ClockTimeOf(22, 0), // 10:00 PM
	}
}

func seededTicket(capacity int, endTime model.ClockTime) *model.Ticket {
	return &model.Ticket{
		ID:          10,
		TicketID:    ticketUUID,
		EventID:     1,
		Name:        "General Admission",
		Type:        model.TicketTypeFree,
		Capacity:    capacity,
		SaleStart:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		SaleEnd:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   model.ClockTimeOf(0, 0),
		EndTime:     endTime,
		MinPerOrder: 1,
		MaxPerOrder: 10,
	}
}

func initializedManager(t *testing.T, store *mocks.PersistenceMock, tickets []*model.Ticket) *TicketManager {
	t.Helper()

	total := 0
	for _, ticket := range tickets {
		total += ticket.Capacity
	}

	store.On("GetEvent", mock.Anything, eventUUID).Return(managedEvent(), nil).Once()
	store.On("GetTickets", mock.Anything, eventUUID).Return(tickets, total, nil).Once()

	m := NewTicketManager(store, fixedNow)
	require.NoError(t, m.Initialize(context.Background(), eventUUID))
	return m
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := mocks.NewPersistenceMock()
		tickets := []*model.Ticket{seededTicket(100, model.ClockTimeOf(21, 0))}
		m := initializedManager(t, store, tickets)

		assert.NoError(t, m.Err())
		assert.Equal(t, eventUUID, m.Event().EventID)
		assert.Len(t, m.Tickets(), 1)
		assert.Equal(t, 100, m.TotalCapacity())
		assert.NotEmpty(t, m.TimeSlots())
		assert.Equal(t, DialogNone, m.Dialog())
		store.AssertExpectations(t)
	})

	t.Run("Failed - event not found", func(t *testing.T) {
		store := mocks.NewPersistenceMock()
		store.On("GetEvent", mock.Anything, eventUUID).Return(nil, apperrors.ErrEventNotFound).Once()

		m := NewTicketManager(store, fixedNow)
		err := m.Initialize(ctx, eventUUID)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
		assert.Error(t, m.Err())
		assert.Nil(t, m.Event())
		assert.Empty(t, m.Tickets())
		assert.Equal(t, 0, m.TotalCapacity())
		store.AssertNotCalled(t, "GetTickets")
	})

	t.Run("Failed - ticket load error", func(t *testing.T) {
		store := mocks.NewPersistenceMock()
		store.On("GetEvent", mock.Anything, eventUUID).Return(managedEvent(), nil).Once()
		store.On("GetTickets", mock.Anything, eventUUID).Return(nil, 0, errors.New("db error")).Once()

		m := NewTicketManager(store, fixedNow)
		err := m.Initialize(ctx, eventUUID)

		require.Error(t, err)
		assert.Error(t, m.Err())
		assert.Empty(t, m.Tickets())
	})
}

func TestOpenAdd(t *testing.T) {
	store := mocks.NewPersistenceMock()
	m := initializedManager(t, store, nil)

	m.OpenAdd()

	assert.Equal(t, DialogAdd, m.Dialog())
	assert.Equal(t, CalendarNone, m.Calendar())
	assert.Empty(t, m.Notices())

	draft := m.Draft()
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), draft.SaleStart)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), draft.SaleEnd)
	assert.Equal(t, model.ClockTimeOf(0, 0), draft.StartTime)
	assert.Equal(t, model.ClockTimeOf(21, 0), draft.EndTime) // 活動結束前一小時
	assert.Equal(t, model.TicketTypePaid, draft.Type)
	assert.Equal(t, 1, draft.MinPerOrder)
	assert.Equal(t, 10, draft.MaxPerOrder)
}

func TestOpenEdit(t *testing.T) {
	t.Run("Success - revalidates a ticket made stale by event changes", func(t *testing.T) {
		store := mocks.NewPersistenceMock()
		// 票券建立時合法，但結束時刻離活動結束不足一小時(事後活動改過時間)
		m := initializedManager(t, store, []*model.Ticket{seededTicket(100, model.ClockTimeOf(21, 30))})

		require.NoError(t, m.OpenEdit(ticketUUID))

		assert.Equal(t, DialogEdit, m.Dialog())
		assert.Equal(t, model.ClockTimeOf(21, 0), m.Draft().EndTime)
		require.Len(t, m.Notices(), 1)
		assert.Equal(t, "end_time", m.Notices()[0].Field)
	})

	t.Run("Failed - unknown ticket", func(t *testing.T) {
		store := mocks.NewPersistenceMock()
		m := initializedManager(t, store, nil)

		err := m.OpenEdit(ticketUUID)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
		assert.Equal(t, DialogNone, m.Dialog())
	})
}

// 編輯到一半改按新增：edit draft 直接丟棄，draft 重設為新增預設值
func TestOpenAddWhileEditing(t *testing.T) {
	store := mocks.NewPersistenceMock()
	m := initializedManager(t, store, []*model.Ticket{seededTicket(100, model.ClockTimeOf(21, 0))})

	require.NoError(t, m.OpenEdit(ticketUUID))
	assert.Equal(t, "General Admission", m.Draft().Name)

	m.OpenAdd()

	assert.Equal(t, DialogAdd, m.Dialog())
	assert.Equal(t, CalendarNone, m.Calendar())
	assert.Empty(t, m.Draft().Name)
}

func TestAddTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - ledger grows by the new capacity", func(t *testing.T) {
		store := mocks.NewPersistenceMock()
		m := initializedManager(t, store, nil)
		require.Equal(t, 0, m.TotalCapacity())

		m.OpenAdd()
		draft := m.Draft()
		draft.Name = "GA"
		draft.Type = model.TicketTypeFree
		draft.Price = nil
		draft.Capacity = 100
		m.SetDraft(draft)

		created := seededTicket(100, model.ClockTimeOf(21, 0))
		store.On("CreateTicket", mock.Anything, eventUUID, mock.Anything).Return(created, nil).Once()

		require.NoError(t, m.AddTicket(ctx))

		assert.Equal(t, 100, m.TotalCapacity())
		assert.Len(t, m.Tickets(), 1)
		assert.Equal(t, DialogNone, m.Dialog())
		assert.False(t, m.IsSubmitting())
		store.AssertExpectations(t)
	})

	t.Run("Success - submit-time narrowing is surfaced as a notice", func(t *testing.T) {
		store := mocks.NewPersistenceMock()
		m := initializedManager(t, store, nil)

		m.OpenAdd()
		draft := m.Draft()
		draft.Name = "GA"
		draft.Type = model.TicketTypeFree
		draft.Price = nil
		draft.SaleEnd = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC) // 活動日之後
		m.SetDraft(draft)

		created := seededTicket(100, model.ClockTimeOf(21, 0))
		store.On("CreateTicket", mock.Anything, eventUUID, mock.Anything).Return(created, nil).Once()

		require.NoError(t, m.AddTicket(ctx))

		// dialog 關了，但收窄通知留給 UI 顯示
		assert.Equal(t, DialogNone, m.Dialog())
		require.NotEmpty(t, m.Notices())
		assert.Equal(t, "sale_end", m.Notices()[0].Field)
	})

	t.Run("Failed - validation keeps the dialog open", func(t *testing.T) {
		store := mocks.NewPersistenceMock()
		m := initializedManager(t, store, nil)

		m.OpenAdd()
		draft := m.Draft()
		draft.Name = "" // required
		m.SetDraft(draft)

		err := m.AddTicket(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Equal(t, DialogAdd, m.Dialog())
		assert.Empty(t, m.Tickets())
		store.AssertNotCalled(t, "CreateTicket")
	})

	t.Run("Failed - inverted window is a hard error", func(t *testing.T) {
		store := mocks.NewPersistenceMock()
		m := initializedManager(t, store, nil)

		m.OpenAdd()
		draft := m.Draft()
		draft.Name = "GA"
		draft.SaleStart = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
		m.SetDraft(draft)

		err := m.AddTicket(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidWindow)
		assert.Equal(t, DialogAdd, m.Dialog())
		store.AssertNotCalled(t, "CreateTicket")
	})

	t.Run("Failed - persistence error leaves state for retry", func(t *testing.T) {
		store := mocks.NewPersistenceMock()
		m := initializedManager(t, store, nil)

		m.OpenAdd()
		draft := m.Draft()
		draft.Name = "GA"
		draft.Type = model.TicketTypeFree
		draft.Price = nil
		m.SetDraft(draft)

		store.On("CreateTicket", mock.Anything, eventUUID, mock.Anything).Return(nil, errors.New("service down")).Once()

		err := m.AddTicket(ctx)

		require.Error(t, err)
		assert.Equal(t, DialogAdd, m.Dialog())
		assert.Equal(t, 0, m.TotalCapacity())
		assert.Empty(t, m.Tickets())
		assert.False(t, m.IsSubmitting())
	})
}

func TestUpdateTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - ledger applies the capacity delta", func(t *testing.T) {
		store := mocks.NewPersistenceMock()
		m := initializedManager(t, store, []*model.Ticket{seededTicket(100, model.ClockTimeOf(21, 0))})
		require.Equal(t, 100, m.TotalCapacity())

		require.NoError(t, m.OpenEdit(ticketUUID))
		draft := m.Draft()
		draft.Capacity = 150
		m.SetDraft(draft)

		updated := seededTicket(150, model.ClockTimeOf(21, 0))
		store.On("UpdateTicket", mock.Anything, eventUUID, ticketUUID, mock.Anything).Return(updated, nil).Once()

		require.NoError(t, m.UpdateTicket(ctx))

		assert.Equal(t, 150, m.TotalCapacity())
		require.Len(t, m.Tickets(), 1)
		assert.Equal(t, 150, m.Tickets()[0].Capacity)
		assert.Equal(t, DialogNone, m.Dialog())
		store.AssertExpectations(t)
	})

	t.Run("Failed - persistence error keeps the old ticket and total", func(t *testing.T) {
		store := mocks.NewPersistenceMock()
		m := initializedManager(t, store, []*model.Ticket{seededTicket(100, model.ClockTimeOf(21, 0))})

		require.NoError(t, m.OpenEdit(ticketUUID))
		draft := m.Draft()
		draft.Capacity = 150
		m.SetDraft(draft)

		store.On("UpdateTicket", mock.Anything, eventUUID, ticketUUID, mock.Anything).Return(nil, errors.New("service down")).Once()

		err := m.UpdateTicket(ctx)

		require.Error(t, err)
		assert.Equal(t, 100, m.TotalCapacity())
		assert.Equal(t, 100, m.Tickets()[0].Capacity)
		assert.Equal(t, DialogEdit, m.Dialog())
	})
}

func TestDeleteTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - ticket removed and capacity returned", func(t *testing.T) {
		store := mocks.NewPersistenceMock()
		m := initializedManager(t, store, []*model.Ticket{seededTicket(100, model.ClockTimeOf(21, 0))})

		require.NoError(t, m.OpenDelete(ticketUUID))
		assert.Equal(t, DialogDelete, m.Dialog())

		store.On("DeleteTicket", mock.Anything, eventUUID, ticketUUID).Return(nil).Once()

		require.NoError(t, m.DeleteTicket(ctx))

		assert.Equal(t, 0, m.TotalCapacity())
		assert.Empty(t, m.Tickets())
		assert.Equal(t, DialogNone, m.Dialog())
		store.AssertExpectations(t)
	})

	t.Run("Failed - unknown ticket", func(t *testing.T) {
		store := mocks.NewPersistenceMock()
		m := initializedManager(t, store, nil)

		err := m.OpenDelete(ticketUUID)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
	})
}

func TestUpdateCapacity(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := mocks.NewPersistenceMock()
		m := initializedManager(t, store, nil)
		m.OpenCapacity()

		override := 500
		updated := managedEvent()
		updated.CapacityOverride = &override
		store.On("UpdateEventCapacity", mock.Anything, eventUUID, 500).Return(updated, nil).Once()

		require.NoError(t, m.UpdateCapacity(ctx, 500))

		require.NotNil(t, m.Event().CapacityOverride)
		assert.Equal(t, 500, *m.Event().CapacityOverride)
		assert.Equal(t, DialogNone, m.Dialog())
		store.AssertExpectations(t)
	})

	t.Run("Failed - negative capacity", func(t *testing.T) {
		store := mocks.NewPersistenceMock()
		m := initializedManager(t, store, nil)
		m.OpenCapacity()

		err := m.UpdateCapacity(ctx, -1)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		store.AssertNotCalled(t, "UpdateEventCapacity")
	})
}

// submitting 旗標擋住重入：狀態不動、不打重複的網路呼叫
func TestSubmissionGating(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewPersistenceMock()
	m := initializedManager(t, store, []*model.Ticket{seededTicket(100, model.ClockTimeOf(21, 0))})

	require.NoError(t, m.OpenEdit(ticketUUID))
	m.submitting = true

	assert.ErrorIs(t, m.AddTicket(ctx), apperrors.ErrSubmissionInFlight)
	assert.ErrorIs(t, m.UpdateTicket(ctx), apperrors.ErrSubmissionInFlight)
	assert.ErrorIs(t, m.DeleteTicket(ctx), apperrors.ErrSubmissionInFlight)
	assert.ErrorIs(t, m.UpdateCapacity(ctx, 10), apperrors.ErrSubmissionInFlight)

	assert.Equal(t, DialogEdit, m.Dialog())
	assert.Equal(t, 100, m.TotalCapacity())
	store.AssertNotCalled(t, "CreateTicket")
	store.AssertNotCalled(t, "UpdateTicket")
	store.AssertNotCalled(t, "DeleteTicket")
	store.AssertNotCalled(t, "UpdateEventCapacity")
}

func TestCloseAll(t *testing.T) {
	store := mocks.NewPersistenceMock()
	m := initializedManager(t, store, []*model.Ticket{seededTicket(100, model.ClockTimeOf(21, 30))})

	require.NoError(t, m.OpenEdit(ticketUUID))
	require.NotEmpty(t, m.Notices())

	m.CloseAll()

	assert.Equal(t, DialogNone, m.Dialog())
	assert.Equal(t, CalendarNone, m.Calendar())
	assert.Empty(t, m.Notices())

	// 冪等
	m.CloseAll()
	assert.Equal(t, DialogNone, m.Dialog())
}

func TestSetDraftIgnoredOutsideEditingDialogs(t *testing.T) {
	store := mocks.NewPersistenceMock()
	m := initializedManager(t, store, nil)

	draft := m.Draft()
	draft.Name = "should not stick"
	m.SetDraft(draft)

	assert.Empty(t, m.Draft().Name)
}
