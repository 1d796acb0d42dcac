package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"ticket-inventory-manager/internal/model"
)

var (
	handlerEventUUID  = uuid.MustParse("a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11")
	handlerTicketUUID = uuid.MustParse("b1eebc99-9c0b-4ef8-bb6d-6bb9bd380a22")
)

func handlerEvent() *model.Event {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	return &model.Event{
		ID:      1,
		EventID: handlerEventUUID,
		Name:    "Summer Concert",
		Date:    &date,
		EndTime: model.ClockTimeOf(22, 0),
	}
}

func handlerTicket() *model.Ticket {
	return &model.Ticket{
		ID:          10,
		TicketID:    handlerTicketUUID,
		EventID:     1,
		Name:        "General Admission",
		Type:        model.TicketTypeFree,
		Capacity:    100,
		SaleStart:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		SaleEnd:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   model.ClockTimeOf(0, 0),
		EndTime:     model.ClockTimeOf(21, 0),
		MinPerOrder: 1,
		MaxPerOrder: 10,
	}
}

func performRequest(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
