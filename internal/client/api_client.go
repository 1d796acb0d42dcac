package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"ticket-inventory-manager/internal/model"
	apperrors "ticket-inventory-manager/pkg/app_errors"
)

// HTTPPersistence 透過 HTTP 使用持久化服務，實作 manager.Persistence。
// UI 行程跟服務不同機時用這個
type HTTPPersistence struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPPersistence(baseURL string) *HTTPPersistence {
	return &HTTPPersistence{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPPersistence) GetEvent(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	var event model.Event
	path := fmt.Sprintf("/api/v1/events/%s", eventID)
	if err := c.do(ctx, http.MethodGet, path, nil, &event, apperrors.ErrEventNotFound); err != nil {
		return nil, err
	}
	return &event, nil
}

type ticketListResponse struct {
	Tickets       []*model.Ticket `json:"tickets"`
	TotalCapacity int             `json:"total_capacity"`
}

func (c *HTTPPersistence) GetTickets(ctx context.Context, eventID uuid.UUID) ([]*model.Ticket, int, error) {
	var list ticketListResponse
	path := fmt.Sprintf("/api/v1/events/%s/tickets", eventID)
	if err := c.do(ctx, http.MethodGet, path, nil, &list, apperrors.ErrEventNotFound); err != nil {
		return nil, 0, err
	}
	return list.Tickets, list.TotalCapacity, nil
}

func (c *HTTPPersistence) CreateTicket(ctx context.Context, eventID uuid.UUID, params model.CreateTicketParams) (*model.Ticket, error) {
	var ticket model.Ticket
	path := fmt.Sprintf("/api/v1/events/%s/tickets", eventID)
	if err := c.do(ctx, http.MethodPost, path, params, &ticket, apperrors.ErrEventNotFound); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (c *HTTPPersistence) UpdateTicket(ctx context.Context, eventID uuid.UUID, ticketID uuid.UUID, params model.UpdateTicketParams) (*model.Ticket, error) {
	var ticket model.Ticket
	path := fmt.Sprintf("/api/v1/events/%s/tickets/%s", eventID, ticketID)
	if err := c.do(ctx, http.MethodPut, path, params, &ticket, apperrors.ErrTicketNotFound); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (c *HTTPPersistence) DeleteTicket(ctx context.Context, eventID uuid.UUID, ticketID uuid.UUID) error {
	path := fmt.Sprintf("/api/v1/events/%s/tickets/%s", eventID, ticketID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, apperrors.ErrTicketNotFound)
}

func (c *HTTPPersistence) UpdateEventCapacity(ctx context.Context, eventID uuid.UUID, capacity int) (*model.Event, error) {
	var event model.Event
	path := fmt.Sprintf("/api/v1/events/%s/capacity", eventID)
	body := map[string]int{"capacity": capacity}
	if err := c.do(ctx, http.MethodPut, path, body, &event, apperrors.ErrEventNotFound); err != nil {
		return nil, err
	}
	return &event, nil
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// do 發request並解response。notFound 指定 404 時回哪個 sentinel
func (c *HTTPPersistence) do(ctx context.Context, method, path string, body interface{}, out interface{}, notFound error) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("persistence service unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return notFound
	case resp.StatusCode == http.StatusBadRequest:
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Field != "" {
			return apperrors.NewFieldError(errResp.Field, errResp.Error)
		}
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, errResp.Error)
	case resp.StatusCode == http.StatusServiceUnavailable:
		return apperrors.ErrServiceUnavailable
	default:
		return fmt.Errorf("persistence service returned status %d", resp.StatusCode)
	}
}
