package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ticket-inventory-manager/internal/model"
	"ticket-inventory-manager/internal/service"
	apperrors "ticket-inventory-manager/pkg/app_errors"
	"ticket-inventory-manager/pkg/logger"
)

type TicketHandler struct {
	service service.TicketService
}

func NewTicketHandler(service service.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events/:uuid/tickets", h.ListByEventID)
		router.POST("events/:uuid/tickets", h.Create)
		router.PUT("events/:uuid/tickets/:ticket_uuid", h.Update)
		router.DELETE("events/:uuid/tickets/:ticket_uuid", h.Delete)
	}
}

// TicketListResponse 票券清單響應，容量總額跟著一起回
type TicketListResponse struct {
	Tickets       []*model.Ticket `json:"tickets"`
	TotalCapacity int             `json:"total_capacity"`
}

func (h *TicketHandler) ListByEventID(c *gin.Context) {
	eventID, ok := parseEventUUID(c)
	if !ok {
		return
	}
	tickets, total, err := h.service.ListByEventID(c, eventID)
	if err != nil {
		h.handleError(c, err, "ListByEventID")
		return
	}
	c.JSON(http.StatusOK, TicketListResponse{
		Tickets:       tickets,
		TotalCapacity: total,
	})
}

func (h *TicketHandler) Create(c *gin.Context) {
	eventID, ok := parseEventUUID(c)
	if !ok {
		return
	}
	var params model.CreateTicketParams
	if err := BindJson(c, &params); err != nil {
		return
	}
	created, err := h.service.Create(c, eventID, params)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TicketHandler) Update(c *gin.Context) {
	eventID, ok := parseEventUUID(c)
	if !ok {
		return
	}
	ticketID, ok := parseTicketUUID(c)
	if !ok {
		return
	}
	var params model.UpdateTicketParams
	if err := BindJson(c, &params); err != nil {
		return
	}
	updated, err := h.service.Update(c, eventID, ticketID, params)
	if err != nil {
		h.handleError(c, err, "Update")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *TicketHandler) Delete(c *gin.Context) {
	eventID, ok := parseEventUUID(c)
	if !ok {
		return
	}
	ticketID, ok := parseTicketUUID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c, eventID, ticketID); err != nil {
		h.handleError(c, err, "Delete")
		return
	}
	c.Status(http.StatusNoContent)
}

func parseEventUUID(c *gin.Context) (uuid.UUID, bool) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return uuid.Nil, false
	}
	return eventID, true
}

func parseTicketUUID(c *gin.Context) (uuid.UUID, bool) {
	ticketID, err := uuid.Parse(c.Param("ticket_uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket uuid"})
		return uuid.Nil, false
	}
	return ticketID, true
}

func (h *TicketHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	var fieldErr *apperrors.FieldError
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, apperrors.ErrTicketNotFound):
		log.Warn("Ticket not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
	case errors.As(err, &fieldErr):
		log.Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message, "field": fieldErr.Field})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
