package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ticket-inventory-manager/internal/service"
	apperrors "ticket-inventory-manager/pkg/app_errors"
	"ticket-inventory-manager/pkg/logger"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events/:uuid", h.GetByEventID)
		router.PUT("events/:uuid/capacity", h.UpdateCapacity)
	}
}

// UpdateCapacityRequest 設定活動容量上限的請求。0 是合法值，所以用指標
type UpdateCapacityRequest struct {
	Capacity *int `json:"capacity" binding:"required"`
}

func (h *EventHandler) GetByEventID(c *gin.Context) {
	uuidStr := c.Param("uuid")
	eventID, err := uuid.Parse(uuidStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}
	event, err := h.service.GetByEventID(c, eventID)
	if err != nil {
		h.handleError(c, err, "GetByEventID")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) UpdateCapacity(c *gin.Context) {
	uuidStr := c.Param("uuid")
	eventID, err := uuid.Parse(uuidStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}
	var req UpdateCapacityRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if *req.Capacity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Capacity cannot be negative"})
		return
	}
	event, err := h.service.UpdateCapacityByEventID(c, eventID, *req.Capacity)
	if err != nil {
		h.handleError(c, err, "UpdateCapacity")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
