package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/events7/events7-api/internal/events/application"
	"github.com/events7/events7-api/internal/events/domain"
	"github.com/events7/events7-api/pkg/metrics"
)

type EventHandler struct {
	service *application.EventService
	guard   AdmissionGuard
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewEventHandler(service *application.EventService, guard AdmissionGuard, m *metrics.Metrics, logger *slog.Logger) *EventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventHandler{service: service, guard: guard, metrics: m, logger: logger}
}

// RegisterRoutes mounts the event endpoints under the given group.
func (h *EventHandler) RegisterRoutes(g *gin.RouterGroup) {
	events := g.Group("/api/events")
	events.POST("", AdmissionMiddleware(h.guard, h.metrics), h.Create)
	events.GET("", h.FindAll)
	events.GET("/:id", h.FindOne)
	events.PATCH("/:id", h.Update)
	events.DELETE("/:id", h.Delete)
}

type eventRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Type        domain.EventType `json:"type" binding:"required,oneof=crosspromo liveops app ads"`
	Priority    int              `json:"priority" binding:"required,min=1,max=10"`
}

func (h *EventHandler) Create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	event, err := h.service.Create(c.Request.Context(), &application.CreateEventCommand{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Priority:    req.Priority,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNameTaken) {
			c.JSON(http.StatusBadRequest, badRequestBody{
				StatusCode: http.StatusBadRequest,
				Message:    "Validation failed",
				Errors:     []fieldError{{Field: "name", Errors: []string{"name must be unique"}}},
			})
			return
		}
		h.logger.Error("failed to create event", "error", err)
		writeInternalError(c)
		return
	}

	c.JSON(http.StatusCreated, eventEnvelope{
		Success: true,
		Message: "Event created successfully!",
		Data:    event,
	})
}

func (h *EventHandler) FindAll(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list events", "error", err)
		writeInternalError(c)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) FindOne(c *gin.Context) {
	event, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			writeBadRequest(c, "Invalid UUID format")
			return
		}
		h.logger.Error("failed to fetch event", "id", c.Param("id"), "error", err)
		writeInternalError(c)
		return
	}

	if event == nil {
		c.JSON(http.StatusOK, eventEnvelope{
			Success: false,
			Message: "Event not found",
			Data:    nil,
		})
		return
	}
	c.JSON(http.StatusOK, eventEnvelope{
		Success: true,
		Message: "Event found successfully",
		Data:    event,
	})
}

func (h *EventHandler) Update(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	event, err := h.service.Update(c.Request.Context(), c.Param("id"), &application.UpdateEventCommand{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Priority:    req.Priority,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			writeNotFound(c)
		case errors.Is(err, domain.ErrInvalidID):
			writeBadRequest(c, "Invalid UUID format")
		case errors.Is(err, domain.ErrNameTaken):
			c.JSON(http.StatusBadRequest, badRequestBody{
				StatusCode: http.StatusBadRequest,
				Message:    "Validation failed",
				Errors:     []fieldError{{Field: "name", Errors: []string{"name must be unique"}}},
			})
		default:
			h.logger.Error("failed to update event", "id", c.Param("id"), "error", err)
			writeInternalError(c)
		}
		return
	}

	c.JSON(http.StatusOK, eventEnvelope{
		Success: true,
		Message: "Event updated successfully",
		Data:    event,
	})
}

func (h *EventHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			writeNotFound(c)
		case errors.Is(err, domain.ErrInvalidID):
			writeBadRequest(c, "Invalid UUID format")
		default:
			h.logger.Error("failed to delete event", "id", c.Param("id"), "error", err)
			writeInternalError(c)
		}
		return
	}

	c.JSON(http.StatusOK, statusEnvelope{
		Success: true,
		Message: "Event deleted successfully",
	})
}
