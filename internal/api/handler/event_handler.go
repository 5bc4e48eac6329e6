package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/awesomeeats/restaurant-api/internal/api/metrics"
	"github.com/awesomeeats/restaurant-api/internal/core/ports"
)

// EventDispatcher is the interface the handler uses to enqueue events.
type EventDispatcher interface {
	Enqueue(event ports.EventInput)
}

// EventHandler serves the recent-events feed and accepts new events.
type EventHandler struct {
	service    ports.EventService
	dispatcher EventDispatcher
}

func NewEventHandler(service ports.EventService, dispatcher EventDispatcher) *EventHandler {
	return &EventHandler{service: service, dispatcher: dispatcher}
}

type publishEventRequest struct {
	Name     string    `json:"name" validate:"required"`
	StartAt  time.Time `json:"start_at" validate:"required"`
	Priority string    `json:"priority" validate:"omitempty,oneof=low standard high"`
}

type publishEventResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// List handles GET /events. Returns the last 42 events, newest first.
//
// @Summary      Get the events list
// @Tags         events
// @Produce      json
// @Success      200  {array}  domain.Event
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.service.Recent(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Get handles GET /events/:id.
//
// @Summary      Get a specific event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  domain.Event
// @Failure      404  {object}  map[string]string
// @Router       /events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Publish handles POST /events. Validates, assigns an id, and hands the
// event to the dispatcher. The write completes asynchronously, hence 202.
//
// @Summary      Publish a new event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      publishEventRequest  true  "Event"
// @Success      202   {object}  publishEventResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /events [post]
func (h *EventHandler) Publish(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req publishEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	priority := req.Priority
	if priority == "" {
		priority = "standard"
	}

	input := ports.EventInput{
		ID:       uuid.NewString(),
		Name:     req.Name,
		StartAt:  req.StartAt,
		Priority: priority,
	}

	h.dispatcher.Enqueue(input)
	metrics.EventsPublishedTotal.WithLabelValues(priority).Inc()

	return c.JSON(http.StatusAccepted, publishEventResponse{
		ID:      input.ID,
		Message: "event accepted",
	})
}
