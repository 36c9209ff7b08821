package handler

import (
	"net/http"
	"strconv"

	"schedule-service/internal/scheduling"
	"schedule-service/pkg/logger"
	"schedule-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// EventHandler serves the event and calendar endpoints.
type EventHandler struct {
	svc *scheduling.Service
}

// NewEventHandler creates an event handler over the scheduling service.
func NewEventHandler(svc *scheduling.Service) *EventHandler {
	return &EventHandler{svc: svc}
}

// CreateEvent handles event creation. Managers create approved events,
// default users create pending ones.
func (h *EventHandler) CreateEvent(c echo.Context) error {
	log := logger.FromContext(c)

	user, err := actor(c, h.svc)
	if err != nil {
		return respondError(c, log, err)
	}

	var input scheduling.CreateEventInput
	if err := c.Bind(&input); err != nil {
		log.Error("Failed to parse event creation request", zap.Error(err))
		return respondError(c, log, scheduling.Errorf(scheduling.KindInvalidArgument, "invalid request"))
	}

	event, err := h.svc.CreateEvent(c.Request().Context(), user, input)
	if err != nil {
		return respondError(c, log, err)
	}

	prometheus.RecordEventOperation("create")
	return c.JSON(http.StatusCreated, echo.Map{"event": event})
}

// UpdateEvent handles partial event edits.
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	log := logger.FromContext(c)

	user, err := actor(c, h.svc)
	if err != nil {
		return respondError(c, log, err)
	}

	eventID, err := parseEventID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	var input scheduling.UpdateEventInput
	if err := c.Bind(&input); err != nil {
		log.Error("Failed to parse event update request", zap.Error(err))
		return respondError(c, log, scheduling.Errorf(scheduling.KindInvalidArgument, "invalid request"))
	}

	event, err := h.svc.UpdateEvent(c.Request().Context(), user, eventID, input)
	if err != nil {
		return respondError(c, log, err)
	}

	prometheus.RecordEventOperation("update")
	return c.JSON(http.StatusOK, echo.Map{"event": event})
}

// DeleteEvent removes an event and, for repeating parents, the whole series.
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	log := logger.FromContext(c)

	user, err := actor(c, h.svc)
	if err != nil {
		return respondError(c, log, err)
	}

	eventID, err := parseEventID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.svc.DeleteEvent(c.Request().Context(), user, eventID); err != nil {
		return respondError(c, log, err)
	}

	prometheus.RecordEventOperation("delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "event deleted"})
}

// ApproveEvent handles the manager approval decision.
func (h *EventHandler) ApproveEvent(c echo.Context) error {
	log := logger.FromContext(c)

	user, err := actor(c, h.svc)
	if err != nil {
		return respondError(c, log, err)
	}

	eventID, err := parseEventID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	event, err := h.svc.ApproveEvent(c.Request().Context(), user, eventID)
	if err != nil {
		return respondError(c, log, err)
	}

	prometheus.RecordEventOperation("approve")
	prometheus.RecordApprovalDecision("approved")
	return c.JSON(http.StatusOK, echo.Map{"event": event})
}

// RejectEvent handles the manager rejection decision.
func (h *EventHandler) RejectEvent(c echo.Context) error {
	log := logger.FromContext(c)

	user, err := actor(c, h.svc)
	if err != nil {
		return respondError(c, log, err)
	}

	eventID, err := parseEventID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	event, err := h.svc.RejectEvent(c.Request().Context(), user, eventID)
	if err != nil {
		return respondError(c, log, err)
	}

	prometheus.RecordEventOperation("reject")
	prometheus.RecordApprovalDecision("rejected")
	return c.JSON(http.StatusOK, echo.Map{"event": event})
}

// GetVisibleEvents answers a calendar window query with expanded instances.
// start and end are epoch-millisecond query parameters, half-open.
func (h *EventHandler) GetVisibleEvents(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.CalendarQueryCounter.Inc()

	user, err := actor(c, h.svc)
	if err != nil {
		return respondError(c, log, err)
	}

	windowStart, err := strconv.ParseInt(c.QueryParam("start"), 10, 64)
	if err != nil {
		return respondError(c, log, scheduling.Errorf(scheduling.KindInvalidArgument, "start must be an epoch-millisecond integer"))
	}
	windowEnd, err := strconv.ParseInt(c.QueryParam("end"), 10, 64)
	if err != nil {
		return respondError(c, log, scheduling.Errorf(scheduling.KindInvalidArgument, "end must be an epoch-millisecond integer"))
	}

	done := prometheus.TrackExpansion()
	instances, err := h.svc.GetVisibleEvents(c.Request().Context(), user, windowStart, windowEnd)
	done()
	if err != nil {
		return respondError(c, log, err)
	}

	prometheus.RecordExpandedInstances(len(instances))
	log.Debug("Calendar window answered",
		zap.Int64("window_start", windowStart),
		zap.Int64("window_end", windowEnd),
		zap.Int("instances", len(instances)))
	return c.JSON(http.StatusOK, echo.Map{"events": instances})
}

// GetPendingEvents lists all events awaiting a decision. Managers only.
func (h *EventHandler) GetPendingEvents(c echo.Context) error {
	log := logger.FromContext(c)

	user, err := actor(c, h.svc)
	if err != nil {
		return respondError(c, log, err)
	}

	events, err := h.svc.GetPendingEvents(c.Request().Context(), user)
	if err != nil {
		return respondError(c, log, err)
	}

	prometheus.UpdatePendingEvents(len(events))
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// GetUserPendingEvents lists the acting user's own pending submissions.
func (h *EventHandler) GetUserPendingEvents(c echo.Context) error {
	log := logger.FromContext(c)

	user, err := actor(c, h.svc)
	if err != nil {
		return respondError(c, log, err)
	}

	events, err := h.svc.GetUserPendingEvents(c.Request().Context(), user)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

func parseEventID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, scheduling.Errorf(scheduling.KindInvalidArgument, "invalid event id")
	}
	return uint(id), nil
}
