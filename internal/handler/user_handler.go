package handler

import (
	"net/http"
	"strconv"

	"schedule-service/internal/middleware"
	"schedule-service/internal/model"
	"schedule-service/internal/scheduling"
	"schedule-service/pkg/logger"
	"schedule-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserHandler serves the user endpoints.
type UserHandler struct {
	svc *scheduling.Service
}

// NewUserHandler creates a user handler over the scheduling service.
func NewUserHandler(svc *scheduling.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// actor resolves the acting user for the authenticated identity. Tokens whose
// subject was never ensured yield the core's not-found error.
func actor(c echo.Context, svc *scheduling.Service) (*model.User, error) {
	id, ok := middleware.IdentityFromContext(c)
	if !ok {
		return nil, scheduling.Errorf(scheduling.KindUnauthenticated, "not authenticated")
	}
	return svc.CurrentUser(c.Request().Context(), id.Subject)
}

// EnsureUser upserts the local user row for the authenticated identity.
func (h *UserHandler) EnsureUser(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := middleware.IdentityFromContext(c)
	if !ok {
		return respondError(c, log, scheduling.Errorf(scheduling.KindUnauthenticated, "not authenticated"))
	}

	user, err := h.svc.EnsureUser(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err)
	}

	prometheus.UserEnsureCounter.Inc()
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// GetCurrentUser returns the acting user, or null when the identity was never
// ensured.
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	log := logger.FromContext(c)

	user, err := actor(c, h.svc)
	if err != nil {
		if scheduling.KindOf(err) == scheduling.KindNotFound {
			return c.JSON(http.StatusOK, echo.Map{"user": nil})
		}
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// ListUsers returns every user, for the assignee picker.
func (h *UserHandler) ListUsers(c echo.Context) error {
	log := logger.FromContext(c)

	user, err := actor(c, h.svc)
	if err != nil {
		return respondError(c, log, err)
	}

	users, err := h.svc.ListUsers(c.Request().Context(), user)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// UpdateUserRole changes a user's role. Managers only.
func (h *UserHandler) UpdateUserRole(c echo.Context) error {
	log := logger.FromContext(c)

	user, err := actor(c, h.svc)
	if err != nil {
		return respondError(c, log, err)
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return respondError(c, log, scheduling.Errorf(scheduling.KindInvalidArgument, "invalid user id"))
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse role update request", zap.Error(err))
		return respondError(c, log, scheduling.Errorf(scheduling.KindInvalidArgument, "invalid request"))
	}

	updated, err := h.svc.UpdateUserRole(c.Request().Context(), user, uint(userID), req.Role)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("User role changed",
		zap.Uint("user_id", updated.ID),
		zap.String("role", updated.Role))
	return c.JSON(http.StatusOK, echo.Map{"user": updated})
}
