package handler

import (
	"net/http"

	"schedule-service/internal/scheduling"
	"schedule-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// respondError maps a scheduling error kind onto an HTTP status so calling
// UIs can tell "not allowed" from "not found" from "bad input". Errors that
// did not come out of the core surface as 500s.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	kind := scheduling.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case scheduling.KindUnauthenticated:
		status = http.StatusUnauthorized
	case scheduling.KindNotFound:
		status = http.StatusNotFound
	case scheduling.KindForbidden:
		status = http.StatusForbidden
	case scheduling.KindInvalidArgument:
		status = http.StatusBadRequest
	case scheduling.KindConflict:
		status = http.StatusConflict
	}

	if kind == "" {
		log.Error("Operation failed", zap.Error(err))
		return c.JSON(status, echo.Map{"error": "internal error"})
	}

	prometheus.RecordSchedulingError(string(kind))
	log.Warn("Operation rejected", zap.String("kind", string(kind)), zap.Error(err))
	return c.JSON(status, echo.Map{"error": err.Error()})
}
