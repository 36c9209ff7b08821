package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"schedule-service/internal/scheduling"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		kind   scheduling.Kind
		status int
	}{
		{scheduling.KindUnauthenticated, http.StatusUnauthorized},
		{scheduling.KindNotFound, http.StatusNotFound},
		{scheduling.KindForbidden, http.StatusForbidden},
		{scheduling.KindInvalidArgument, http.StatusBadRequest},
		{scheduling.KindConflict, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := respondError(c, zap.NewNop(), scheduling.Errorf(tt.kind, "nope"))
			require.NoError(t, err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), "nope")
		})
	}
}

func TestRespondErrorUnknownErrorIsInternal(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := respondError(c, zap.NewNop(), errors.New("driver exploded"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Internal details stay out of the response body.
	assert.NotContains(t, rec.Body.String(), "driver exploded")
}
