package middleware

import (
	"net/http"
	"strings"

	"schedule-service/internal/scheduling"
	"schedule-service/pkg/jwtutil"
	"schedule-service/pkg/logger"
	"schedule-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// IdentityKey is the context key the resolved external identity is stored
// under for handlers.
const IdentityKey = "identity"

// AuthMiddleware validates the JWT token from the Authorization header and
// stores the external identity in the request context. It does not touch the
// user table; handlers resolve the acting user themselves.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Error("Missing Authorization header")
			prometheus.RecordSchedulingError(string(scheduling.KindUnauthenticated))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Error("Invalid Authorization header format")
			prometheus.RecordSchedulingError(string(scheduling.KindUnauthenticated))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordSchedulingError(string(scheduling.KindUnauthenticated))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		if claims.Subject == "" {
			log.Error("Token has no subject")
			prometheus.RecordSchedulingError(string(scheduling.KindUnauthenticated))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token has no subject"})
		}

		c.Set(IdentityKey, scheduling.Identity{
			Subject: claims.Subject,
			Name:    claims.Name,
			Email:   claims.Email,
		})

		return next(c)
	}
}

// IdentityFromContext returns the identity stored by AuthMiddleware.
func IdentityFromContext(c echo.Context) (scheduling.Identity, bool) {
	id, ok := c.Get(IdentityKey).(scheduling.Identity)
	return id, ok
}
