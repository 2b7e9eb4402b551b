package middleware

import (
	"net/http"
	"strings"

	"telemed-service/pkg/jwtutil"
	"telemed-service/pkg/logger"
	"telemed-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Context keys populated by AuthMiddleware
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextClaims = "claims"
)

// AuthMiddleware validates the bearer token from the Authorization header.
// All verification failures answer 401; the error code distinguishes a
// missing header and a malformed header from a rejected token, but never
// why the token itself was rejected.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no_token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid_token_format"})
		}

		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Warn("Rejected bearer token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid_token"})
		}

		// Store identity claims in context for downstream handlers
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextClaims, claims)

		return next(c)
	}
}
