package handler

import (
	"errors"
	"net/http"
	"time"

	"telemed-service/internal/middleware"
	"telemed-service/internal/service"
	"telemed-service/pkg/logger"
	"telemed-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProfileHandler serves the authenticated profile endpoint
type ProfileHandler struct {
	profiles service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(profiles service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetMe handles GET /api/me. The bearer token has already been verified by
// the auth middleware; this loads the identity and its role profile.
func (h *ProfileHandler) GetMe(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := c.Get(middleware.ContextUserID).(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		prometheus.RecordAuthError("missing_context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid_token"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, profile, err := h.profiles.Resolve(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// Tokens can outlive an identity that was later removed
			prometheus.RecordAuthError("user_not_found")
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user_not_found"})
		}
		if errors.Is(err, service.ErrProfileMissing) {
			// Integrity fault: an identity committed without its profile
			log.Error("Profile row missing for existing user",
				zap.Uint("user_id", userID))
			prometheus.RecordAuthError("profile_missing")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "profile_missing"})
		}
		log.Error("Profile resolution failed", zap.Error(err))
		prometheus.RecordAuthError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}

	prometheus.RecordProfileRead(user.Role)

	return c.JSON(http.StatusOK, echo.Map{
		"ok":      true,
		"user":    user,
		"profile": profile,
	})
}
