package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/monitool/monitool/internal/repository"
)

// AlertHandler serves the alert feed and lets operators resolve entries.
type AlertHandler struct {
	Alerts *repository.AlertRepo
}

func NewAlertHandler(alerts *repository.AlertRepo) *AlertHandler {
	return &AlertHandler{Alerts: alerts}
}

// List handles GET /api/v1/alerts with an optional resolved=true|false
// filter.
func (h *AlertHandler) List(c echo.Context) error {
	skip, limit := pagination(c)

	var resolved *bool
	switch c.QueryParam("resolved") {
	case "":
	case "true":
		v := true
		resolved = &v
	case "false":
		v := false
		resolved = &v
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "resolved must be true or false"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Alerts.List(ctx, resolved, skip, limit)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "skip": skip, "limit": limit})
}

// Resolve handles PUT /api/v1/alerts/:id/resolve.  The resolving user is
// taken from the access token.
func (h *AlertHandler) Resolve(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Alerts.Resolve(ctx, c.Param("id"), userID, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "alert not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "alert already resolved"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resolve failed"})
	}
	return c.JSON(http.StatusOK, a)
}
