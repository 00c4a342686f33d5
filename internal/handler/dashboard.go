package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/monitool/monitool/internal/repository"
)

// DashboardHandler serves aggregate figures for the web dashboard.
type DashboardHandler struct {
	Logs *repository.AccessLogRepo
}

func NewDashboardHandler(logs *repository.AccessLogRepo) *DashboardHandler {
	return &DashboardHandler{Logs: logs}
}

// Stats handles GET /api/v1/dashboard/stats.
func (h *DashboardHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, err := h.Logs.Stats(ctx, time.Now())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, stats)
}
