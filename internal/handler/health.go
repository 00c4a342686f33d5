package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health serves the /up and /healthz liveness probes used by load
// balancers and the edge devices' connectivity checks.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
