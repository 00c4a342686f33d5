package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/monitool/monitool/internal/model"
	"github.com/monitool/monitool/internal/queue"
	"github.com/monitool/monitool/internal/repository"
	"github.com/monitool/monitool/internal/service"
)

// AccessLogHandler ingests access events from edge devices and serves the
// append-only log to the dashboard.
type AccessLogHandler struct {
	Logs        *repository.AccessLogRepo
	Toolboxes   *repository.ToolboxRepo
	Technicians *repository.TechnicianRepo
}

func NewAccessLogHandler(logs *repository.AccessLogRepo, toolboxes *repository.ToolboxRepo, technicians *repository.TechnicianRepo) *AccessLogHandler {
	return &AccessLogHandler{Logs: logs, Toolboxes: toolboxes, Technicians: technicians}
}

type accessLogReq struct {
	ToolboxID         string  `json:"toolbox_id"`
	TechnicianID      string  `json:"technician_id"`
	ActionType        string  `json:"action_type"`
	ItemsBefore       *int    `json:"items_before"`
	ItemsAfter        *int    `json:"items_after"`
	MissingItemsList  *string `json:"missing_items_list"`
	Notes             *string `json:"notes"`
	ConditionImageURL *string `json:"condition_image_url"`
}

// deriveMissing computes the missing-item count for an event.  When both
// counts are reported it is before minus after, clamped at zero; any
// missing count the caller supplies is ignored.
func deriveMissing(before, after *int) int {
	if before == nil || after == nil {
		return 0
	}
	if d := *before - *after; d > 0 {
		return d
	}
	return 0
}

// Create handles POST /api/v1/access-logs.  The timestamp is assigned
// server-side; the stored record is returned so edge devices can log the
// authoritative id and derived fields.
func (h *AccessLogHandler) Create(c echo.Context) error {
	var req accessLogReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ToolboxID == "" || req.TechnicianID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "toolbox_id and technician_id are required"})
	}
	if !model.ValidAction(req.ActionType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "action_type must be open, close or access_denied"})
	}
	if (req.ItemsBefore != nil && *req.ItemsBefore < 0) || (req.ItemsAfter != nil && *req.ItemsAfter < 0) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item counts must not be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	toolbox, err := h.Toolboxes.GetByID(ctx, req.ToolboxID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "toolbox not found"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "db error"})
	}
	if _, err := h.Technicians.GetByID(ctx, req.TechnicianID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "technician not found"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "db error"})
	}

	ip := c.RealIP()
	rec := model.AccessLog{
		ToolboxID:         req.ToolboxID,
		TechnicianID:      req.TechnicianID,
		ActionType:        req.ActionType,
		Timestamp:         time.Now().UTC(),
		ItemsBefore:       req.ItemsBefore,
		ItemsAfter:        req.ItemsAfter,
		ItemsMissing:      deriveMissing(req.ItemsBefore, req.ItemsAfter),
		MissingItemsList:  req.MissingItemsList,
		Notes:             req.Notes,
		ConditionImageURL: req.ConditionImageURL,
		IPAddress:         &ip,
	}
	if err := h.Logs.Insert(ctx, &rec); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "toolbox or technician not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not record access event"})
	}

	h.publishAlerts(c.Request().Context(), toolbox, rec)

	return c.JSON(http.StatusCreated, rec)
}

// publishAlerts emits alert events for the conditions worth waking an
// operator for.  Publishing is best-effort: a broker outage must never
// fail ingestion.
func (h *AccessLogHandler) publishAlerts(ctx context.Context, toolbox model.Toolbox, rec model.AccessLog) {
	if rec.ItemsMissing > 0 {
		severity := model.SeverityMedium
		if rec.ItemsMissing >= 3 {
			severity = model.SeverityHigh
		}
		_ = service.PublishAlert(ctx, queue.AlertEvent{
			AccessLogID:  rec.ID,
			ToolboxID:    rec.ToolboxID,
			ToolboxName:  toolbox.Name,
			TechnicianID: rec.TechnicianID,
			AlertType:    model.AlertMissingItems,
			Severity:     severity,
			Message:      fmt.Sprintf("%d item(s) missing from toolbox %s", rec.ItemsMissing, toolbox.Name),
			OccurredAt:   rec.Timestamp.Format(time.RFC3339),
		})
	}
	if rec.ActionType == model.ActionAccessDenied {
		_ = service.PublishAlert(ctx, queue.AlertEvent{
			AccessLogID:  rec.ID,
			ToolboxID:    rec.ToolboxID,
			ToolboxName:  toolbox.Name,
			TechnicianID: rec.TechnicianID,
			AlertType:    model.AlertUnauthorizedAccess,
			Severity:     model.SeverityHigh,
			Message:      fmt.Sprintf("access denied at toolbox %s", toolbox.Name),
			OccurredAt:   rec.Timestamp.Format(time.RFC3339),
		})
	}
}

// List handles GET /api/v1/access-logs with optional toolbox_id and
// technician_id filters, newest first.
func (h *AccessLogHandler) List(c echo.Context) error {
	skip, limit := pagination(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Logs.List(ctx, c.QueryParam("toolbox_id"), c.QueryParam("technician_id"), skip, limit)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "skip": skip, "limit": limit})
}

// Get handles GET /api/v1/access-logs/:id.
func (h *AccessLogHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Logs.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "access log not found"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, rec)
}

// Delete handles DELETE /api/v1/access-logs/:id.  Intended for purging
// test entries; normal operation never deletes log rows.
func (h *AccessLogHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err := h.Logs.Delete(ctx, c.Param("id"))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "access log deleted"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "access log not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
}
