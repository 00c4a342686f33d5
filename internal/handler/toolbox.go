package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/monitool/monitool/internal/model"
	"github.com/monitool/monitool/internal/repository"
	"github.com/monitool/monitool/internal/storage"
)

// ToolboxHandler implements toolbox CRUD.
type ToolboxHandler struct {
	Toolboxes *repository.ToolboxRepo
	Store     *storage.Local
}

func NewToolboxHandler(r *repository.ToolboxRepo, store *storage.Local) *ToolboxHandler {
	return &ToolboxHandler{Toolboxes: r, Store: store}
}

type toolboxReq struct {
	Name                string  `json:"name"`
	Zone                *string `json:"zone"`
	LocationDescription *string `json:"location_description"`
	RaspberryPiSerial   *string `json:"raspberry_pi_serial"`
	Status              *string `json:"status"`
	TotalItems          int     `json:"total_items"`
	ImageURL            *string `json:"image_url"`
}

// Create handles POST /api/v1/toolboxes.
func (h *ToolboxHandler) Create(c echo.Context) error {
	var req toolboxReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.TotalItems < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total_items must not be negative"})
	}
	status := model.ToolboxOperational
	if req.Status != nil {
		status = *req.Status
	}
	if !validToolboxStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Toolboxes.Create(ctx, &model.Toolbox{
		Name:                req.Name,
		Zone:                req.Zone,
		LocationDescription: req.LocationDescription,
		RaspberryPiSerial:   req.RaspberryPiSerial,
		Status:              status,
		TotalItems:          req.TotalItems,
		ImageURL:            req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "toolbox name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create toolbox"})
	}
	return c.JSON(http.StatusCreated, t)
}

// List handles GET /api/v1/toolboxes with optional zone/status filters.
func (h *ToolboxHandler) List(c echo.Context) error {
	skip, limit := pagination(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Toolboxes.List(ctx, c.QueryParam("zone"), c.QueryParam("status"), skip, limit)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "skip": skip, "limit": limit})
}

// Get handles GET /api/v1/toolboxes/:id.
func (h *ToolboxHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Toolboxes.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "toolbox not found"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, t)
}

type toolboxPatchReq struct {
	Name                *string `json:"name"`
	Zone                *string `json:"zone"`
	LocationDescription *string `json:"location_description"`
	RaspberryPiSerial   *string `json:"raspberry_pi_serial"`
	Status              *string `json:"status"`
	TotalItems          *int    `json:"total_items"`
	ImageURL            *string `json:"image_url"`
}

// Update handles PUT /api/v1/toolboxes/:id.
func (h *ToolboxHandler) Update(c echo.Context) error {
	var req toolboxPatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Status != nil && !validToolboxStatus(*req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	if req.TotalItems != nil && *req.TotalItems < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total_items must not be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Toolboxes.Update(ctx, c.Param("id"), repository.ToolboxPatch{
		Name:                req.Name,
		Zone:                req.Zone,
		LocationDescription: req.LocationDescription,
		RaspberryPiSerial:   req.RaspberryPiSerial,
		Status:              req.Status,
		TotalItems:          req.TotalItems,
		ImageURL:            req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "toolbox not found"})
		case errors.Is(err, repository.ErrDuplicate):
			return c.JSON(http.StatusConflict, echo.Map{"error": "toolbox name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, t)
}

// Delete handles DELETE /api/v1/toolboxes/:id.  The toolbox image file is
// removed best-effort after the row is gone.
func (h *ToolboxHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Toolboxes.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "toolbox not found"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "db error"})
	}

	err = h.Toolboxes.Delete(ctx, t.ID)
	switch {
	case err == nil:
		if t.ImageURL != nil {
			_ = h.Store.Delete(*t.ImageURL)
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "toolbox deleted"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "toolbox has access logs"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
}

func validToolboxStatus(s string) bool {
	return s == model.ToolboxOperational || s == model.ToolboxMaintenance || s == model.ToolboxOffline
}
