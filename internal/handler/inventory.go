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
)

// InventoryHandler implements inventory item CRUD scoped to a toolbox.
type InventoryHandler struct {
	Items     *repository.InventoryRepo
	Toolboxes *repository.ToolboxRepo
}

func NewInventoryHandler(items *repository.InventoryRepo, toolboxes *repository.ToolboxRepo) *InventoryHandler {
	return &InventoryHandler{Items: items, Toolboxes: toolboxes}
}

type inventoryReq struct {
	ToolboxID       string  `json:"toolbox_id"`
	ItemName        string  `json:"item_name"`
	ItemDescription *string `json:"item_description"`
	Quantity        *int    `json:"quantity"`
	Status          *string `json:"status"`
}

// Create handles POST /api/v1/inventory.
func (h *InventoryHandler) Create(c echo.Context) error {
	var req inventoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.ItemName = strings.TrimSpace(req.ItemName)
	if req.ToolboxID == "" || req.ItemName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "toolbox_id and item_name are required"})
	}
	qty := 1
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must not be negative"})
		}
		qty = *req.Quantity
	}
	status := model.ItemPresent
	if req.Status != nil {
		status = *req.Status
	}
	if !validItemStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Toolboxes.GetByID(ctx, req.ToolboxID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "toolbox not found"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "db error"})
	}

	it, err := h.Items.Create(ctx, &model.InventoryItem{
		ToolboxID:       req.ToolboxID,
		ItemName:        req.ItemName,
		ItemDescription: req.ItemDescription,
		Quantity:        qty,
		Status:          status,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create inventory item"})
	}
	return c.JSON(http.StatusCreated, it)
}

// ListByToolbox handles GET /api/v1/toolboxes/:id/inventory.
func (h *InventoryHandler) ListByToolbox(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Toolboxes.GetByID(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "toolbox not found"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "db error"})
	}

	items, err := h.Items.ListByToolbox(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /api/v1/inventory/:id.
func (h *InventoryHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	it, err := h.Items.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "inventory item not found"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, it)
}

type inventoryPatchReq struct {
	ItemName        *string    `json:"item_name"`
	ItemDescription *string    `json:"item_description"`
	Quantity        *int       `json:"quantity"`
	Status          *string    `json:"status"`
	LastVerified    *time.Time `json:"last_verified"`
}

// Update handles PUT /api/v1/inventory/:id.
func (h *InventoryHandler) Update(c echo.Context) error {
	var req inventoryPatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must not be negative"})
	}
	if req.Status != nil && !validItemStatus(*req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	it, err := h.Items.Update(ctx, c.Param("id"), repository.InventoryPatch{
		ItemName:        req.ItemName,
		ItemDescription: req.ItemDescription,
		Quantity:        req.Quantity,
		Status:          req.Status,
		LastVerified:    req.LastVerified,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "inventory item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, it)
}

// Delete handles DELETE /api/v1/inventory/:id.
func (h *InventoryHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err := h.Items.Delete(ctx, c.Param("id"))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "inventory item deleted"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "inventory item not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
}

func validItemStatus(s string) bool {
	return s == model.ItemPresent || s == model.ItemMissing || s == model.ItemDamaged
}
