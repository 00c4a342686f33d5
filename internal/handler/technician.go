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

// TechnicianHandler implements technician CRUD plus the NFC lookup used
// by edge devices.
type TechnicianHandler struct {
	Technicians *repository.TechnicianRepo
}

func NewTechnicianHandler(r *repository.TechnicianRepo) *TechnicianHandler {
	return &TechnicianHandler{Technicians: r}
}

type technicianReq struct {
	NFCCardUID string  `json:"nfc_card_uid"`
	EmployeeID string  `json:"employee_id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Status     *string `json:"status"`
}

// Create handles POST /api/v1/technicians.
func (h *TechnicianHandler) Create(c echo.Context) error {
	var req technicianReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.NFCCardUID = strings.TrimSpace(req.NFCCardUID)
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	if req.NFCCardUID == "" || req.EmployeeID == "" || req.FirstName == "" || req.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nfc_card_uid, employee_id, first_name and last_name are required"})
	}
	status := model.TechnicianActive
	if req.Status != nil {
		status = *req.Status
	}
	if !validTechnicianStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Technicians.Create(ctx, &model.Technician{
		NFCCardUID: req.NFCCardUID,
		EmployeeID: req.EmployeeID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Status:     status,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "nfc_card_uid or employee_id already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create technician"})
	}
	return c.JSON(http.StatusCreated, t)
}

// List handles GET /api/v1/technicians.
func (h *TechnicianHandler) List(c echo.Context) error {
	skip, limit := pagination(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Technicians.List(ctx, skip, limit)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "skip": skip, "limit": limit})
}

// Get handles GET /api/v1/technicians/:id.
func (h *TechnicianHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Technicians.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "technician not found"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, t)
}

// GetByNFC handles GET /api/v1/technicians/by-nfc/:nfc_uid.  The match is
// exact and case-sensitive as stored; an unregistered UID is a 404, never
// an empty success.
func (h *TechnicianHandler) GetByNFC(c echo.Context) error {
	uid := c.Param("nfc_uid")
	if uid == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nfc_uid required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Technicians.GetByNFC(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "technician not found"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, t)
}

// Update handles PUT /api/v1/technicians/:id.
func (h *TechnicianHandler) Update(c echo.Context) error {
	var req technicianPatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Status != nil && !validTechnicianStatus(*req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Technicians.Update(ctx, c.Param("id"), repository.TechnicianPatch{
		NFCCardUID: req.NFCCardUID,
		EmployeeID: req.EmployeeID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Status:     req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "technician not found"})
		case errors.Is(err, repository.ErrDuplicate):
			return c.JSON(http.StatusConflict, echo.Map{"error": "nfc_card_uid or employee_id already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, t)
}

// Delete handles DELETE /api/v1/technicians/:id.  Technicians with access
// logs are never physically deleted; such requests get a 409.
func (h *TechnicianHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err := h.Technicians.Delete(ctx, c.Param("id"))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "technician deleted"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "technician not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "technician has access logs; set status to inactive instead"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
}

type technicianPatchReq struct {
	NFCCardUID *string `json:"nfc_card_uid"`
	EmployeeID *string `json:"employee_id"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Status     *string `json:"status"`
}

func validTechnicianStatus(s string) bool {
	return s == model.TechnicianActive || s == model.TechnicianInactive || s == model.TechnicianSuspended
}
