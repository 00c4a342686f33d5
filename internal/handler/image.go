package handler

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/monitool/monitool/internal/model"
	"github.com/monitool/monitool/internal/repository"
	"github.com/monitool/monitool/internal/storage"
)

// ImageHandler stores uploaded toolbox photos on disk and tracks them in
// the images table.
type ImageHandler struct {
	Images    *repository.ImageRepo
	Toolboxes *repository.ToolboxRepo
	Store     *storage.Local
	MaxBytes  int64
}

func NewImageHandler(images *repository.ImageRepo, toolboxes *repository.ToolboxRepo, store *storage.Local, maxBytes int64) *ImageHandler {
	return &ImageHandler{Images: images, Toolboxes: toolboxes, Store: store, MaxBytes: maxBytes}
}

var allowedImageExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// Upload handles POST /api/v1/images/upload.  Multipart form with a
// `file` part plus `subfolder`, `toolbox_id` and optional `access_log_id`
// and `image_type` fields.
func (h *ImageHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	if h.MaxBytes > 0 && fh.Size > h.MaxBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file too large"})
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType, ok := allowedImageExt[ext]
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "only jpeg and png images are accepted"})
	}

	subfolder := strings.TrimSpace(c.FormValue("subfolder"))
	if subfolder == "" {
		subfolder = "toolboxes"
	}
	toolboxID := c.FormValue("toolbox_id")
	if toolboxID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "toolbox_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if _, err := h.Toolboxes.GetByID(ctx, toolboxID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "toolbox not found"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "db error"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read upload"})
	}
	defer src.Close()

	publicPath, size, err := h.Store.Save(src, subfolder, fh.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrBadPath) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid subfolder"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store file"})
	}

	sizeInt := int(size)
	im := model.Image{
		ToolboxID:   toolboxID,
		ImageURL:    publicPath,
		FileSize:    &sizeInt,
		ContentType: &contentType,
	}
	if v := c.FormValue("access_log_id"); v != "" {
		im.AccessLogID = &v
	}
	if v := c.FormValue("image_type"); v != "" {
		im.ImageType = &v
	}

	saved, err := h.Images.Create(ctx, &im)
	if err != nil {
		_ = h.Store.Delete(publicPath)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not record image"})
	}
	return c.JSON(http.StatusCreated, saved)
}

// Serve handles GET /uploads/:subfolder/:filename.
func (h *ImageHandler) Serve(c echo.Context) error {
	publicPath := "/uploads/" + c.Param("subfolder") + "/" + c.Param("filename")
	abs, err := h.Store.Resolve(publicPath)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "file not found"})
	}
	return c.File(abs)
}

// Delete handles DELETE /api/v1/images.  The file path comes from the
// `file_path` query parameter; both the row and the file are removed.
func (h *ImageHandler) Delete(c echo.Context) error {
	publicPath := c.QueryParam("file_path")
	if publicPath == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file_path is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Images.DeleteByPath(ctx, publicPath); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if err := h.Store.Delete(publicPath); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "file not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "image deleted"})
}
