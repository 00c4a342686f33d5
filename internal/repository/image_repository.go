package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/monitool/monitool/internal/model"
)

// ImageRepo stores metadata rows for uploaded files.  The bytes themselves
// live on disk under the uploads directory; rows only carry the path.
type ImageRepo struct{ DB *sql.DB }

func NewImageRepo(db *sql.DB) *ImageRepo { return &ImageRepo{DB: db} }

const imageCols = "id,toolbox_id,access_log_id,image_url,image_type,file_size,content_type,uploaded_at"

// Create inserts an image metadata row and returns it.
func (r *ImageRepo) Create(ctx context.Context, im *model.Image) (model.Image, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO images (id, toolbox_id, access_log_id, image_url, image_type, file_size, content_type)
		 VALUES (?,?,?,?,?,?,?)`,
		id, im.ToolboxID, nullify(im.AccessLogID), im.ImageURL, nullify(im.ImageType),
		nullifyInt(im.FileSize), nullify(im.ContentType))
	if err != nil {
		if isFKViolation(err) {
			return model.Image{}, ErrNotFound
		}
		return model.Image{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches an image row by primary key.
func (r *ImageRepo) GetByID(ctx context.Context, id string) (model.Image, error) {
	im, err := scanImage(r.DB.QueryRowContext(ctx,
		"SELECT "+imageCols+" FROM images WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Image{}, ErrNotFound
	}
	return im, err
}

// DeleteByPath removes the metadata row for a stored file path, if any.
func (r *ImageRepo) DeleteByPath(ctx context.Context, imageURL string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM images WHERE image_url=?", imageURL)
	return err
}

func scanImage(s rowScanner) (model.Image, error) {
	var (
		im            model.Image
		logID, imType sql.NullString
		size          sql.NullInt64
		ctype         sql.NullString
	)
	err := s.Scan(&im.ID, &im.ToolboxID, &logID, &im.ImageURL, &imType, &size, &ctype, &im.UploadedAt)
	if err != nil {
		return model.Image{}, err
	}
	im.AccessLogID = strPtr(logID)
	im.ImageType = strPtr(imType)
	im.FileSize = intPtr(size)
	im.ContentType = strPtr(ctype)
	return im, nil
}
