package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/monitool/monitool/internal/model"
)

// ToolboxRepo provides CRUD access to the toolboxes table.
type ToolboxRepo struct{ DB *sql.DB }

func NewToolboxRepo(db *sql.DB) *ToolboxRepo { return &ToolboxRepo{DB: db} }

const toolboxCols = "id,name,zone,location_description,raspberry_pi_serial,status,total_items,image_url,created_at,updated_at"

// Create inserts a toolbox and returns the stored row.
func (r *ToolboxRepo) Create(ctx context.Context, t *model.Toolbox) (model.Toolbox, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO toolboxes (id, name, zone, location_description, raspberry_pi_serial, status, total_items, image_url)
		 VALUES (?,?,?,?,?,?,?,?)`,
		id, t.Name, nullify(t.Zone), nullify(t.LocationDescription), nullify(t.RaspberryPiSerial),
		orDefault(t.Status, model.ToolboxOperational), t.TotalItems, nullify(t.ImageURL))
	if err != nil {
		if isDup(err) {
			return model.Toolbox{}, ErrDuplicate
		}
		return model.Toolbox{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a toolbox by primary key.
func (r *ToolboxRepo) GetByID(ctx context.Context, id string) (model.Toolbox, error) {
	return r.one(r.DB.QueryRowContext(ctx,
		"SELECT "+toolboxCols+" FROM toolboxes WHERE id=? LIMIT 1", id))
}

// List returns toolboxes filtered by optional zone and status, paginated.
func (r *ToolboxRepo) List(ctx context.Context, zone, status string, skip, limit int) ([]model.Toolbox, error) {
	q := "SELECT " + toolboxCols + " FROM toolboxes WHERE 1=1"
	args := []any{}
	if zone != "" {
		q += " AND zone=?"
		args = append(args, zone)
	}
	if status != "" {
		q += " AND status=?"
		args = append(args, status)
	}
	q += " ORDER BY name LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Toolbox{}
	for rows.Next() {
		t, err := scanToolbox(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ToolboxPatch carries optional field updates for Update.
type ToolboxPatch struct {
	Name                *string
	Zone                *string
	LocationDescription *string
	RaspberryPiSerial   *string
	Status              *string
	TotalItems          *int
	ImageURL            *string
}

// Update applies non-nil fields from patch and returns the updated row.
func (r *ToolboxRepo) Update(ctx context.Context, id string, patch ToolboxPatch) (model.Toolbox, error) {
	var set setClauses
	var args []any
	addStr := func(col string, v *string) {
		if v != nil {
			set = append(set, col+"=?")
			args = append(args, *v)
		}
	}
	addStr("name", patch.Name)
	addStr("zone", patch.Zone)
	addStr("location_description", patch.LocationDescription)
	addStr("raspberry_pi_serial", patch.RaspberryPiSerial)
	addStr("status", patch.Status)
	if patch.TotalItems != nil {
		set = append(set, "total_items=?")
		args = append(args, *patch.TotalItems)
	}
	addStr("image_url", patch.ImageURL)
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	if _, err := r.DB.ExecContext(ctx, "UPDATE toolboxes SET "+set.join()+" WHERE id=?", args...); err != nil {
		if isDup(err) {
			return model.Toolbox{}, ErrDuplicate
		}
		return model.Toolbox{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a toolbox.  Inventory items cascade; access logs keep the
// delete blocked by the foreign key, surfaced as ErrConflict.
func (r *ToolboxRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM toolboxes WHERE id=?", id)
	if err != nil {
		if isFKViolation(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ToolboxRepo) one(row *sql.Row) (model.Toolbox, error) {
	t, err := scanToolbox(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Toolbox{}, ErrNotFound
	}
	return t, err
}

func scanToolbox(s rowScanner) (model.Toolbox, error) {
	var (
		t                     model.Toolbox
		zone, loc, serial, im sql.NullString
	)
	err := s.Scan(&t.ID, &t.Name, &zone, &loc, &serial, &t.Status, &t.TotalItems, &im,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.Toolbox{}, err
	}
	t.Zone = strPtr(zone)
	t.LocationDescription = strPtr(loc)
	t.RaspberryPiSerial = strPtr(serial)
	t.ImageURL = strPtr(im)
	return t, nil
}
