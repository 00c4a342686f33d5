package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/monitool/monitool/internal/model"
)

// InventoryRepo provides CRUD access to inventory_items.  Items always
// belong to a toolbox and cascade away with it.
type InventoryRepo struct{ DB *sql.DB }

func NewInventoryRepo(db *sql.DB) *InventoryRepo { return &InventoryRepo{DB: db} }

const inventoryCols = "id,toolbox_id,item_name,item_description,quantity,status,last_verified,created_at,updated_at"

// Create inserts an item and returns the stored row.
func (r *InventoryRepo) Create(ctx context.Context, it *model.InventoryItem) (model.InventoryItem, error) {
	id := uuid.NewString()
	qty := it.Quantity
	if qty <= 0 {
		qty = 1
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO inventory_items (id, toolbox_id, item_name, item_description, quantity, status)
		 VALUES (?,?,?,?,?,?)`,
		id, it.ToolboxID, it.ItemName, nullify(it.ItemDescription), qty, orDefault(it.Status, model.ItemPresent))
	if err != nil {
		if isFKViolation(err) {
			return model.InventoryItem{}, ErrNotFound
		}
		return model.InventoryItem{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches an item by primary key.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (model.InventoryItem, error) {
	it, err := scanInventoryItem(r.DB.QueryRowContext(ctx,
		"SELECT "+inventoryCols+" FROM inventory_items WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.InventoryItem{}, ErrNotFound
	}
	return it, err
}

// ListByToolbox returns all items of one toolbox.
func (r *InventoryRepo) ListByToolbox(ctx context.Context, toolboxID string) ([]model.InventoryItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+inventoryCols+" FROM inventory_items WHERE toolbox_id=? ORDER BY item_name", toolboxID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.InventoryItem{}
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// InventoryPatch carries optional field updates for Update.
type InventoryPatch struct {
	ItemName        *string
	ItemDescription *string
	Quantity        *int
	Status          *string
	LastVerified    *time.Time
}

// Update applies non-nil fields from patch and returns the updated row.
func (r *InventoryRepo) Update(ctx context.Context, id string, patch InventoryPatch) (model.InventoryItem, error) {
	var set setClauses
	var args []any
	if patch.ItemName != nil {
		set = append(set, "item_name=?")
		args = append(args, *patch.ItemName)
	}
	if patch.ItemDescription != nil {
		set = append(set, "item_description=?")
		args = append(args, *patch.ItemDescription)
	}
	if patch.Quantity != nil {
		set = append(set, "quantity=?")
		args = append(args, *patch.Quantity)
	}
	if patch.Status != nil {
		set = append(set, "status=?")
		args = append(args, *patch.Status)
	}
	if patch.LastVerified != nil {
		set = append(set, "last_verified=?")
		args = append(args, patch.LastVerified.UTC())
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	if _, err := r.DB.ExecContext(ctx, "UPDATE inventory_items SET "+set.join()+" WHERE id=?", args...); err != nil {
		return model.InventoryItem{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes an item.
func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM inventory_items WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanInventoryItem(s rowScanner) (model.InventoryItem, error) {
	var (
		it       model.InventoryItem
		desc     sql.NullString
		verified sql.NullTime
	)
	err := s.Scan(&it.ID, &it.ToolboxID, &it.ItemName, &desc, &it.Quantity, &it.Status,
		&verified, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return model.InventoryItem{}, err
	}
	it.ItemDescription = strPtr(desc)
	if verified.Valid {
		it.LastVerified = &verified.Time
	}
	return it, nil
}
