package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/monitool/monitool/internal/model"
)

// TechnicianRepo provides CRUD access to the technicians table.  Lookup by
// NFC card UID is the hot path: the edge client resolves every scanned
// card through GetByNFC before logging an access event.
type TechnicianRepo struct{ DB *sql.DB }

func NewTechnicianRepo(db *sql.DB) *TechnicianRepo { return &TechnicianRepo{DB: db} }

const technicianCols = "id,nfc_card_uid,employee_id,first_name,last_name,email,phone,department,status,created_at,updated_at"

// Create inserts a technician and returns the stored row.
func (r *TechnicianRepo) Create(ctx context.Context, t *model.Technician) (model.Technician, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO technicians (id, nfc_card_uid, employee_id, first_name, last_name, email, phone, department, status)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		id, t.NFCCardUID, t.EmployeeID, t.FirstName, t.LastName,
		nullify(t.Email), nullify(t.Phone), nullify(t.Department), orDefault(t.Status, model.TechnicianActive))
	if err != nil {
		if isDup(err) {
			return model.Technician{}, ErrDuplicate
		}
		return model.Technician{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a technician by primary key.
func (r *TechnicianRepo) GetByID(ctx context.Context, id string) (model.Technician, error) {
	return r.one(r.DB.QueryRowContext(ctx,
		"SELECT "+technicianCols+" FROM technicians WHERE id=? LIMIT 1", id))
}

// GetByNFC fetches a technician by NFC card UID.  The column uses a
// case-sensitive binary comparison so the match is exact as stored.
func (r *TechnicianRepo) GetByNFC(ctx context.Context, nfcUID string) (model.Technician, error) {
	return r.one(r.DB.QueryRowContext(ctx,
		"SELECT "+technicianCols+" FROM technicians WHERE BINARY nfc_card_uid=? LIMIT 1", nfcUID))
}

// List returns technicians with skip/limit pagination.
func (r *TechnicianRepo) List(ctx context.Context, skip, limit int) ([]model.Technician, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+technicianCols+" FROM technicians ORDER BY created_at LIMIT ? OFFSET ?", limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Technician{}
	for rows.Next() {
		t, err := scanTechnician(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update applies non-nil fields from patch to the stored row and returns
// the updated record.
func (r *TechnicianRepo) Update(ctx context.Context, id string, patch TechnicianPatch) (model.Technician, error) {
	set, args := patch.assignments()
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE technicians SET "+set.join()+" WHERE id=?", args...)
	if err != nil {
		if isDup(err) {
			return model.Technician{}, ErrDuplicate
		}
		return model.Technician{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Could also be an update to identical values; confirm existence.
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.Technician{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a technician.  The delete is refused with ErrConflict
// while access logs still reference the row.
func (r *TechnicianRepo) Delete(ctx context.Context, id string) error {
	var n int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM access_logs WHERE technician_id=?", id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM technicians WHERE id=?", id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// TechnicianPatch carries optional field updates; nil means "leave as is".
type TechnicianPatch struct {
	NFCCardUID *string
	EmployeeID *string
	FirstName  *string
	LastName   *string
	Email      *string
	Phone      *string
	Department *string
	Status     *string
}

func (p TechnicianPatch) assignments() (setClauses, []any) {
	var set setClauses
	var args []any
	add := func(col string, v *string) {
		if v != nil {
			set = append(set, col+"=?")
			args = append(args, *v)
		}
	}
	add("nfc_card_uid", p.NFCCardUID)
	add("employee_id", p.EmployeeID)
	add("first_name", p.FirstName)
	add("last_name", p.LastName)
	add("email", p.Email)
	add("phone", p.Phone)
	add("department", p.Department)
	add("status", p.Status)
	return set, args
}

func (r *TechnicianRepo) one(row *sql.Row) (model.Technician, error) {
	t, err := scanTechnician(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Technician{}, ErrNotFound
	}
	return t, err
}

func scanTechnician(s rowScanner) (model.Technician, error) {
	var (
		t                 model.Technician
		email, phone, dep sql.NullString
	)
	err := s.Scan(&t.ID, &t.NFCCardUID, &t.EmployeeID, &t.FirstName, &t.LastName,
		&email, &phone, &dep, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.Technician{}, err
	}
	t.Email = strPtr(email)
	t.Phone = strPtr(phone)
	t.Department = strPtr(dep)
	return t, nil
}
