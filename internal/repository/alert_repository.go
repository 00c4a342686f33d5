package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/monitool/monitool/internal/model"
)

// AlertRepo persists alerts produced by the queue consumer and exposes the
// dashboard's list/resolve operations.
type AlertRepo struct{ DB *sql.DB }

func NewAlertRepo(db *sql.DB) *AlertRepo { return &AlertRepo{DB: db} }

const alertCols = "id,toolbox_id,alert_type,severity,message,is_resolved,created_at,resolved_at,resolved_by"

// Create inserts an alert row and returns its ID.
func (r *AlertRepo) Create(ctx context.Context, a *model.Alert) (string, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO alerts (id, toolbox_id, alert_type, severity, message) VALUES (?,?,?,?,?)",
		id, nullify(a.ToolboxID), a.AlertType, orDefault(a.Severity, model.SeverityMedium), a.Message)
	if err != nil {
		return "", err
	}
	return id, nil
}

// List returns alerts newest first.  resolved filters by is_resolved when
// non-nil.
func (r *AlertRepo) List(ctx context.Context, resolved *bool, skip, limit int) ([]model.Alert, error) {
	q := "SELECT " + alertCols + " FROM alerts WHERE 1=1"
	args := []any{}
	if resolved != nil {
		q += " AND is_resolved=?"
		args = append(args, *resolved)
	}
	q += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Alert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Resolve marks an alert resolved by the given user.
func (r *AlertRepo) Resolve(ctx context.Context, id, userID string, at time.Time) (model.Alert, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE alerts SET is_resolved=1, resolved_at=?, resolved_by=? WHERE id=? AND is_resolved=0",
		at.UTC(), userID, id)
	if err != nil {
		return model.Alert{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either missing or already resolved; distinguish for the caller.
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.Alert{}, err
		}
		return model.Alert{}, ErrConflict
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches one alert row.
func (r *AlertRepo) GetByID(ctx context.Context, id string) (model.Alert, error) {
	a, err := scanAlert(r.DB.QueryRowContext(ctx,
		"SELECT "+alertCols+" FROM alerts WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Alert{}, ErrNotFound
	}
	return a, err
}

func scanAlert(s rowScanner) (model.Alert, error) {
	var (
		a          model.Alert
		toolboxID  sql.NullString
		resolvedAt sql.NullTime
		resolvedBy sql.NullString
	)
	err := s.Scan(&a.ID, &toolboxID, &a.AlertType, &a.Severity, &a.Message,
		&a.IsResolved, &a.CreatedAt, &resolvedAt, &resolvedBy)
	if err != nil {
		return model.Alert{}, err
	}
	a.ToolboxID = strPtr(toolboxID)
	if resolvedAt.Valid {
		a.ResolvedAt = &resolvedAt.Time
	}
	a.ResolvedBy = strPtr(resolvedBy)
	return a, nil
}
