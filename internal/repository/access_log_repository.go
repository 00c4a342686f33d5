package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/monitool/monitool/internal/model"
)

// AccessLogRepo persists access events as an append-only audit log and
// computes the dashboard aggregates over it.  Rows are inserted once with
// a server-assigned timestamp and never updated.
type AccessLogRepo struct{ DB *sql.DB }

func NewAccessLogRepo(db *sql.DB) *AccessLogRepo { return &AccessLogRepo{DB: db} }

const accessLogCols = "id,toolbox_id,technician_id,action_type,timestamp,items_before,items_after,items_missing,missing_items_list,notes,condition_image_url,ip_address"

// Insert writes one access log row.  The caller supplies the fully
// validated record including its server-assigned Timestamp; the generated
// ID is written back onto rec.
func (r *AccessLogRepo) Insert(ctx context.Context, rec *model.AccessLog) error {
	rec.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO access_logs
		 (id, toolbox_id, technician_id, action_type, timestamp, items_before, items_after, items_missing, missing_items_list, notes, condition_image_url, ip_address)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.ID, rec.ToolboxID, rec.TechnicianID, rec.ActionType, rec.Timestamp.UTC(),
		nullifyInt(rec.ItemsBefore), nullifyInt(rec.ItemsAfter), rec.ItemsMissing,
		nullify(rec.MissingItemsList), nullify(rec.Notes), nullify(rec.ConditionImageURL), nullify(rec.IPAddress))
	if err != nil && isFKViolation(err) {
		return ErrNotFound
	}
	return err
}

// GetByID fetches a single access log row.
func (r *AccessLogRepo) GetByID(ctx context.Context, id string) (model.AccessLog, error) {
	rec, err := scanAccessLog(r.DB.QueryRowContext(ctx,
		"SELECT "+accessLogCols+" FROM access_logs WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.AccessLog{}, ErrNotFound
	}
	return rec, err
}

// List returns logs filtered by optional toolbox and technician IDs,
// newest first, with skip/limit pagination.
func (r *AccessLogRepo) List(ctx context.Context, toolboxID, technicianID string, skip, limit int) ([]model.AccessLog, error) {
	q := "SELECT " + accessLogCols + " FROM access_logs WHERE 1=1"
	args := []any{}
	if toolboxID != "" {
		q += " AND toolbox_id=?"
		args = append(args, toolboxID)
	}
	if technicianID != "" {
		q += " AND technician_id=?"
		args = append(args, technicianID)
	}
	q += " ORDER BY timestamp DESC LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.AccessLog{}
	for rows.Next() {
		rec, err := scanAccessLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes a log row.  Only explicit admin action reaches this.
func (r *AccessLogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM access_logs WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Aggregate windows for Stats.  The missing-items sum is bounded to the
// last 7 days; a technician counts as active when their row has
// status='active' and they produced at least one log in the last 24 hours.
const (
	missingItemsWindow = 7 * 24 * time.Hour
	activeTechWindow   = 24 * time.Hour
)

// statsBounds computes the query windows for Stats relative to now.  The
// checkout count covers the current calendar day in the server's local
// timezone: [local midnight, next local midnight).
func statsBounds(now time.Time) (dayStart, dayEnd, missingSince, activeSince time.Time) {
	local := now.Local()
	dayStart = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	dayEnd = dayStart.AddDate(0, 0, 1)
	missingSince = now.Add(-missingItemsWindow)
	activeSince = now.Add(-activeTechWindow)
	return
}

// Stats computes the dashboard aggregates on demand.  It is purely
// read-only; any error is a storage failure.
func (r *AccessLogRepo) Stats(ctx context.Context, now time.Time) (model.DashboardStats, error) {
	dayStart, dayEnd, missingSince, activeSince := statsBounds(now)

	var s model.DashboardStats
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM access_logs
		 WHERE timestamp >= ? AND timestamp < ? AND action_type IN (?, ?)`,
		dayStart.UTC(), dayEnd.UTC(), model.ActionOpen, model.ActionClose).Scan(&s.TotalCheckoutsToday)
	if err != nil {
		return model.DashboardStats{}, err
	}

	err = r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(items_missing), 0) FROM access_logs WHERE timestamp >= ?`,
		missingSince.UTC()).Scan(&s.MissingItems)
	if err != nil {
		return model.DashboardStats{}, err
	}

	err = r.DB.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT l.technician_id)
		 FROM access_logs l
		 JOIN technicians t ON t.id = l.technician_id
		 WHERE l.timestamp >= ? AND t.status = ?`,
		activeSince.UTC(), model.TechnicianActive).Scan(&s.ActiveTechnicians)
	if err != nil {
		return model.DashboardStats{}, err
	}
	return s, nil
}

func scanAccessLog(s rowScanner) (model.AccessLog, error) {
	var (
		rec              model.AccessLog
		before, after    sql.NullInt64
		list, notes      sql.NullString
		condImage, ipStr sql.NullString
	)
	err := s.Scan(&rec.ID, &rec.ToolboxID, &rec.TechnicianID, &rec.ActionType, &rec.Timestamp,
		&before, &after, &rec.ItemsMissing, &list, &notes, &condImage, &ipStr)
	if err != nil {
		return model.AccessLog{}, err
	}
	rec.ItemsBefore = intPtr(before)
	rec.ItemsAfter = intPtr(after)
	rec.MissingItemsList = strPtr(list)
	rec.Notes = strPtr(notes)
	rec.ConditionImageURL = strPtr(condImage)
	rec.IPAddress = strPtr(ipStr)
	return rec, nil
}
