package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/monitool/monitool/internal/model"
)

// RequestLogRepo writes api_request_logs rows.  Inserts are fire-and-forget
// from the middleware's point of view; failures are logged, not surfaced.
type RequestLogRepo struct{ DB *sql.DB }

func NewRequestLogRepo(db *sql.DB) *RequestLogRepo { return &RequestLogRepo{DB: db} }

// Insert writes one request log row.
func (r *RequestLogRepo) Insert(ctx context.Context, rec *model.APIRequestLog) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO api_request_logs (id, method, endpoint, status_code, response_time_ms, ip_address, user_agent, error_message)
		 VALUES (?,?,?,?,?,?,?,?)`,
		uuid.NewString(), rec.Method, rec.Endpoint, rec.StatusCode, rec.ResponseTimeMS,
		nullify(rec.IPAddress), nullify(rec.UserAgent), nullify(rec.ErrorMessage))
	return err
}

// Recent returns the newest rows, primarily for debugging from the
// dashboard.
func (r *RequestLogRepo) Recent(ctx context.Context, limit int) ([]model.APIRequestLog, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id,timestamp,method,endpoint,status_code,response_time_ms,ip_address,user_agent,error_message
		 FROM api_request_logs ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.APIRequestLog{}
	for rows.Next() {
		var (
			rec           model.APIRequestLog
			ip, ua, emsg  sql.NullString
			status, rtime sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.Method, &rec.Endpoint,
			&status, &rtime, &ip, &ua, &emsg); err != nil {
			return nil, err
		}
		if status.Valid {
			rec.StatusCode = int(status.Int64)
		}
		if rtime.Valid {
			rec.ResponseTimeMS = int(rtime.Int64)
		}
		rec.IPAddress = strPtr(ip)
		rec.UserAgent = strPtr(ua)
		rec.ErrorMessage = strPtr(emsg)
		out = append(out, rec)
	}
	return out, rows.Err()
}
