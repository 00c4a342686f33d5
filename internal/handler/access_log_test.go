package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func intp(v int) *int { return &v }

func TestDeriveMissing(t *testing.T) {
	cases := []struct {
		name   string
		before *int
		after  *int
		want   int
	}{
		{"three missing", intp(10), intp(7), 3},
		{"all returned", intp(5), intp(5), 0},
		{"more after than before clamps to zero", intp(5), intp(8), 0},
		{"no before", nil, intp(4), 0},
		{"no after", intp(4), nil, 0},
		{"neither", nil, nil, 0},
	}
	for _, tc := range cases {
		if got := deriveMissing(tc.before, tc.after); got != tc.want {
			t.Fatalf("%s: deriveMissing = %d, want %d", tc.name, got, tc.want)
		}
	}
}

// Invalid payloads must be rejected before any repository is touched, so
// the handler can run with nil dependencies here.
func TestAccessLogCreateValidation(t *testing.T) {
	h := &AccessLogHandler{}

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing ids", `{"action_type":"open"}`, http.StatusBadRequest},
		{"bad action", `{"toolbox_id":"a","technician_id":"b","action_type":"poke"}`, http.StatusBadRequest},
		{"negative before", `{"toolbox_id":"a","technician_id":"b","action_type":"close","items_before":-1}`, http.StatusBadRequest},
		{"negative after", `{"toolbox_id":"a","technician_id":"b","action_type":"close","items_after":-2}`, http.StatusBadRequest},
		{"not json", `{{{`, http.StatusBadRequest},
	}

	e := echo.New()
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/access-logs", strings.NewReader(tc.body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := h.Create(c); err != nil {
			t.Fatalf("%s: handler returned error: %v", tc.name, err)
		}
		if rec.Code != tc.want {
			t.Fatalf("%s: status = %d, want %d", tc.name, rec.Code, tc.want)
		}
	}
}

func TestPagination(t *testing.T) {
	e := echo.New()
	cases := []struct {
		query     string
		wantSkip  int
		wantLimit int
	}{
		{"", 0, 100},
		{"skip=20&limit=50", 20, 50},
		{"skip=-5", 0, 100},
		{"limit=0", 0, 100},
		{"limit=9999", 0, 500},
		{"limit=abc", 0, 100},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		skip, limit := pagination(c)
		if skip != tc.wantSkip || limit != tc.wantLimit {
			t.Fatalf("pagination(%q) = (%d, %d), want (%d, %d)", tc.query, skip, limit, tc.wantSkip, tc.wantLimit)
		}
	}
}
