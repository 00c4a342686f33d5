package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func TestAPIKey(t *testing.T) {
	mw := APIKey("correct-key")
	e := echo.New()

	cases := []struct {
		name   string
		method string
		path   string
		key    string
		want   int
	}{
		{"valid key", http.MethodGet, "/api/v1/toolboxes", "correct-key", http.StatusOK},
		{"missing key", http.MethodGet, "/api/v1/toolboxes", "", http.StatusUnauthorized},
		{"wrong key", http.MethodGet, "/api/v1/toolboxes", "nope", http.StatusUnauthorized},
		{"liveness exempt", http.MethodGet, "/up", "", http.StatusOK},
		{"healthz exempt", http.MethodGet, "/healthz", "", http.StatusOK},
		{"uploads exempt", http.MethodGet, "/uploads/toolboxes/a.jpg", "", http.StatusOK},
		{"preflight exempt", http.MethodOptions, "/api/v1/toolboxes", "", http.StatusOK},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		if tc.key != "" {
			req.Header.Set("X-API-Key", tc.key)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := mw(okHandler)(c); err != nil {
			t.Fatalf("%s: middleware error: %v", tc.name, err)
		}
		if rec.Code != tc.want {
			t.Fatalf("%s: status = %d, want %d", tc.name, rec.Code, tc.want)
		}
	}
}
