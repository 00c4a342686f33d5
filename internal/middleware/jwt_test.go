package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/monitool/monitool/internal/utils"
)

const testSecret = "test-secret"

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "user-1", "admin", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUser, gotRole any
	handler := func(c echo.Context) error {
		gotUser = c.Get("user_id")
		gotRole = c.Get("role")
		return c.NoContent(http.StatusOK)
	}
	if err := JWTAuth(testSecret)(handler)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotUser != "user-1" || gotRole != "admin" {
		t.Fatalf("context user_id=%v role=%v", gotUser, gotRole)
	}
}

func TestJWTAuthRejects(t *testing.T) {
	other, _ := utils.NewAccessToken("other-secret", "user-1", "admin", 5)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + other.Token},
	}

	e := echo.New()
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		called := false
		handler := func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		}
		if err := JWTAuth(testSecret)(handler)(c); err != nil {
			t.Fatalf("%s: middleware error: %v", tc.name, err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d, want 401", tc.name, rec.Code)
		}
		if called {
			t.Fatalf("%s: handler should not run", tc.name)
		}
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	run := func(role any, allowed ...string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		if err := RequireRole(allowed...)(okHandler)(c); err != nil {
			t.Fatalf("middleware error: %v", err)
		}
		return rec.Code
	}

	if got := run("admin", "admin", "viewer"); got != http.StatusOK {
		t.Fatalf("admin allowed: status = %d", got)
	}
	if got := run("viewer", "admin"); got != http.StatusForbidden {
		t.Fatalf("viewer on admin-only: status = %d", got)
	}
	if got := run(nil, "admin"); got != http.StatusForbidden {
		t.Fatalf("no role: status = %d", got)
	}
}
