package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// publicPaths are reachable without an API key: the liveness probes and the
// served upload files (condition photos embedded in the dashboard).
var publicPaths = map[string]bool{
	"/up":      true,
	"/healthz": true,
}

// APIKey returns a middleware that rejects any request whose X-API-Key
// header does not match the configured key.  Liveness probes, uploaded
// files and CORS preflights are exempt.  The comparison is constant time.
func APIKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path
			if publicPaths[path] || strings.HasPrefix(path, "/uploads/") || req.Method == http.MethodOptions {
				return next(c)
			}
			got := req.Header.Get("X-API-Key")
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing API key"})
			}
			return next(c)
		}
	}
}
