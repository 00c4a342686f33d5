package middleware

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/monitool/monitool/internal/model"
	"github.com/monitool/monitool/internal/repository"
)

// RequestLog records every API request as an api_request_logs row for
// monitoring and debugging.  The insert happens on a background goroutine
// with its own timeout so logging can never slow down or fail a request.
// Probe and static-file paths are skipped.
func RequestLog(repo *repository.RequestLogRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path
			if publicPaths[path] || strings.HasPrefix(path, "/uploads/") {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			elapsed := time.Since(start)

			rec := &model.APIRequestLog{
				Method:         req.Method,
				Endpoint:       path,
				StatusCode:     c.Response().Status,
				ResponseTimeMS: int(elapsed.Milliseconds()),
			}
			if ip := c.RealIP(); ip != "" {
				rec.IPAddress = &ip
			}
			if ua := req.UserAgent(); ua != "" {
				rec.UserAgent = &ua
			}
			if err != nil {
				msg := err.Error()
				rec.ErrorMessage = &msg
			}

			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				if ierr := repo.Insert(ctx, rec); ierr != nil {
					log.Printf("request-log: insert failed: %v", ierr)
				}
			}()
			return err
		}
	}
}
