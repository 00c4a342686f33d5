package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// errNoUser is returned when the JWT middleware did not leave a usable
// user ID in the context.
var errNoUser = errors.New("no authenticated user")

// getUserID extracts the authenticated user's ID placed in the context by
// the JWT middleware.
func getUserID(c echo.Context) (string, error) {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s, nil
	}
	return "", errNoUser
}

// pagination reads skip/limit query parameters with sane bounds.  limit
// defaults to 100 and is capped at 500.
func pagination(c echo.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.QueryParam("skip"))
	if skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}
	return skip, limit
}
