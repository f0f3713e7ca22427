package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	headerUserID = "X-User-ID"
	headerRole   = "X-User-Role"

	ContextUserID = "user_id"
	ContextRole   = "role"

	RoleAdmin = "ADMIN"
)

// Identity extracts the authenticated caller injected by the auth layer
// upstream. The core trusts this identity and performs no credential checks.
func Identity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Request().Header.Get(headerUserID)
		if userID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing caller identity")
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextRole, c.Request().Header.Get(headerRole))
		return next(c)
	}
}

func UserID(c echo.Context) string {
	v, _ := c.Get(ContextUserID).(string)
	return v
}

func IsAdmin(c echo.Context) bool {
	v, _ := c.Get(ContextRole).(string)
	return v == RoleAdmin
}
