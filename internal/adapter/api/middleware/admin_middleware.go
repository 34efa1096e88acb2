package middleware

import (
	"github.com/labstack/echo/v4"

	"swapdmarket/pkg/errors"
)

// AdminOnly must run after Authenticate.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := IdentityFrom(c)
		if identity == nil {
			return errors.Unauthorized("Authentication required", nil)
		}
		if !identity.IsAdmin {
			return errors.Forbidden("Admin privileges required", nil)
		}
		return next(c)
	}
}
