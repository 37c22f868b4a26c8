package middleware

import (
	"github.com/labstack/echo/v4"

	clovercontext "github.com/Ramsey-B/clover/pkg/context"
)

// TestAuth extracts user_id and user_role from headers when auth is
// disabled. This allows testing the API without a real JWT auth system.
// Headers:
//   - X-User-ID: The user ID
//   - X-User-Role: The user role (tenant or landlord)
//
// WARNING: Only use this when AUTH_ENABLED=false. Do not enable in production.
func TestAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			userID := c.Request().Header.Get(HeaderUserID)
			if userID != "" {
				ctx = clovercontext.SetUserID(ctx, userID)
			}

			userRole := c.Request().Header.Get(HeaderUserRole)
			if userRole != "" {
				ctx = clovercontext.SetUserRole(ctx, userRole)
			}

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
