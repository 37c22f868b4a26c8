// Package middleware provides the HTTP middleware stack of the service.
package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	clovercontext "github.com/Ramsey-B/clover/pkg/context"
)

const (
	// HeaderUserID is the header key for user ID
	HeaderUserID = "X-User-ID"
	// HeaderUserRole is the header key for user role
	HeaderUserRole = "X-User-Role"
)

func Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			req := c.Request()

			// get request id from header
			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := req.Context()
			ctx = clovercontext.SetRequestID(ctx, requestID)
			ctx = clovercontext.SetMethod(ctx, req.Method)
			ctx = clovercontext.SetRoute(ctx, req.URL.Path)
			ctx = clovercontext.SetRemoteIP(ctx, c.RealIP())
			ctx = clovercontext.SetReferer(ctx, req.Referer())
			ctx = clovercontext.SetUserID(ctx, req.Header.Get(HeaderUserID))
			ctx = clovercontext.SetUserRole(ctx, req.Header.Get(HeaderUserRole))

			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}
