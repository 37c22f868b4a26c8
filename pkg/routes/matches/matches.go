package matches

import (
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/pkg/matching"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// Register registers match routes
func Register(g *echo.Group) {
	g.GET("/tenant/:userId", GetTenantMatches)
	g.GET("/landlord/:userId", GetLandlordMatches)
}

// GetTenantMatches returns ranked apartments for one tenant
func GetTenantMatches(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "matches.GetTenantMatches")
	defer span.End()

	userID := c.Param("userId")
	opts := matching.Options{
		Limit:      queryInt(c, "limit"),
		FetchLimit: queryInt(c, "fetchLimit"),
	}

	ctx, service, err := ectoinject.GetContext[*matching.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	result, err := service.TenantMatches(ctx, userID, opts)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// GetLandlordMatches returns ranked tenant candidates for one landlord
func GetLandlordMatches(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "matches.GetLandlordMatches")
	defer span.End()

	userID := c.Param("userId")
	opts := matching.Options{
		Limit:      queryInt(c, "limit"),
		FetchLimit: queryInt(c, "fetchLimit"),
	}

	ctx, service, err := ectoinject.GetContext[*matching.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	result, err := service.LandlordMatches(ctx, userID, opts)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// queryInt parses an optional numeric query param; absent or malformed
// values fall back to zero so the service applies its defaults.
func queryInt(c echo.Context, name string) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
