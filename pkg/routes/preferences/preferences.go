package preferences

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/internal/services/preference"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
	"github.com/Ramsey-B/clover/pkg/utils"
)

// Register registers preference routes
func Register(g *echo.Group) {
	g.GET("/:userId", GetPreferences)
	g.PUT("/:userId", PutPreferences)
}

// GetPreferences returns the normalized preference of one user
func GetPreferences(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "preferences.GetPreferences")
	defer span.End()

	userID := c.Param("userId")
	role := roleParam(c)

	ctx, service, err := ectoinject.GetContext[preference.PreferenceService](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	result, err := service.Get(ctx, userID, role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// PutPreferences stores a preference record for one user
func PutPreferences(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "preferences.PutPreferences")
	defer span.End()

	userID := c.Param("userId")
	role := roleParam(c)

	req, err := utils.BindRequest[models.UpsertPreferencesRequest](c)
	if err != nil {
		return err
	}

	ctx, service, err := ectoinject.GetContext[preference.PreferenceService](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	result, err := service.Upsert(ctx, userID, role, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func roleParam(c echo.Context) string {
	role := c.QueryParam("role")
	if role == "" {
		return string(models.UserTypeTenant)
	}
	return role
}
