package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/johnquangdev/meeting-autopilot/errors"
)

// respondAppError writes an error as JSON, honoring the HTTP status an
// AppError carries. Anything else becomes an internal error.
func respondAppError(c echo.Context, err error) error {
	var ae apperrors.AppError
	if !stdErrors.As(err, &ae) {
		ae = apperrors.ErrInternal(err)
	}
	status := ae.HTTPCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	body := map[string]interface{}{
		"error":   ae.Code.String(),
		"message": ae.Message,
	}
	if len(ae.Details) > 0 {
		body["details"] = ae.Details
	}
	return c.JSON(status, body)
}
