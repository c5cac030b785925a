package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hackwave-community/platform-api/internal/types"
)

var (
	InternalServerError = echo.NewHTTPError(
		http.StatusInternalServerError,
		types.Fail(types.CodeInternal, "something went wrong"),
	)
	NotFoundError = echo.NewHTTPError(
		http.StatusNotFound,
		types.Fail(types.CodeNotFound, "not found"),
	)
	Unauthorized = echo.NewHTTPError(
		http.StatusUnauthorized,
		types.Fail(types.CodeAuthRequired, "Unauthorized"),
	)
	Forbidden = echo.NewHTTPError(
		http.StatusForbidden,
		types.Fail(types.CodePermission, "no permission"),
	)
)

// OK writes the success envelope.
func OK(c echo.Context, status int, data any) error {
	return c.JSON(status, types.OK(data))
}

// Error builds an echo HTTP error carrying the failure envelope so the
// default error handler serializes it consistently.
func Error(status int, code types.ErrorCode, message string) *echo.HTTPError {
	return echo.NewHTTPError(status, types.Fail(code, message))
}
