package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// statusFor resolves the status code a handler error will be answered with.
// The only routes are exact paths, so a wrong method is reported as 404
// rather than echo's default 405.
func statusFor(err error) int {
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code == http.StatusMethodNotAllowed {
		code = http.StatusNotFound
	}
	return code
}

// ErrorHandler returns an echo.HTTPErrorHandler that answers every error
// with a short text/plain body and logs server-side failures.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "error_handler")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := statusFor(err)
		if code >= http.StatusInternalServerError {
			logger.Error("request failed",
				"err", err,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
			)
		}

		c.Response().Header().Del(echo.HeaderAllow)

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.String(code, http.StatusText(code))
		}
		if werr != nil {
			logger.Error("writing error response", "err", werr)
		}
	}
}
