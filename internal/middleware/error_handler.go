package middleware

import (
	"net/http"

	"damaloy/pkg/logger"
	"damaloy/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler converts errors that escape the handlers into the JSON
// envelope the rest of the API speaks. Handlers map domain errors
// themselves; this catches routing errors, bind panics and anything
// returned unhandled.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", "method", c.Request().Method, "path", c.Request().URL.Path, "error", err)
	}

	if c.Request().Method == http.MethodHead {
		if err := c.NoContent(code); err != nil {
			logger.Error("Failed to write error response", "error", err)
		}
		return
	}

	if err := c.JSON(code, response.Error(message)); err != nil {
		logger.Error("Failed to write error response", "error", err)
	}
}
