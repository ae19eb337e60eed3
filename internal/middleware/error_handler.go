package middleware

import (
	"net/http"

	"skyVoyage/pkg/logger"

	jsonres "skyVoyage/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the central echo error handler: anything a handler did not
// translate itself becomes the standard error envelope.
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
		logger.Error("unhandled request error", "path", c.Path(), "error", err)
	}

	_ = c.JSON(code, jsonres.Error(http.StatusText(code), message, nil))
}
