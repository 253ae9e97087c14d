package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// errorResponse is the envelope every failed request gets, regardless of
// where the failure originated.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// errorMessages are the fixed human-readable messages per surfaced code.
var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "server error",
	http.StatusServiceUnavailable:  "service not available",
}

// HTTPErrorHandler renders every error as the fixed JSON envelope. It is
// installed as the echo error handler so framework-level failures (bad
// routes, disallowed methods, panics recovered by middleware) get the
// same shape as handler-raised ones.
func HTTPErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}

	message, ok := errorMessages[code]
	if !ok {
		message = errorMessages[http.StatusInternalServerError]
		code = http.StatusInternalServerError
	}

	if c.Response().Committed {
		return
	}
	if err := c.JSON(code, errorResponse{Success: false, Error: code, Message: message}); err != nil {
		c.Logger().Error(err)
	}
}
