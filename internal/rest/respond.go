package rest

import (
	"errors"
	"net/http"

	"damaloy/domain"
	"damaloy/pkg/response"

	"github.com/labstack/echo/v4"
)

// statusFor maps the domain error taxonomy onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c echo.Context, err error) error {
	status := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		// Provider failures keep their taxonomy message, everything
		// else stays opaque.
		if errors.Is(err, domain.ErrPaymentInitiation) {
			message = domain.ErrPaymentInitiation.Error()
		} else {
			message = "Internal server error"
		}
	}

	return c.JSON(status, response.Error(message))
}
