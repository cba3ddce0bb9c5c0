package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/vidshare/platform/internal/api/middleware"
	"github.com/vidshare/platform/internal/core/domain"
)

// actor returns the identity of the request, nil when anonymous.
func actor(c echo.Context) *domain.Identity {
	return middleware.Identity(c)
}

// bind decodes the request body into req and validates it. Decoding failures
// are reported as validation errors.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Invalid("invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}
