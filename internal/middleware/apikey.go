package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const apiKeyHeader = "x-api-key"

type apiKeyError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RequireAPIKey guards a route group with a static shared-secret header.
// A missing key is unauthorized, a mismatching one is forbidden.
func RequireAPIKey(apiKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			provided := c.Request().Header.Get(apiKeyHeader)
			if provided == "" {
				return c.JSON(http.StatusUnauthorized, &apiKeyError{
					Error:   "API Key is missing",
					Message: "API Key is missing",
				})
			}

			if provided != apiKey {
				return c.JSON(http.StatusForbidden, &apiKeyError{
					Error:   "API Key is invalid",
					Message: "API Key is invalid",
				})
			}

			return next(c)
		}
	}
}
