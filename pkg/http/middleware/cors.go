package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

var corsMethods = strings.Join([]string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodOptions,
}, ", ")

var corsHeaders = strings.Join([]string{
	echo.HeaderOrigin,
	echo.HeaderContentType,
	echo.HeaderAccept,
	echo.HeaderAuthorization,
}, ", ")

// CORS sets permissive CORS headers for the given origins and answers
// preflight requests.
func CORS(allowOrigins []string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get("Origin")

			allowed := ""
			for _, o := range allowOrigins {
				if o == "*" || o == origin {
					allowed = o
					break
				}
			}
			if allowed == "" {
				return next(c)
			}
			if allowed == "*" {
				c.Response().Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				c.Response().Header().Set("Access-Control-Allow-Origin", origin)
			}
			c.Response().Header().Set("Access-Control-Allow-Methods", corsMethods)
			c.Response().Header().Set("Access-Control-Allow-Headers", corsHeaders)

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusNoContent)
			}
			return next(c)
		}
	}
}
