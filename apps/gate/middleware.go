package gate

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

// paths never gated: JSON endpoints and static assets
var skippedPrefixes = []string{"/api", "/_next/static", "/_next/image", "/favicon.ico", "/static"}

// Skip reports whether the gate ignores requests to p.
func Skip(p string) bool {
	for _, prefix := range skippedPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

// Middleware runs g on every navigation, redirecting with 302 Found when denied.
// sessionFrom returns the session hydrated by an earlier middleware.
func Middleware(g *Gate, sessionFrom func(echo.Context) core.Session) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := c.Request().URL.Path
			if Skip(p) {
				return next(c)
			}
			if d := g.Authorize(p, sessionFrom(c)); !d.Allowed {
				return c.Redirect(http.StatusFound, d.Target)
			}
			return next(c)
		}
	}
}
