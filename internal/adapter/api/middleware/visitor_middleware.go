package middleware

import (
	"net/http"

	"civicserve/internal/infrastructure/firebase"

	"github.com/labstack/echo/v4"
)

// VisitorMiddleware resolves the anonymous chat identity. Signed
// visitor tokens win over the plain header, and an authenticated uid
// wins over both so a signed-in user keeps one thread everywhere.
type VisitorMiddleware struct {
	issuer *firebase.VisitorTokenIssuer
}

func NewVisitorMiddleware(issuer *firebase.VisitorTokenIssuer) *VisitorMiddleware {
	return &VisitorMiddleware{
		issuer: issuer,
	}
}

func (m *VisitorMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if uid, ok := c.Get("uid").(string); ok && uid != "" {
			c.Set("visitor_id", uid)
			return next(c)
		}

		if token := c.Request().Header.Get("X-Visitor-Token"); token != "" {
			visitorID, err := m.issuer.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid visitor token")
			}
			c.Set("visitor_id", visitorID)
			return next(c)
		}

		if visitorID := c.Request().Header.Get("X-Visitor-Id"); visitorID != "" {
			c.Set("visitor_id", visitorID)
			return next(c)
		}

		return echo.NewHTTPError(http.StatusUnauthorized, "Visitor identity is required")
	}
}
