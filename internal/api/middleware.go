package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

var errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid sync token")

// authMiddleware accepts "Authorization: Bearer <token>" issued by /token in the
// bot and stores the user id in the context.
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return errUnauthorized
		}

		userID, err := s.tokenSvc.Parse(strings.TrimSpace(token))
		if err != nil {
			return errUnauthorized
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

func userID(c echo.Context) int64 {
	id, _ := c.Get(userIDKey).(int64)
	return id
}
