package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"gatherly/internal/auth"
	"gatherly/internal/model"
)

// currentClaims extracts the authenticated identity placed on the context by
// the JWT middleware.
func currentClaims(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// parseDate parses a YYYY-MM-DD date in the server's location so calendar
// comparisons against "today" line up.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(model.DateLayout, s, time.Local)
}

// parseTime canonicalizes a clock time to zero-padded HH:MM. time.Parse
// accepts "9:05", but everything downstream compares these strings
// lexicographically, so only the padded form may enter the core.
func parseTime(s string) (string, error) {
	t, err := time.Parse(model.TimeLayout, s)
	if err != nil {
		return "", err
	}
	return t.Format(model.TimeLayout), nil
}
