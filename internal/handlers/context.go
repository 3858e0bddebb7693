package handlers

import (
	"strconv"

	"github.com/lumagram/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the authenticated user's ID from the JWT
// claims set by the auth middleware, or 0 when unauthenticated
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// parseLimit reads the "limit" query parameter, clamped to [1, max], with
// the given default when absent or invalid
func parseLimit(c echo.Context, def, max int) int {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > max {
		return def
	}
	return limit
}

// parseCursor reads the "cursor" query parameter: the ID of the last row of
// the previous page, or 0 for the first page
func parseCursor(c echo.Context) uint {
	cursor, _ := strconv.ParseUint(c.QueryParam("cursor"), 10, 32)
	return uint(cursor)
}
