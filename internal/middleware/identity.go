package middleware

// Identity helpers shared by the auth, cache and rate limit middleware.
// JWTAuth and OptionalJWT store the verified subject under "user_id"
// (int64) and the role claim under "role" (string).

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// UserID returns the authenticated user id, if any.
func UserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(ctxUserID).(int64)
	return id, ok && id > 0
}

// Role returns the role claim, or "" when unauthenticated.
func Role(c echo.Context) string {
	r, _ := c.Get(ctxRole).(string)
	return r
}

// viewerKey identifies the requester for cache and rate limit keys.
func viewerKey(c echo.Context) string {
	if id, ok := UserID(c); ok {
		return strconv.FormatInt(id, 10)
	}
	return "anon"
}
