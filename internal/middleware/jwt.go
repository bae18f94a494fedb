package middleware // middleware contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/wildriver/resort-booking/internal/utils"
)

// identityKey is the context key under which the decoded token identity is
// stored for handlers.
const identityKey = "identity"

// JWTAuth returns an Echo middleware that validates a Bearer token and
// injects the caller's identity into the request context.  The provided
// secret must match the one used when issuing tokens.  This middleware
// wraps protected routes; handlers access the authenticated user via
// Identity(c).  Requests without a valid token are rejected with 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header starts with "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")
            id, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            c.Set(identityKey, id)
            return next(c)
        }
    }
}

// Identity extracts the decoded token identity stored by JWTAuth or
// OptionalAuth.  The second return value is false when the request is
// anonymous.
func Identity(c echo.Context) (utils.Identity, bool) {
    v := c.Get(identityKey)
    if v == nil {
        return utils.Identity{}, false
    }
    id, ok := v.(utils.Identity)
    return id, ok
}
