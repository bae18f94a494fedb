package middleware

// identity.go defines the best-effort authentication used on booking
// creation.  A booking from a logged-in guest is attached to their account;
// a booking with no token, an expired token or a token signed with the
// wrong key is simply anonymous.  Decode failure and absence are treated
// identically and never fail the request.

import (
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/wildriver/resort-booking/internal/utils"
)

// OptionalAuth returns an Echo middleware that decodes a Bearer token when
// one is present and valid, storing the identity for handlers, and passes
// the request through untouched otherwise.
func OptionalAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if strings.HasPrefix(auth, "Bearer ") {
                raw := strings.TrimPrefix(auth, "Bearer ")
                if id, err := utils.ParseAccessToken(secret, raw); err == nil {
                    c.Set(identityKey, id)
                }
            }
            return next(c)
        }
    }
}
