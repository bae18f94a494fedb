package handler // handler defines http handlers

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// parseIDParam reads a positive numeric path parameter.  A zero or
// malformed value returns an error so callers can answer 400.
func parseIDParam(c echo.Context, name string) (uint64, error) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, echo.ErrBadRequest
    }
    return id, nil
}
