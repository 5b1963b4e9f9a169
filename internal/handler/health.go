package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Health is used by load balancers and monitoring to verify that the
// service is running.  It also reports how many flows are live.
func (h *PublicHandler) Health(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"status": "ok", "flows": h.Flows.Len()})
}
