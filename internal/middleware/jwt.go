package middleware // reusable HTTP middleware for the booking API

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-ticket-booking/internal/utils"
)

// FlowAuth returns an Echo middleware that validates a Bearer flow token and
// stores the flow id it carries under ContextFlowID.  The secret must match
// the one used by utils.NewFlowToken.  Whether the flow still exists is left
// to the handlers.
func FlowAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing_token", "message": "missing bearer flow token"})
            }
            flowID, err := utils.ParseFlowToken(secret, strings.TrimPrefix(auth, "Bearer "))
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid_token", "message": "invalid flow token"})
            }
            c.Set(ContextFlowID, flowID)
            return next(c)
        }
    }
}
