package middleware

// identity.go holds the context keys written by FlowAuth and the helpers
// other middleware and handlers use to read them back.

import "github.com/labstack/echo/v4"

// ContextFlowID is the echo context key holding the authenticated flow id.
const ContextFlowID = "flow_id"

// FlowID returns the flow id stored by FlowAuth, or "" when the request
// carried no valid flow token.
func FlowID(c echo.Context) string {
    if s, ok := c.Get(ContextFlowID).(string); ok {
        return s
    }
    return ""
}

// flowOrAnon is FlowID with an "anon" placeholder for rate-limit keys.
func flowOrAnon(c echo.Context) string {
    if id := FlowID(c); id != "" {
        return id
    }
    return "anon"
}
