package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/cinema-ticket-booking/internal/booking"
    "github.com/iliyamo/cinema-ticket-booking/internal/clock"
    "github.com/iliyamo/cinema-ticket-booking/internal/middleware"
    "github.com/iliyamo/cinema-ticket-booking/internal/repository"
    "github.com/iliyamo/cinema-ticket-booking/internal/utils"
)

// FlowHandler serves the flow-scoped API.  Every route except CreateFlow
// runs behind middleware.FlowAuth, which puts the flow id in the context.
type FlowHandler struct {
    Flows    *booking.Registry
    Reviews  *repository.ReviewRepo
    Secret   string
    TokenTTL time.Duration
    Clock    clock.Clock
    Log      *zap.Logger
}

// ----- DTOs -----

type loginReq struct {
    Email string `json:"email"`
}

type createFlowResp struct {
    Token     string       `json:"token"`
    ExpiresAt time.Time    `json:"expires_at"`
    Flow      booking.View `json:"flow"`
}

func (h *FlowHandler) logger() *zap.Logger {
    if h.Log == nil {
        return zap.NewNop()
    }
    return h.Log
}

// flow resolves the controller addressed by the request's flow token.
func (h *FlowHandler) flow(c echo.Context) (*booking.Controller, error) {
    return h.Flows.Get(middleware.FlowID(c))
}

// withFlow runs fn against the request's flow and answers with the flow's
// view and status on success.
func (h *FlowHandler) withFlow(c echo.Context, status int, fn func(*booking.Controller) error) error {
    f, err := h.flow(c)
    if err != nil {
        return respondError(c, err)
    }
    if err := fn(f); err != nil {
        return respondError(c, err)
    }
    return c.JSON(status, f.View())
}

// CreateFlow handles POST /v1/flows.  It starts a new flow in the browsing
// state and returns the bearer token that addresses it.
func (h *FlowHandler) CreateFlow(c echo.Context) error {
    f := h.Flows.Create()
    tok, err := utils.NewFlowToken(h.Secret, f.ID(), h.TokenTTL, h.Clock.Now())
    if err != nil {
        h.Flows.Remove(f.ID())
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, createFlowResp{Token: tok.Token, ExpiresAt: tok.Exp, Flow: f.View()})
}

// GetFlow handles GET /v1/flow.
func (h *FlowHandler) GetFlow(c echo.Context) error {
    return h.withFlow(c, http.StatusOK, func(*booking.Controller) error { return nil })
}

// CloseFlow handles DELETE /v1/flow.  Pending login or payment work is
// cancelled and the token stops resolving.
func (h *FlowHandler) CloseFlow(c echo.Context) error {
    id := middleware.FlowID(c)
    if _, err := h.Flows.Get(id); err != nil {
        return respondError(c, err)
    }
    h.Flows.Remove(id)
    return c.NoContent(http.StatusNoContent)
}

// Login handles POST /v1/flow/login.  The sign-in completes after the
// configured delay, so the response is 202 with login_pending set.
func (h *FlowHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    return h.withFlow(c, http.StatusAccepted, func(f *booking.Controller) error {
        return f.Login(strings.ToLower(strings.TrimSpace(req.Email)))
    })
}

// LoginWithGoogle handles POST /v1/flow/login/google.
func (h *FlowHandler) LoginWithGoogle(c echo.Context) error {
    return h.withFlow(c, http.StatusAccepted, func(f *booking.Controller) error {
        return f.LoginWithGoogle()
    })
}

// Logout handles POST /v1/flow/logout.
func (h *FlowHandler) Logout(c echo.Context) error {
    return h.withFlow(c, http.StatusOK, func(f *booking.Controller) error {
        f.Logout()
        return nil
    })
}
