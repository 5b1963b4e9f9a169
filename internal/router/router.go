package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-ticket-booking/internal/handler"
    "github.com/iliyamo/cinema-ticket-booking/internal/middleware"
)

// RegisterRoutes registers the health check used by load balancers.
func RegisterRoutes(e *echo.Echo, p *handler.PublicHandler) {
    e.GET("/healthz", p.Health)
}

// RegisterPublic registers the catalog endpoints under /v1.  They need no
// token.  cache wraps the read-only listings.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
    g := e.Group("/v1")

    // ---- Catalog ----
    g.GET("/movies", p.ListMovies, cache)
    g.GET("/movies/:id", p.GetMovie, cache)
    g.GET("/genres", p.ListGenres, cache)
    g.GET("/theaters", p.ListTheaters, cache)
    g.GET("/price-ranges", p.ListPriceRanges, cache)

    // reviews and stats change with every booking, so they stay uncached
    g.GET("/movies/:id/reviews", p.ListReviews)
    g.GET("/stats", p.GetStats)
}

// RegisterFlow registers the booking flow.  POST /v1/flows hands out a flow
// token; everything under /v1/flow requires it.  limiter runs after the token
// check so keys can include the flow id.
func RegisterFlow(e *echo.Echo, f *handler.FlowHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
    e.POST("/v1/flows", f.CreateFlow, limiter)

    g := e.Group("/v1/flow", middleware.FlowAuth(jwtSecret), limiter)
    g.GET("", f.GetFlow)
    g.DELETE("", f.CloseFlow)

    // ---- Sign-in ----
    g.POST("/login", f.Login)
    g.POST("/login/google", f.LoginWithGoogle)
    g.POST("/logout", f.Logout)

    // ---- Browsing ----
    g.GET("/movies", f.ListMovies)
    g.PUT("/filters", f.SetFilters)
    g.POST("/movies/:id/reviews", f.AddReview)
    g.POST("/select", f.SelectMovie)

    // ---- Seats and payment ----
    g.POST("/seats/:seat/toggle", f.ToggleSeat)
    g.POST("/proceed", f.ProceedToPayment)
    g.POST("/pay", f.Pay)
    g.POST("/back", f.Back)
    g.POST("/cancel", f.Cancel)

    // ---- Ticket ----
    g.GET("/ticket", f.DownloadTicket)
    g.GET("/ticket.pdf", f.DownloadTicketPDF)
    g.GET("/ticket/qr.png", f.TicketQRCode)
    g.POST("/view-more", f.ViewMore)
}
