package handler

import (
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/cinema-ticket-booking/internal/booking"
    "github.com/iliyamo/cinema-ticket-booking/internal/repository"
)

type selectMovieReq struct {
    MovieID  string `json:"movie_id"`
    ShowTime string `json:"show_time"`
    Theater  string `json:"theater"`
}

type reviewReq struct {
    Rating  int    `json:"rating"`
    Comment string `json:"comment"`
}

// ListMovies handles GET /v1/flow/movies: the catalog narrowed by the
// flow's active filters.
func (h *FlowHandler) ListMovies(c echo.Context) error {
    f, err := h.flow(c)
    if err != nil {
        return respondError(c, err)
    }
    items := f.Movies()
    return c.JSON(http.StatusOK, echo.Map{"data": items, "total": len(items), "filters": f.Filters()})
}

// SetFilters handles PUT /v1/flow/filters.
func (h *FlowHandler) SetFilters(c echo.Context) error {
    var q repository.CatalogQuery
    if err := c.Bind(&q); err != nil {
        return badRequest(c, "invalid body")
    }
    return h.withFlow(c, http.StatusOK, func(f *booking.Controller) error {
        f.SetFilters(q)
        return nil
    })
}

// SelectMovie handles POST /v1/flow/select.
func (h *FlowHandler) SelectMovie(c echo.Context) error {
    var req selectMovieReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    return h.withFlow(c, http.StatusOK, func(f *booking.Controller) error {
        return f.SelectMovie(req.MovieID, req.ShowTime, req.Theater)
    })
}

// ToggleSeat handles POST /v1/flow/seats/:seat/toggle.
func (h *FlowHandler) ToggleSeat(c echo.Context) error {
    return h.withFlow(c, http.StatusOK, func(f *booking.Controller) error {
        return f.ToggleSeat(c.Param("seat"))
    })
}

// ProceedToPayment handles POST /v1/flow/proceed.
func (h *FlowHandler) ProceedToPayment(c echo.Context) error {
    return h.withFlow(c, http.StatusOK, func(f *booking.Controller) error {
        return f.ProceedToPayment()
    })
}

// Pay handles POST /v1/flow/pay.  The payment completes after the
// configured delay; clients poll GET /v1/flow until the state becomes
// ticket_issued.
func (h *FlowHandler) Pay(c echo.Context) error {
    var req booking.PaymentRequest
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    return h.withFlow(c, http.StatusAccepted, func(f *booking.Controller) error {
        return f.Pay(req)
    })
}

// Back handles POST /v1/flow/back.
func (h *FlowHandler) Back(c echo.Context) error {
    return h.withFlow(c, http.StatusOK, func(f *booking.Controller) error {
        return f.Back()
    })
}

// Cancel handles POST /v1/flow/cancel.
func (h *FlowHandler) Cancel(c echo.Context) error {
    return h.withFlow(c, http.StatusOK, func(f *booking.Controller) error {
        f.Cancel()
        return nil
    })
}

// ViewMore handles POST /v1/flow/view-more.
func (h *FlowHandler) ViewMore(c echo.Context) error {
    return h.withFlow(c, http.StatusOK, func(f *booking.Controller) error {
        return f.ViewMore()
    })
}

func (h *FlowHandler) ticket(c echo.Context) (booking.Ticket, error) {
    f, err := h.flow(c)
    if err != nil {
        return booking.Ticket{}, err
    }
    return f.Ticket()
}

func attachment(c echo.Context, name string) {
    c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
}

// DownloadTicket handles GET /v1/flow/ticket: the plain-text ticket as a
// file download.
func (h *FlowHandler) DownloadTicket(c echo.Context) error {
    t, err := h.ticket(c)
    if err != nil {
        return respondError(c, err)
    }
    attachment(c, t.Filename())
    return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(t.Text()))
}

// DownloadTicketPDF handles GET /v1/flow/ticket.pdf.
func (h *FlowHandler) DownloadTicketPDF(c echo.Context) error {
    t, err := h.ticket(c)
    if err != nil {
        return respondError(c, err)
    }
    pdf, err := t.PDF()
    if err != nil {
        h.logger().Error("render ticket pdf", zap.String("transaction_id", t.TransactionID), zap.Error(err))
        return respondError(c, err)
    }
    attachment(c, "ticket-"+t.TransactionID+".pdf")
    return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// TicketQRCode handles GET /v1/flow/ticket/qr.png.
func (h *FlowHandler) TicketQRCode(c echo.Context) error {
    t, err := h.ticket(c)
    if err != nil {
        return respondError(c, err)
    }
    png, err := t.QRCode(256)
    if err != nil {
        return respondError(c, err)
    }
    return c.Blob(http.StatusOK, "image/png", png)
}

// AddReview handles POST /v1/flow/movies/:id/reviews.  Only logged-in
// flows may review; the author is the flow's user.
func (h *FlowHandler) AddReview(c echo.Context) error {
    var req reviewReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    f, err := h.flow(c)
    if err != nil {
        return respondError(c, err)
    }
    user, err := f.User()
    if err != nil {
        return respondError(c, err)
    }
    rev, err := h.Reviews.Add(c.Param("id"), user, req.Rating, req.Comment, h.Clock.Now())
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, rev)
}
