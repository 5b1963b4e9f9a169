// Package queue carries ticket.issued events over RabbitMQ: the payload
// definition and the background consumer that appends each booking to a log
// file.
package queue

import (
    "time"

    "github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// TicketIssuedEvent is published once per paid booking.  It carries enough
// information for downstream consumers to log, notify or aggregate without
// reaching back into the flow that produced it.
type TicketIssuedEvent struct {
    TransactionID string              `json:"transaction_id"`
    FlowID        string              `json:"flow_id"`
    SessionID     string              `json:"session_id"`
    UserEmail     string              `json:"user_email"`
    MovieID       string              `json:"movie_id"`
    MovieTitle    string              `json:"movie_title"`
    ShowTime      string              `json:"show_time"`
    Theater       string              `json:"theater"`
    Seats         []string            `json:"seats"`
    TotalPrice    int                 `json:"total_price"`
    Amount        int                 `json:"amount"`
    Method        model.PaymentMethod `json:"method"`
    IssuedAt      string              `json:"issued_at"`
}

// NewTicketIssuedEvent flattens an issued ticket into its wire form.
func NewTicketIssuedEvent(t model.IssuedTicket) TicketIssuedEvent {
    return TicketIssuedEvent{
        TransactionID: t.Receipt.TransactionID,
        FlowID:        t.FlowID,
        SessionID:     t.SessionID,
        UserEmail:     t.UserEmail,
        MovieID:       t.Movie.ID,
        MovieTitle:    t.Movie.Title,
        ShowTime:      t.ShowTime,
        Theater:       t.Theater,
        Seats:         append([]string(nil), t.Seats...),
        TotalPrice:    t.TotalPrice,
        Amount:        t.Receipt.Amount,
        Method:        t.Receipt.Method,
        IssuedAt:      t.IssuedAt.UTC().Format(time.RFC3339),
    }
}
