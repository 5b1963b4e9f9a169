package model

import "time"

// PaymentMethod names how a booking was paid.
type PaymentMethod string

const (
    PaymentCard       PaymentMethod = "card"
    PaymentUPI        PaymentMethod = "upi"
    PaymentNetBanking PaymentMethod = "netbanking"
)

// PaymentSucceeded is the only status a simulated payment ever produces.
const PaymentSucceeded = "success"

// Receipt records the outcome of a completed payment.  At most one
// receipt is ever attached to a booking session.
//
// Fields:
//  TransactionID – "TXN" followed by the payment time in unix milliseconds.
//  Amount        – seats total plus the service fee, in rupees.
//  Method        – payment method used.
//  Timestamp     – completion time.
//  Status        – always "success".
type Receipt struct {
    TransactionID string        `json:"transaction_id"`
    Amount        int           `json:"amount"`
    Method        PaymentMethod `json:"method"`
    Timestamp     time.Time     `json:"timestamp"`
    Status        string        `json:"status"`
}

// IssuedTicket is handed to ticket-issued listeners once a payment
// completes.  It carries enough context for statistics and event
// publishing without holding a reference to the live session.
type IssuedTicket struct {
    FlowID     string    `json:"flow_id"`
    SessionID  string    `json:"session_id"`
    UserEmail  string    `json:"user_email"`
    Movie      Movie     `json:"movie"`
    ShowTime   string    `json:"show_time"`
    Theater    string    `json:"theater"`
    Seats      []string  `json:"seats"`
    TotalPrice int       `json:"total_price"`
    Receipt    Receipt   `json:"receipt"`
    IssuedAt   time.Time `json:"issued_at"`
}
