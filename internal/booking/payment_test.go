package booking

import (
    "errors"
    "testing"
    "time"

    "github.com/iliyamo/cinema-ticket-booking/internal/model"
)

func TestPaymentRequestValidate(t *testing.T) {
    now := time.Date(2026, time.March, 31, 23, 0, 0, 0, time.UTC)
    card := func(mut func(*PaymentRequest)) PaymentRequest {
        r := PaymentRequest{
            Method:     model.PaymentCard,
            CardNumber: "4111-1111-1111-1111",
            CardName:   "J. O'Neil-Smith",
            Expiry:     "03/26",
            CVV:        "1234",
        }
        if mut != nil {
            mut(&r)
        }
        return r
    }

    cases := []struct {
        name  string
        req   PaymentRequest
        field string
    }{
        {"valid card expiring this month", card(nil), ""},
        {"short card number", card(func(r *PaymentRequest) { r.CardNumber = "4111 1111 111" }), "card_number"},
        {"long card number", card(func(r *PaymentRequest) { r.CardNumber = "41111111111111111111" }), "card_number"},
        {"letters in card number", card(func(r *PaymentRequest) { r.CardNumber = "4111 1111 1111 11x1" }), "card_number"},
        {"single letter name", card(func(r *PaymentRequest) { r.CardName = " J " }), "card_name"},
        {"digits in name", card(func(r *PaymentRequest) { r.CardName = "J0hn" }), "card_name"},
        {"expired last month", card(func(r *PaymentRequest) { r.Expiry = "02/26" }), "expiry"},
        {"bad expiry format", card(func(r *PaymentRequest) { r.Expiry = "3/26" }), "expiry"},
        {"month thirteen", card(func(r *PaymentRequest) { r.Expiry = "13/30" }), "expiry"},
        {"short cvv", card(func(r *PaymentRequest) { r.CVV = "12" }), "cvv"},
        {"valid upi", PaymentRequest{Method: model.PaymentUPI, UPIID: "asha.rao@okaxis"}, ""},
        {"upi without handle", PaymentRequest{Method: model.PaymentUPI, UPIID: "asharao"}, "upi_id"},
        {"valid netbanking", PaymentRequest{Method: model.PaymentNetBanking, Bank: "HDFC Bank"}, ""},
        {"netbanking without bank", PaymentRequest{Method: model.PaymentNetBanking, Bank: "  "}, "bank"},
        {"missing method", PaymentRequest{}, "method"},
        {"unknown method", PaymentRequest{Method: "cash"}, "method"},
    }

    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            err := tc.req.Validate(now)
            if tc.field == "" {
                if err != nil {
                    t.Fatalf("expected valid request, got %v", err)
                }
                return
            }
            var verr *ValidationError
            if !errors.As(err, &verr) {
                t.Fatalf("expected ValidationError, got %v", err)
            }
            if verr.Field != tc.field {
                t.Fatalf("expected field %s, got %s", tc.field, verr.Field)
            }
        })
    }
}

func TestCardExpiresAfterItsMonth(t *testing.T) {
    req := PaymentRequest{Method: model.PaymentCard, CardNumber: "4111111111111111", CardName: "Asha", Expiry: "03/26", CVV: "123"}
    if err := req.Validate(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)); err == nil {
        t.Fatal("expected card to be expired on the first day of the next month")
    }
}

func TestNewReceipt(t *testing.T) {
    at := time.UnixMilli(1767225600123)
    r := newReceipt(model.PaymentUPI, 1050, DefaultServiceFee, at)
    if r.TransactionID != "TXN1767225600123" {
        t.Fatalf("unexpected transaction id %s", r.TransactionID)
    }
    if r.Amount != 1075 || r.Status != "success" || r.Method != model.PaymentUPI || !r.Timestamp.Equal(at) {
        t.Fatalf("unexpected receipt %+v", r)
    }
}
