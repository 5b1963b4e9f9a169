package booking

import (
    "fmt"
    "regexp"
    "strconv"
    "strings"
    "time"
    "unicode"

    "github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// DefaultServiceFee is the flat convenience fee added to every booking.
const DefaultServiceFee = 25

// PaymentRequest carries the details entered on the payment screen.  Only
// the fields belonging to Method are inspected.
type PaymentRequest struct {
    Method     model.PaymentMethod `json:"method"`
    CardNumber string              `json:"card_number,omitempty"`
    CardName   string              `json:"card_name,omitempty"`
    Expiry     string              `json:"expiry,omitempty"`
    CVV        string              `json:"cvv,omitempty"`
    UPIID      string              `json:"upi_id,omitempty"`
    Bank       string              `json:"bank,omitempty"`
}

var (
    expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2})$`)
    cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
    upiPattern    = regexp.MustCompile(`^[A-Za-z0-9._-]{2,}@[A-Za-z]{2,}$`)
)

// Validate checks the request against the rules of its method.  now is used
// to reject expired cards; a card stays valid through the last day of its
// expiry month.
func (r PaymentRequest) Validate(now time.Time) error {
    switch r.Method {
    case model.PaymentCard:
        return r.validateCard(now)
    case model.PaymentUPI:
        if !upiPattern.MatchString(strings.TrimSpace(r.UPIID)) {
            return invalid("upi_id", "enter a valid UPI ID (e.g. name@bank)")
        }
        return nil
    case model.PaymentNetBanking:
        if strings.TrimSpace(r.Bank) == "" {
            return invalid("bank", "select a bank")
        }
        return nil
    case "":
        return invalid("method", "payment method is required")
    default:
        return invalid("method", fmt.Sprintf("unsupported payment method %q", r.Method))
    }
}

func (r PaymentRequest) validateCard(now time.Time) error {
    digits := strings.NewReplacer(" ", "", "-", "").Replace(r.CardNumber)
    if len(digits) < 13 || len(digits) > 19 || !allDigits(digits) {
        return invalid("card_number", "card number must have 13 to 19 digits")
    }

    name := strings.TrimSpace(r.CardName)
    letters := 0
    for _, ch := range name {
        switch {
        case unicode.IsLetter(ch):
            letters++
        case ch == ' ' || ch == '.' || ch == '\'' || ch == '-':
        default:
            return invalid("card_name", "cardholder name may only contain letters")
        }
    }
    if letters < 2 {
        return invalid("card_name", "cardholder name is required")
    }

    match := expiryPattern.FindStringSubmatch(strings.TrimSpace(r.Expiry))
    if match == nil {
        return invalid("expiry", "expiry must be in MM/YY format")
    }
    month, _ := strconv.Atoi(match[1])
    year, _ := strconv.Atoi(match[2])
    // first instant after the expiry month, in the caller's location
    end := time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, now.Location())
    if !now.Before(end) {
        return invalid("expiry", "card has expired")
    }

    if !cvvPattern.MatchString(strings.TrimSpace(r.CVV)) {
        return invalid("cvv", "CVV must be 3 or 4 digits")
    }
    return nil
}

func allDigits(s string) bool {
    for _, ch := range s {
        if ch < '0' || ch > '9' {
            return false
        }
    }
    return true
}

// newReceipt builds the successful receipt of a simulated payment.
func newReceipt(method model.PaymentMethod, total, fee int, at time.Time) model.Receipt {
    return model.Receipt{
        TransactionID: fmt.Sprintf("TXN%d", at.UnixMilli()),
        Amount:        total + fee,
        Method:        method,
        Timestamp:     at,
        Status:        model.PaymentSucceeded,
    }
}
