package booking

import (
    "bytes"
    "fmt"
    "strings"
    "time"

    "github.com/jung-kurt/gofpdf"
    qrcode "github.com/skip2/go-qrcode"
)

// Ticket is the exportable summary of a paid booking.
type Ticket struct {
    Movie         string    `json:"movie"`
    Date          string    `json:"date"`
    Time          string    `json:"time"`
    Theater       string    `json:"theater"`
    Seats         []string  `json:"seats"`
    Amount        int       `json:"amount"`
    TransactionID string    `json:"transaction_id"`
    IssuedAt      time.Time `json:"issued_at"`
}

func ticketFor(s *Session) Ticket {
    return Ticket{
        Movie:         s.Movie.Title,
        Date:          s.Receipt.Timestamp.Format("02 Jan 2006"),
        Time:          s.ShowTime,
        Theater:       s.Theater,
        Seats:         append([]string(nil), s.Selected...),
        Amount:        s.Receipt.Amount,
        TransactionID: s.Receipt.TransactionID,
        IssuedAt:      s.Receipt.Timestamp,
    }
}

// Filename is the download name of the plain-text ticket.
func (t Ticket) Filename() string {
    return "ticket-" + t.TransactionID + ".txt"
}

// Text renders the plain-text ticket.
func (t Ticket) Text() string {
    var b strings.Builder
    b.WriteString("CINEMA BOOKING TICKET\n")
    b.WriteString("=====================\n")
    fmt.Fprintf(&b, "Movie: %s\n", t.Movie)
    fmt.Fprintf(&b, "Date: %s\n", t.Date)
    fmt.Fprintf(&b, "Time: %s\n", t.Time)
    fmt.Fprintf(&b, "Theater: %s\n", t.Theater)
    fmt.Fprintf(&b, "Seats: %s\n", strings.Join(t.Seats, ", "))
    fmt.Fprintf(&b, "Amount: ₹%d\n", t.Amount)
    fmt.Fprintf(&b, "Transaction ID: %s\n", t.TransactionID)
    b.WriteString("=====================\n")
    b.WriteString("Thank you for booking with us!\n")
    return b.String()
}

// qrPayload is the content encoded in the entry QR code.
func (t Ticket) qrPayload() string {
    return fmt.Sprintf("%s|%s|%s %s|%s", t.TransactionID, t.Movie, t.Date, t.Time, strings.Join(t.Seats, ","))
}

// QRCode encodes the ticket as a PNG QR code of size x size pixels.
func (t Ticket) QRCode(size int) ([]byte, error) {
    png, err := qrcode.Encode(t.qrPayload(), qrcode.Medium, size)
    if err != nil {
        return nil, fmt.Errorf("encode ticket qr: %w", err)
    }
    return png, nil
}

// PDF renders a single-page A4 ticket with the QR code beside the summary.
func (t Ticket) PDF() ([]byte, error) {
    qr, err := t.QRCode(256)
    if err != nil {
        return nil, err
    }

    pdf := gofpdf.New("P", "mm", "A4", "")
    pdf.SetMargins(15, 15, 15)
    pdf.SetAutoPageBreak(false, 0)
    pdf.AddPage()

    pdf.SetFont("Helvetica", "B", 22)
    pdf.Cell(0, 15, "CINEMA BOOKING TICKET")
    pdf.Ln(18)
    pdf.SetDrawColor(220, 220, 220)
    pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
    pdf.Ln(8)

    top := pdf.GetY()
    pdf.SetFillColor(245, 245, 245)
    pdf.Rect(15, top, 120, 62, "F")
    pdf.SetXY(20, top+6)
    pdf.SetFont("Helvetica", "B", 14)
    pdf.Cell(0, 8, t.Movie)
    pdf.Ln(10)
    pdf.SetFont("Helvetica", "", 12)
    for _, line := range []string{
        "Date: " + t.Date,
        "Time: " + t.Time,
        "Theater: " + t.Theater,
        "Seats: " + strings.Join(t.Seats, ", "),
        fmt.Sprintf("Amount: Rs. %d", t.Amount),
        "Transaction ID: " + t.TransactionID,
    } {
        pdf.SetX(20)
        pdf.Cell(0, 7, line)
        pdf.Ln(7)
    }

    opts := gofpdf.ImageOptions{ImageType: "png"}
    pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qr))
    pdf.ImageOptions("qr", 145, top+5, 45, 0, false, opts, 0, "")

    pdf.SetY(top + 70)
    pdf.SetFont("Helvetica", "I", 10)
    pdf.Cell(0, 6, "Show this QR code at the entrance.")

    pdf.SetDrawColor(200, 200, 200)
    pdf.Line(15, 285, 195, 285)
    pdf.SetY(288)
    pdf.CellFormat(0, 8, "Thank you for booking with us!", "", 0, "C", false, 0, "")

    var buf bytes.Buffer
    if err := pdf.Output(&buf); err != nil {
        return nil, fmt.Errorf("render ticket pdf: %w", err)
    }
    return buf.Bytes(), nil
}
