package model

// SeatState is the availability of a seat inside one booking session.
type SeatState string

const (
    SeatAvailable SeatState = "available"
    SeatSelected  SeatState = "selected"
    SeatOccupied  SeatState = "occupied"
)

// Seat describes one seat of a session's seat map.  Seats are uniquely
// identified by their row label and 1-based number; ID is the two
// concatenated (e.g. "C7").  Occupied seats are fixed when the map is
// generated; Selected is layered over available seats when a view is built.
//
// Fields:
//  ID     – row label + seat number.
//  Row    – row label (A, B, ... Z, AA, ...).
//  Number – seat number within the row, starting at 1.
//  State  – availability of the seat.
type Seat struct {
    ID     string    `json:"id"`
    Row    string    `json:"row"`
    Number int       `json:"number"`
    State  SeatState `json:"state"`
}

// IsOccupied reports whether the seat was taken when the map was generated.
func (s Seat) IsOccupied() bool { return s.State == SeatOccupied }
