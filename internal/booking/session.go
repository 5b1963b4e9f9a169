package booking

import (
    "slices"

    "github.com/google/uuid"

    "github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// Session is one attempt to book seats for a single movie.  It is owned by a
// Controller and only mutated while the controller's lock is held.
//
// Selected keeps click order and only ever holds seats that exist in the map
// and were not occupied at generation time.  The receipt is attached at most
// once.
type Session struct {
    ID         string
    Movie      model.Movie
    ShowTime   string
    Theater    string
    Seats      *SeatMap
    Selected   []string
    Captured   int
    Receipt    *model.Receipt
    Downloaded bool
}

func newSession(movie model.Movie, showTime, theater string, seats *SeatMap) *Session {
    return &Session{
        ID:       uuid.NewString(),
        Movie:    movie,
        ShowTime: showTime,
        Theater:  theater,
        Seats:    seats,
    }
}

// Total is the unit price times the number of selected seats.
func (s *Session) Total() int {
    return s.Movie.Price * len(s.Selected)
}

// IsSelected reports whether id is currently picked.
func (s *Session) IsSelected(id string) bool {
    return slices.Contains(s.Selected, id)
}

// toggle adds or removes a seat from the selection.  Occupied seats are left
// alone and report false; unknown ids are rejected.
func (s *Session) toggle(id string) (bool, error) {
    seat, ok := s.Seats.Seat(id)
    if !ok {
        return false, invalid("seat", "unknown seat "+id)
    }
    if seat.IsOccupied() {
        return false, nil
    }
    if i := slices.Index(s.Selected, id); i >= 0 {
        s.Selected = slices.Delete(s.Selected, i, i+1)
        return true, nil
    }
    s.Selected = append(s.Selected, id)
    return true, nil
}
