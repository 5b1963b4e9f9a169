package booking

import (
    "fmt"
    "math/rand"

    "github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// SeatMap is the seat grid of one booking session.  It is generated once and
// the occupied set never changes afterwards.
type SeatMap struct {
    Rows        []string
    SeatsPerRow int
    seats       []model.Seat
    index       map[string]int
}

// RowLabel converts a zero-based row index into a spreadsheet style label:
// 0 -> A, 25 -> Z, 26 -> AA, 27 -> AB.
func RowLabel(idx int) string {
    label := ""
    for idx >= 0 {
        label = string(rune('A'+(idx%26))) + label
        idx = idx/26 - 1
    }
    return label
}

// RowLabels returns the first n row labels.
func RowLabels(n int) []string {
    out := make([]string, 0, n)
    for i := 0; i < n; i++ {
        out = append(out, RowLabel(i))
    }
    return out
}

// GenerateSeatMap builds a grid of len(rows) x seatsPerRow seats.  Each seat
// is marked occupied independently with probability occupancy, drawing from
// rng so that a seeded source yields a reproducible layout.  Row labels must
// be distinct and consist of upper-case letters only, so that label plus seat
// number identifies exactly one seat.
func GenerateSeatMap(rows []string, seatsPerRow int, occupancy float64, rng *rand.Rand) *SeatMap {
    m := &SeatMap{
        Rows:        append([]string(nil), rows...),
        SeatsPerRow: seatsPerRow,
        seats:       make([]model.Seat, 0, len(rows)*seatsPerRow),
        index:       make(map[string]int, len(rows)*seatsPerRow),
    }
    for _, row := range rows {
        for n := 1; n <= seatsPerRow; n++ {
            state := model.SeatAvailable
            if rng.Float64() < occupancy {
                state = model.SeatOccupied
            }
            id := fmt.Sprintf("%s%d", row, n)
            m.index[id] = len(m.seats)
            m.seats = append(m.seats, model.Seat{ID: id, Row: row, Number: n, State: state})
        }
    }
    return m
}

// Seat looks up a seat by id.
func (m *SeatMap) Seat(id string) (model.Seat, bool) {
    i, ok := m.index[id]
    if !ok {
        return model.Seat{}, false
    }
    return m.seats[i], true
}

// Len returns the number of seats in the grid.
func (m *SeatMap) Len() int { return len(m.seats) }

// Occupied returns the ids of occupied seats in grid order.
func (m *SeatMap) Occupied() []string {
    var out []string
    for _, s := range m.seats {
        if s.IsOccupied() {
            out = append(out, s.ID)
        }
    }
    return out
}

// Snapshot returns a copy of the grid with the given seats marked selected.
func (m *SeatMap) Snapshot(selected []string) []model.Seat {
    picked := make(map[string]struct{}, len(selected))
    for _, id := range selected {
        picked[id] = struct{}{}
    }
    out := make([]model.Seat, len(m.seats))
    copy(out, m.seats)
    for i := range out {
        if _, ok := picked[out[i].ID]; ok && !out[i].IsOccupied() {
            out[i].State = model.SeatSelected
        }
    }
    return out
}
