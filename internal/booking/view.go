package booking

import (
    "github.com/iliyamo/cinema-ticket-booking/internal/model"
    "github.com/iliyamo/cinema-ticket-booking/internal/repository"
)

// View is the JSON snapshot of a flow returned by every flow endpoint.
type View struct {
    FlowID        string                  `json:"flow_id"`
    State         State                   `json:"state"`
    Authenticated bool                    `json:"authenticated"`
    User          string                  `json:"user,omitempty"`
    LoginPending  bool                    `json:"login_pending"`
    Filters       repository.CatalogQuery `json:"filters"`
    Session       *SessionView            `json:"session,omitempty"`
}

// SessionView describes the active booking session.  Seats is the full grid
// with the current selection layered on.
type SessionView struct {
    ID          string         `json:"id"`
    Movie       model.Movie    `json:"movie"`
    ShowTime    string         `json:"show_time"`
    Theater     string         `json:"theater"`
    Rows        []string       `json:"rows"`
    SeatsPerRow int            `json:"seats_per_row"`
    Seats       []model.Seat   `json:"seats"`
    Selected    []string       `json:"selected"`
    Total       int            `json:"total"`
    ServiceFee  int            `json:"service_fee"`
    Payable     int            `json:"payable"`
    Processing  bool           `json:"processing"`
    Receipt     *model.Receipt `json:"receipt,omitempty"`
    Downloaded  bool           `json:"downloaded"`
}

// View returns a snapshot of the flow.
func (c *Controller) View() View {
    c.mu.Lock()
    defer c.mu.Unlock()
    v := View{
        FlowID:        c.id,
        State:         c.state,
        Authenticated: c.user != "",
        User:          c.user,
        LoginPending:  c.pendingUser != "",
        Filters:       c.filters,
    }
    if s := c.session; s != nil {
        total := s.Total()
        sv := &SessionView{
            ID:          s.ID,
            Movie:       s.Movie,
            ShowTime:    s.ShowTime,
            Theater:     s.Theater,
            Rows:        append([]string(nil), s.Seats.Rows...),
            SeatsPerRow: s.Seats.SeatsPerRow,
            Seats:       s.Seats.Snapshot(s.Selected),
            Selected:    append([]string{}, s.Selected...),
            Total:       total,
            ServiceFee:  c.settings.ServiceFee,
            Payable:     total + c.settings.ServiceFee,
            Processing:  c.processing,
            Downloaded:  s.Downloaded,
        }
        if s.Receipt != nil {
            r := *s.Receipt
            sv.Receipt = &r
        }
        v.Session = sv
    }
    return v
}
