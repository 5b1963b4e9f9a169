package booking

import (
    "fmt"
    "math/rand"
    "net/mail"
    "strings"
    "sync"
    "time"

    "go.uber.org/zap"

    "github.com/iliyamo/cinema-ticket-booking/internal/clock"
    "github.com/iliyamo/cinema-ticket-booking/internal/model"
    "github.com/iliyamo/cinema-ticket-booking/internal/repository"
)

// State is the screen a flow is currently on.
type State string

const (
    StateBrowsing       State = "browsing"
    StateSeatSelecting  State = "seat_selecting"
    StatePaymentPending State = "payment_pending"
    StateTicketIssued   State = "ticket_issued"
)

// GoogleAccount is the address assigned by the simulated Google sign-in.
const GoogleAccount = "user@gmail.com"

// Catalog is the read side of the movie catalog used by a flow.
type Catalog interface {
    Filter(q repository.CatalogQuery) []model.Movie
    GetByID(id string) (model.Movie, error)
}

// Settings tunes the simulated parts of a flow.
type Settings struct {
    Rows         []string
    SeatsPerRow  int
    Occupancy    float64
    ServiceFee   int
    LoginDelay   time.Duration
    PaymentDelay time.Duration
}

// DefaultSettings returns a ten row, twelve seat auditorium that is roughly
// a third full, with one and two second login and payment delays.
func DefaultSettings() Settings {
    return Settings{
        Rows:         RowLabels(10),
        SeatsPerRow:  12,
        Occupancy:    0.3,
        ServiceFee:   DefaultServiceFee,
        LoginDelay:   time.Second,
        PaymentDelay: 2 * time.Second,
    }
}

// TicketListener is notified after a payment completes.  Listeners run
// outside the controller lock and may call back into the controller.
type TicketListener func(model.IssuedTicket)

// Controller drives one client's booking flow.  All methods are safe for
// concurrent use.
type Controller struct {
    id       string
    catalog  Catalog
    clock    clock.Clock
    settings Settings
    log      *zap.Logger

    mu sync.Mutex

    rng *rand.Rand

    user         string
    pendingUser  string
    loginGen     uint64
    loginTimer   clock.Timer
    lastActivity time.Time

    state        State
    filters      repository.CatalogQuery
    session      *Session
    processing   bool
    paymentGen   uint64
    paymentTimer clock.Timer

    listeners []TicketListener
}

// NewController creates a flow in the browsing state with default filters
// and no logged-in user.  rng must not be shared with other controllers.
func NewController(id string, catalog Catalog, clk clock.Clock, rng *rand.Rand, settings Settings, log *zap.Logger) *Controller {
    if log == nil {
        log = zap.NewNop()
    }
    return &Controller{
        id:           id,
        catalog:      catalog,
        clock:        clk,
        settings:     settings,
        log:          log.With(zap.String("flow_id", id)),
        rng:          rng,
        state:        StateBrowsing,
        filters:      repository.DefaultCatalogQuery(),
        lastActivity: clk.Now(),
    }
}

// ID returns the flow identifier.
func (c *Controller) ID() string { return c.id }

// OnTicketIssued registers fn to be called for every issued ticket.
func (c *Controller) OnTicketIssued(fn TicketListener) {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.listeners = append(c.listeners, fn)
}

// LastActivity returns the time of the most recent operation on the flow.
func (c *Controller) LastActivity() time.Time {
    c.mu.Lock()
    defer c.mu.Unlock()
    return c.lastActivity
}

func (c *Controller) touch() { c.lastActivity = c.clock.Now() }

// State returns the current screen.
func (c *Controller) State() State {
    c.mu.Lock()
    defer c.mu.Unlock()
    return c.state
}

// User returns the logged-in email or ErrAuthorizationRequired.
func (c *Controller) User() (string, error) {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.touch()
    if c.user == "" {
        return "", ErrAuthorizationRequired
    }
    return c.user, nil
}

// Login starts a simulated sign-in for email.  The user becomes
// authenticated once the login delay elapses; a newer login or a logout in
// the meantime discards the pending one.
func (c *Controller) Login(email string) error {
    email = strings.TrimSpace(email)
    addr, err := mail.ParseAddress(email)
    if err != nil || addr.Address != email {
        return invalid("email", "enter a valid email address")
    }
    c.mu.Lock()
    defer c.mu.Unlock()
    c.touch()
    if c.user != "" {
        return fmt.Errorf("login while signed in as %s: %w", c.user, ErrInvalidTransition)
    }
    c.scheduleLogin(email)
    return nil
}

// LoginWithGoogle starts the simulated Google sign-in.
func (c *Controller) LoginWithGoogle() error {
    return c.Login(GoogleAccount)
}

func (c *Controller) scheduleLogin(email string) {
    if c.loginTimer != nil {
        c.loginTimer.Stop()
    }
    c.loginGen++
    gen := c.loginGen
    c.pendingUser = email
    c.loginTimer = c.clock.AfterFunc(c.settings.LoginDelay, func() { c.completeLogin(gen) })
}

func (c *Controller) completeLogin(gen uint64) {
    c.mu.Lock()
    defer c.mu.Unlock()
    if gen != c.loginGen || c.pendingUser == "" {
        return
    }
    c.user = c.pendingUser
    c.pendingUser = ""
    c.loginTimer = nil
    c.log.Info("user logged in", zap.String("user", c.user))
}

// Logout signs the user out, cancels pending login and payment work and
// returns to browsing.  The active session is discarded.
func (c *Controller) Logout() {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.touch()
    if c.loginTimer != nil {
        c.loginTimer.Stop()
        c.loginTimer = nil
    }
    c.loginGen++
    c.pendingUser = ""
    if c.user != "" {
        c.log.Info("user logged out", zap.String("user", c.user))
    }
    c.user = ""
    c.resetSession()
}

// SetFilters replaces the active catalog filters.
func (c *Controller) SetFilters(q repository.CatalogQuery) {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.touch()
    c.filters = q
}

// Filters returns the active catalog filters.
func (c *Controller) Filters() repository.CatalogQuery {
    c.mu.Lock()
    defer c.mu.Unlock()
    return c.filters
}

// Movies returns the catalog filtered by the active filters.
func (c *Controller) Movies() []model.Movie {
    c.mu.Lock()
    q := c.filters
    c.touch()
    c.mu.Unlock()
    return c.catalog.Filter(q)
}

// SelectMovie opens the seat map for a movie.  showTime and theater default
// to the movie's first entries and must otherwise belong to it.  A fresh
// seat map is generated for the new session.
func (c *Controller) SelectMovie(movieID, showTime, theater string) error {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.touch()
    if c.user == "" {
        return ErrAuthorizationRequired
    }
    if c.state != StateBrowsing {
        return transitionError("select movie", c.state)
    }
    movie, err := c.catalog.GetByID(movieID)
    if err != nil {
        return fmt.Errorf("select movie %s: %w", movieID, err)
    }
    if !movie.IsRunning {
        return invalid("movie_id", "movie is not currently showing")
    }
    if showTime == "" && len(movie.ShowTimes) > 0 {
        showTime = movie.ShowTimes[0]
    } else if !movie.HasShowTime(showTime) {
        return invalid("show_time", "show time not available for this movie")
    }
    if theater == "" && len(movie.Theaters) > 0 {
        theater = movie.Theaters[0]
    } else if !movie.PlaysAt(theater) {
        return invalid("theater", "movie is not playing at this theater")
    }

    seats := GenerateSeatMap(c.settings.Rows, c.settings.SeatsPerRow, c.settings.Occupancy, c.rng)
    c.session = newSession(movie, showTime, theater, seats)
    c.state = StateSeatSelecting
    c.log.Debug("session started",
        zap.String("session_id", c.session.ID),
        zap.String("movie_id", movie.ID),
        zap.Int("occupied", len(seats.Occupied())))
    return nil
}

// ToggleSeat flips the selection of a seat.  Occupied seats are ignored.
func (c *Controller) ToggleSeat(seatID string) error {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.touch()
    if c.user == "" {
        return ErrAuthorizationRequired
    }
    if c.state != StateSeatSelecting {
        return transitionError("toggle seat", c.state)
    }
    _, err := c.session.toggle(strings.ToUpper(strings.TrimSpace(seatID)))
    return err
}

// ProceedToPayment freezes the total of the current selection and moves to
// the payment screen.  At least one seat must be selected.
func (c *Controller) ProceedToPayment() error {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.touch()
    if c.user == "" {
        return ErrAuthorizationRequired
    }
    if c.state != StateSeatSelecting {
        return transitionError("proceed to payment", c.state)
    }
    if len(c.session.Selected) == 0 {
        return invalid("seats", "select at least one seat")
    }
    c.session.Captured = c.session.Total()
    c.state = StatePaymentPending
    return nil
}

// Pay validates req and starts the simulated payment.  The receipt is
// attached when the payment delay elapses, unless the flow has moved on.
func (c *Controller) Pay(req PaymentRequest) error {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.touch()
    if c.user == "" {
        return ErrAuthorizationRequired
    }
    if c.state != StatePaymentPending {
        return transitionError("pay", c.state)
    }
    if c.processing {
        return ErrPaymentInProgress
    }
    if err := req.Validate(c.clock.Now()); err != nil {
        return err
    }
    c.processing = true
    c.paymentGen++
    gen, sid := c.paymentGen, c.session.ID
    c.paymentTimer = c.clock.AfterFunc(c.settings.PaymentDelay, func() {
        c.completePayment(sid, gen, req.Method)
    })
    return nil
}

func (c *Controller) completePayment(sessionID string, gen uint64, method model.PaymentMethod) {
    c.mu.Lock()
    s := c.session
    if s == nil || s.ID != sessionID || gen != c.paymentGen ||
        c.state != StatePaymentPending || !c.processing || s.Receipt != nil {
        c.mu.Unlock()
        return
    }
    now := c.clock.Now()
    receipt := newReceipt(method, s.Captured, c.settings.ServiceFee, now)
    s.Receipt = &receipt
    c.processing = false
    c.paymentTimer = nil
    c.state = StateTicketIssued

    issued := model.IssuedTicket{
        FlowID:     c.id,
        SessionID:  s.ID,
        UserEmail:  c.user,
        Movie:      s.Movie,
        ShowTime:   s.ShowTime,
        Theater:    s.Theater,
        Seats:      append([]string(nil), s.Selected...),
        TotalPrice: s.Captured,
        Receipt:    receipt,
        IssuedAt:   now,
    }
    listeners := append([]TicketListener(nil), c.listeners...)
    c.mu.Unlock()

    c.log.Info("ticket issued",
        zap.String("session_id", issued.SessionID),
        zap.String("transaction_id", receipt.TransactionID),
        zap.Int("amount", receipt.Amount))
    for _, fn := range listeners {
        fn(issued)
    }
}

func (c *Controller) cancelPayment() {
    if c.paymentTimer != nil {
        c.paymentTimer.Stop()
        c.paymentTimer = nil
    }
    c.paymentGen++
    c.processing = false
}

// resetSession discards the active session and returns to browsing.
func (c *Controller) resetSession() {
    c.cancelPayment()
    c.session = nil
    c.state = StateBrowsing
}

// Back steps one screen backwards.  Leaving the payment screen cancels a
// pending payment and keeps the selection; leaving the seat map discards
// the session.
func (c *Controller) Back() error {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.touch()
    switch c.state {
    case StatePaymentPending:
        c.cancelPayment()
        c.session.Captured = 0
        c.state = StateSeatSelecting
        return nil
    case StateSeatSelecting:
        c.resetSession()
        return nil
    default:
        return transitionError("back", c.state)
    }
}

// Cancel abandons the current booking from any screen.  Filters are kept.
func (c *Controller) Cancel() {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.touch()
    c.resetSession()
}

// Ticket returns the issued ticket and marks it downloaded.
func (c *Controller) Ticket() (Ticket, error) {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.touch()
    if c.state != StateTicketIssued || c.session == nil || c.session.Receipt == nil {
        return Ticket{}, ErrNoTicket
    }
    c.session.Downloaded = true
    return ticketFor(c.session), nil
}

// ViewMore leaves the ticket screen for a fresh catalog: the session and
// every filter are cleared.
func (c *Controller) ViewMore() error {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.touch()
    if c.state != StateTicketIssued {
        return transitionError("view more", c.state)
    }
    c.resetSession()
    c.filters = repository.DefaultCatalogQuery()
    return nil
}

// Close cancels timers owned by the flow.  The flow must not be used
// afterwards.
func (c *Controller) Close() {
    c.mu.Lock()
    defer c.mu.Unlock()
    if c.loginTimer != nil {
        c.loginTimer.Stop()
        c.loginTimer = nil
    }
    c.loginGen++
    c.cancelPayment()
}
