package booking

import (
    "math/rand"
    "sync"
    "time"

    "github.com/google/uuid"
    "go.uber.org/zap"

    "github.com/iliyamo/cinema-ticket-booking/internal/clock"
)

// Registry keeps the live flows of the process keyed by flow id.
type Registry struct {
    catalog  Catalog
    clock    clock.Clock
    settings Settings
    seed     int64
    log      *zap.Logger

    mu        sync.RWMutex
    flows     map[string]*Controller
    created   int64
    listeners []TicketListener
}

// NewRegistry returns an empty registry.  A non-zero seed makes the seat
// maps of the n-th created flow reproducible across runs; zero seeds each
// flow from the clock.
func NewRegistry(catalog Catalog, clk clock.Clock, settings Settings, seed int64, log *zap.Logger) *Registry {
    if log == nil {
        log = zap.NewNop()
    }
    return &Registry{
        catalog:  catalog,
        clock:    clk,
        settings: settings,
        seed:     seed,
        log:      log,
        flows:    make(map[string]*Controller),
    }
}

// OnTicketIssued registers fn on every flow created afterwards.
func (r *Registry) OnTicketIssued(fn TicketListener) {
    r.mu.Lock()
    defer r.mu.Unlock()
    r.listeners = append(r.listeners, fn)
}

// Create starts a new flow.
func (r *Registry) Create() *Controller {
    r.mu.Lock()
    defer r.mu.Unlock()
    r.created++
    seed := r.seed
    if seed == 0 {
        seed = r.clock.Now().UnixNano()
    }
    rng := rand.New(rand.NewSource(seed + r.created - 1))

    c := NewController(uuid.NewString(), r.catalog, r.clock, rng, r.settings, r.log)
    for _, fn := range r.listeners {
        c.OnTicketIssued(fn)
    }
    r.flows[c.ID()] = c
    r.log.Debug("flow created", zap.String("flow_id", c.ID()))
    return c
}

// Get returns the flow with the given id or ErrFlowNotFound.
func (r *Registry) Get(id string) (*Controller, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    c, ok := r.flows[id]
    if !ok {
        return nil, ErrFlowNotFound
    }
    return c, nil
}

// Remove closes and forgets a flow.  Unknown ids are ignored.
func (r *Registry) Remove(id string) {
    r.mu.Lock()
    c, ok := r.flows[id]
    delete(r.flows, id)
    r.mu.Unlock()
    if ok {
        c.Close()
    }
}

// Len returns the number of live flows.
func (r *Registry) Len() int {
    r.mu.RLock()
    defer r.mu.RUnlock()
    return len(r.flows)
}

// Sweep removes flows idle for longer than ttl and returns how many were
// removed.
func (r *Registry) Sweep(ttl time.Duration) int {
    cutoff := r.clock.Now().Add(-ttl)
    r.mu.Lock()
    var stale []*Controller
    for id, c := range r.flows {
        if c.LastActivity().Before(cutoff) {
            stale = append(stale, c)
            delete(r.flows, id)
        }
    }
    r.mu.Unlock()

    for _, c := range stale {
        c.Close()
    }
    if len(stale) > 0 {
        r.log.Info("swept idle flows", zap.Int("count", len(stale)))
    }
    return len(stale)
}

// CloseAll removes every flow, stopping their pending timers, and returns
// how many there were.
func (r *Registry) CloseAll() int {
    r.mu.Lock()
    all := make([]*Controller, 0, len(r.flows))
    for id, c := range r.flows {
        all = append(all, c)
        delete(r.flows, id)
    }
    r.mu.Unlock()

    for _, c := range all {
        c.Close()
    }
    return len(all)
}
