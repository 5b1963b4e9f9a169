package booking

import (
    "errors"
    "slices"
    "testing"
    "time"

    "github.com/iliyamo/cinema-ticket-booking/internal/clock"
    "github.com/iliyamo/cinema-ticket-booking/internal/model"
    "github.com/iliyamo/cinema-ticket-booking/internal/repository"
)

func TestRegistryCreateGetRemove(t *testing.T) {
    r := NewRegistry(repository.NewCatalogRepo(), clock.Fake(testNow), DefaultSettings(), 0, nil)
    c := r.Create()
    got, err := r.Get(c.ID())
    if err != nil || got != c {
        t.Fatalf("expected created flow, got %v (%v)", got, err)
    }
    r.Remove(c.ID())
    if _, err := r.Get(c.ID()); !errors.Is(err, ErrFlowNotFound) {
        t.Fatalf("expected ErrFlowNotFound, got %v", err)
    }
    r.Remove("missing")
    if r.Len() != 0 {
        t.Fatalf("expected empty registry, got %d", r.Len())
    }
}

func TestRegistrySweepRemovesIdleFlows(t *testing.T) {
    clk := clock.Fake(testNow)
    r := NewRegistry(repository.NewCatalogRepo(), clk, DefaultSettings(), 1, nil)
    idle := r.Create()
    clk.Advance(20 * time.Minute)
    active := r.Create()
    clk.Advance(15 * time.Minute)
    active.SetFilters(repository.DefaultCatalogQuery())

    if n := r.Sweep(30 * time.Minute); n != 1 {
        t.Fatalf("expected 1 swept flow, got %d", n)
    }
    if _, err := r.Get(idle.ID()); !errors.Is(err, ErrFlowNotFound) {
        t.Fatal("expected idle flow to be removed")
    }
    if _, err := r.Get(active.ID()); err != nil {
        t.Fatalf("expected active flow to remain, got %v", err)
    }
}

func TestRegistryPropagatesListenersAndSeed(t *testing.T) {
    layout := func() []string {
        clk := clock.Fake(testNow)
        r := NewRegistry(repository.NewCatalogRepo(), clk, DefaultSettings(), 99, nil)
        var got []model.IssuedTicket
        r.OnTicketIssued(func(it model.IssuedTicket) { got = append(got, it) })

        c := r.Create()
        _ = c.Login("viewer@example.com")
        clk.Advance(time.Second)
        if err := c.SelectMovie("3", "", ""); err != nil {
            t.Fatalf("select: %v", err)
        }
        v := c.View()
        var occupied, free []string
        for _, s := range v.Session.Seats {
            if s.State == model.SeatOccupied {
                occupied = append(occupied, s.ID)
            } else {
                free = append(free, s.ID)
            }
        }
        _ = c.ToggleSeat(free[0])
        _ = c.ProceedToPayment()
        _ = c.Pay(PaymentRequest{Method: model.PaymentNetBanking, Bank: "SBI"})
        clk.Advance(2 * time.Second)
        if len(got) != 1 || got[0].FlowID != c.ID() || got[0].Receipt.Amount != 280+25 {
            t.Fatalf("expected one issued ticket from the registry listener, got %+v", got)
        }
        return occupied
    }
    if a, b := layout(), layout(); !slices.Equal(a, b) {
        t.Fatalf("expected seeded registries to produce the same layout, got %v and %v", a, b)
    }
}

func TestRegistryCloseAllStopsPendingWork(t *testing.T) {
    clk := clock.Fake(testNow)
    r := NewRegistry(repository.NewCatalogRepo(), clk, DefaultSettings(), 1, nil)
    a := r.Create()
    r.Create()
    if err := a.Login("viewer@example.com"); err != nil {
        t.Fatalf("login: %v", err)
    }
    if n := r.CloseAll(); n != 2 {
        t.Fatalf("expected 2 closed flows, got %d", n)
    }
    if r.Len() != 0 {
        t.Fatalf("expected empty registry, got %d", r.Len())
    }
    clk.Advance(time.Minute)
    if a.View().Authenticated {
        t.Fatal("expected closed flow to ignore the pending login")
    }
}
