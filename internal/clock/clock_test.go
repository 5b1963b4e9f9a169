package clock

import (
    "testing"
    "time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeAdvanceFiresDueCallbacksInOrder(t *testing.T) {
    c := Fake(epoch)
    var order []string
    c.AfterFunc(2*time.Second, func() { order = append(order, "payment") })
    c.AfterFunc(time.Second, func() { order = append(order, "login") })

    c.Advance(500 * time.Millisecond)
    if len(order) != 0 {
        t.Fatalf("expected nothing fired yet, got %v", order)
    }
    if c.Pending() != 2 {
        t.Fatalf("expected 2 pending, got %d", c.Pending())
    }

    c.Advance(2 * time.Second)
    if len(order) != 2 || order[0] != "login" || order[1] != "payment" {
        t.Fatalf("unexpected fire order %v", order)
    }
    if got := c.Now(); !got.Equal(epoch.Add(2500 * time.Millisecond)) {
        t.Fatalf("unexpected now %v", got)
    }
}

func TestFakeStopPreventsCallback(t *testing.T) {
    c := Fake(epoch)
    fired := false
    timer := c.AfterFunc(time.Second, func() { fired = true })

    if !timer.Stop() {
        t.Fatal("expected first Stop to report true")
    }
    if timer.Stop() {
        t.Fatal("expected second Stop to report false")
    }
    c.Advance(time.Minute)
    if fired {
        t.Fatal("stopped callback fired")
    }
    if c.Pending() != 0 {
        t.Fatalf("expected no pending timers, got %d", c.Pending())
    }
}

func TestFakeZeroDurationFiresOnNextAdvance(t *testing.T) {
    c := Fake(epoch)
    fired := false
    timer := c.AfterFunc(0, func() { fired = true })
    if fired {
        t.Fatal("expected callback to wait for Advance")
    }
    c.Advance(0)
    if !fired {
        t.Fatal("expected callback after Advance(0)")
    }
    if timer.Stop() {
        t.Fatal("expected Stop after firing to report false")
    }
}
