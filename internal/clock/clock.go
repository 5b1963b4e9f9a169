// Package clock abstracts the time operations used by the booking flow so the
// simulated login and payment delays can be driven deterministically in tests.
// Production code uses Real(); tests use Fake() and call Advance.
package clock

import (
    "sort"
    "sync"
    "time"
)

// Clock is the subset of the time package the flow controller depends on.
type Clock interface {
    Now() time.Time
    // AfterFunc calls f in its own goroutine (real) or synchronously during
    // Advance (fake) once d has elapsed.
    AfterFunc(d time.Duration, f func()) Timer
}

// Timer cancels a pending AfterFunc call.
type Timer interface {
    // Stop reports whether the call was prevented from running.
    Stop() bool
}

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// FakeClock only moves when Advance is called. Callbacks whose deadline is
// reached fire synchronously in deadline order on the goroutine calling
// Advance, so they must not call Advance themselves. A non-positive duration
// is due on the next Advance, including Advance(0).
type FakeClock struct {
    mu      sync.Mutex
    now     time.Time
    pending []*fakeTimer
}

type fakeTimer struct {
    clock    *FakeClock
    deadline time.Time
    f        func()
    done     bool
}

// Fake returns a FakeClock frozen at initial.
func Fake(initial time.Time) *FakeClock {
    return &FakeClock{now: initial}
}

func (c *FakeClock) Now() time.Time {
    c.mu.Lock()
    defer c.mu.Unlock()
    return c.now
}

func (c *FakeClock) AfterFunc(d time.Duration, f func()) Timer {
    c.mu.Lock()
    defer c.mu.Unlock()
    t := &fakeTimer{clock: c, deadline: c.now.Add(d), f: f}
    c.pending = append(c.pending, t)
    return t
}

// Advance moves the clock forward by d and fires every due callback.
func (c *FakeClock) Advance(d time.Duration) {
    c.mu.Lock()
    c.now = c.now.Add(d)
    var due, rest []*fakeTimer
    for _, t := range c.pending {
        switch {
        case t.done:
        case !t.deadline.After(c.now):
            t.done = true
            due = append(due, t)
        default:
            rest = append(rest, t)
        }
    }
    c.pending = rest
    c.mu.Unlock()

    sort.SliceStable(due, func(i, j int) bool { return due[i].deadline.Before(due[j].deadline) })
    for _, t := range due {
        t.f()
    }
}

// Pending returns the number of callbacks still waiting to fire.
func (c *FakeClock) Pending() int {
    c.mu.Lock()
    defer c.mu.Unlock()
    n := 0
    for _, t := range c.pending {
        if !t.done {
            n++
        }
    }
    return n
}

func (t *fakeTimer) Stop() bool {
    t.clock.mu.Lock()
    defer t.clock.mu.Unlock()
    if t.done {
        return false
    }
    t.done = true
    return true
}
