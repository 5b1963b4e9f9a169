package repository

import (
    "sort"
    "sync"

    "github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// MovieStats aggregates the bookings of one movie.
type MovieStats struct {
    MovieID  string `json:"movie_id"`
    Title    string `json:"title"`
    Bookings int    `json:"bookings"`
    Seats    int    `json:"seats"`
    Revenue  int    `json:"revenue"`
}

// TheaterStats aggregates the bookings made at one theater.
type TheaterStats struct {
    Theater  string `json:"theater"`
    Bookings int    `json:"bookings"`
    Revenue  int    `json:"revenue"`
}

// StatsSnapshot is a point-in-time copy of the booking totals.
type StatsSnapshot struct {
    Bookings int            `json:"bookings"`
    Seats    int            `json:"seats"`
    Revenue  int            `json:"revenue"`
    Movies   []MovieStats   `json:"movies"`
    Theaters []TheaterStats `json:"theaters"`
}

// StatsRepo accumulates totals of issued tickets for the lifetime of the
// process.  Revenue counts the amount charged, service fee included.
type StatsRepo struct {
    mu       sync.Mutex
    bookings int
    seats    int
    revenue  int
    movies   map[string]*MovieStats
    theaters map[string]*TheaterStats
}

// NewStatsRepo returns empty statistics.
func NewStatsRepo() *StatsRepo {
    return &StatsRepo{
        movies:   make(map[string]*MovieStats),
        theaters: make(map[string]*TheaterStats),
    }
}

// Record adds an issued ticket to the totals.
func (r *StatsRepo) Record(t model.IssuedTicket) {
    r.mu.Lock()
    defer r.mu.Unlock()
    amount := t.Receipt.Amount
    r.bookings++
    r.seats += len(t.Seats)
    r.revenue += amount

    ms, ok := r.movies[t.Movie.ID]
    if !ok {
        ms = &MovieStats{MovieID: t.Movie.ID, Title: t.Movie.Title}
        r.movies[t.Movie.ID] = ms
    }
    ms.Bookings++
    ms.Seats += len(t.Seats)
    ms.Revenue += amount

    ts, ok := r.theaters[t.Theater]
    if !ok {
        ts = &TheaterStats{Theater: t.Theater}
        r.theaters[t.Theater] = ts
    }
    ts.Bookings++
    ts.Revenue += amount
}

// Snapshot returns the current totals.  Movies and theaters are ordered by
// revenue, highest first.
func (r *StatsRepo) Snapshot() StatsSnapshot {
    r.mu.Lock()
    defer r.mu.Unlock()
    snap := StatsSnapshot{
        Bookings: r.bookings,
        Seats:    r.seats,
        Revenue:  r.revenue,
        Movies:   make([]MovieStats, 0, len(r.movies)),
        Theaters: make([]TheaterStats, 0, len(r.theaters)),
    }
    for _, ms := range r.movies {
        snap.Movies = append(snap.Movies, *ms)
    }
    for _, ts := range r.theaters {
        snap.Theaters = append(snap.Theaters, *ts)
    }
    sort.Slice(snap.Movies, func(i, j int) bool {
        if snap.Movies[i].Revenue != snap.Movies[j].Revenue {
            return snap.Movies[i].Revenue > snap.Movies[j].Revenue
        }
        return snap.Movies[i].MovieID < snap.Movies[j].MovieID
    })
    sort.Slice(snap.Theaters, func(i, j int) bool {
        if snap.Theaters[i].Revenue != snap.Theaters[j].Revenue {
            return snap.Theaters[i].Revenue > snap.Theaters[j].Revenue
        }
        return snap.Theaters[i].Theater < snap.Theaters[j].Theater
    })
    return snap
}
