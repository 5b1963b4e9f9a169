package model

// Movie is a bookable catalog entry.  Movies are compiled into the binary and
// never change after load.
//
// Fields:
//  ID        – catalog identifier.
//  Title     – display title.
//  Genres    – non-empty set of genres.
//  Rating    – critic rating out of ten.
//  Duration  – human readable running time (e.g. "2h 45m").
//  Language  – spoken language.
//  Plot      – free-text description searched by the catalog filter.
//  Poster    – image reference.
//  Price     – unit price of one seat in whole rupees; always positive.
//  ShowTimes – scheduled time slots.
//  Theaters  – non-empty list of venues showing the movie.
//  IsRunning – whether the movie can currently be booked.
type Movie struct {
    ID        string   `json:"id"`
    Title     string   `json:"title"`
    Genres    []string `json:"genres"`
    Rating    float64  `json:"rating"`
    Duration  string   `json:"duration"`
    Language  string   `json:"language"`
    Plot      string   `json:"plot"`
    Poster    string   `json:"poster"`
    Price     int      `json:"price"`
    ShowTimes []string `json:"show_times"`
    Theaters  []string `json:"theaters"`
    IsRunning bool     `json:"is_running"`
}

// HasGenre reports whether genre is one of the movie's genres.
func (m Movie) HasGenre(genre string) bool { return contains(m.Genres, genre) }

// PlaysAt reports whether the movie is shown at theater.
func (m Movie) PlaysAt(theater string) bool { return contains(m.Theaters, theater) }

// HasShowTime reports whether showTime is one of the movie's slots.
func (m Movie) HasShowTime(showTime string) bool { return contains(m.ShowTimes, showTime) }

// PriceRange is a labelled inclusive price bracket used by the catalog filter.
type PriceRange struct {
    Label string `json:"label"`
    Min   int    `json:"min"`
    Max   int    `json:"max"`
}

// Contains reports whether price falls inside the bracket, bounds included.
func (r PriceRange) Contains(price int) bool { return price >= r.Min && price <= r.Max }

func contains(list []string, v string) bool {
    for _, s := range list {
        if s == v {
            return true
        }
    }
    return false
}
