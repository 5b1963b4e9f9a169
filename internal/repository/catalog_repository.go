package repository

import (
    "slices"
    "strings"

    "github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// CatalogQuery defines the filters applied when browsing the catalog.  An
// empty field behaves like its "all" sentinel.
type CatalogQuery struct {
    Query      string `json:"query"`
    Genre      string `json:"genre"`
    Theater    string `json:"theater"`
    PriceRange string `json:"price_range"`
}

// DefaultCatalogQuery returns the filters shown when browsing starts: no
// search text and every sentinel selected.
func DefaultCatalogQuery() CatalogQuery {
    return CatalogQuery{Genre: AllGenres, Theater: AllTheaters, PriceRange: AllPrices}
}

// CatalogRepo serves the compiled-in movie catalog.  It is read-only and
// safe for concurrent use.
type CatalogRepo struct {
    movies      []model.Movie
    genres      []string
    theaters    []string
    priceRanges []model.PriceRange
}

// NewCatalogRepo returns a repository over the built-in movie list.
func NewCatalogRepo() *CatalogRepo {
    return NewCatalogRepoWith(movies)
}

// NewCatalogRepoWith returns a repository over the given movies with the
// built-in genre, theater and price-range tables.
func NewCatalogRepoWith(list []model.Movie) *CatalogRepo {
    items := make([]model.Movie, 0, len(list))
    for _, m := range list {
        items = append(items, cloneMovie(m))
    }
    return &CatalogRepo{
        movies:      items,
        genres:      slices.Clone(genres),
        theaters:    slices.Clone(theaters),
        priceRanges: slices.Clone(priceRanges),
    }
}

// Filter returns the movies matching every criterion of q, in catalog
// order.  The result is empty, never nil, when nothing matches.
func (r *CatalogRepo) Filter(q CatalogQuery) []model.Movie {
    needle := strings.ToLower(strings.TrimSpace(q.Query))
    bracket, hasBracket := r.bracket(q.PriceRange)

    out := make([]model.Movie, 0, len(r.movies))
    for _, m := range r.movies {
        if needle != "" &&
            !strings.Contains(strings.ToLower(m.Title), needle) &&
            !strings.Contains(strings.ToLower(m.Plot), needle) {
            continue
        }
        if q.Genre != "" && q.Genre != AllGenres && !m.HasGenre(q.Genre) {
            continue
        }
        if q.Theater != "" && q.Theater != AllTheaters && !m.PlaysAt(q.Theater) {
            continue
        }
        if hasBracket && !bracket.Contains(m.Price) {
            continue
        }
        out = append(out, cloneMovie(m))
    }
    return out
}

// bracket resolves a price-range label.  The "all" sentinel, an empty
// label and unknown labels all disable the price check.
func (r *CatalogRepo) bracket(label string) (model.PriceRange, bool) {
    if label == "" || label == AllPrices {
        return model.PriceRange{}, false
    }
    for _, pr := range r.priceRanges {
        if pr.Label == label {
            return pr, true
        }
    }
    return model.PriceRange{}, false
}

// GetByID returns the movie with the given id or ErrMovieNotFound.
func (r *CatalogRepo) GetByID(id string) (model.Movie, error) {
    for _, m := range r.movies {
        if m.ID == id {
            return cloneMovie(m), nil
        }
    }
    return model.Movie{}, ErrMovieNotFound
}

// Genres lists the selectable genres, starting with the "All" sentinel.
func (r *CatalogRepo) Genres() []string { return slices.Clone(r.genres) }

// Theaters lists the selectable theaters, starting with the "All Theaters" sentinel.
func (r *CatalogRepo) Theaters() []string { return slices.Clone(r.theaters) }

// PriceRanges lists the selectable price brackets, starting with "All Prices".
func (r *CatalogRepo) PriceRanges() []model.PriceRange { return slices.Clone(r.priceRanges) }

func cloneMovie(m model.Movie) model.Movie {
    m.Genres = slices.Clone(m.Genres)
    m.ShowTimes = slices.Clone(m.ShowTimes)
    m.Theaters = slices.Clone(m.Theaters)
    return m
}
