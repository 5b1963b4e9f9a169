// Package handler exposes HTTP handlers for the public catalog API and the
// flow-scoped booking API.  This file defines the public handlers: they need
// no flow token and only read the catalog, reviews and statistics.

package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-ticket-booking/internal/booking"
    "github.com/iliyamo/cinema-ticket-booking/internal/repository"
)

// PublicHandler aggregates the read-only stores served without a flow token.
type PublicHandler struct {
    Catalog *repository.CatalogRepo // compiled-in movies and filter lists
    Reviews *repository.ReviewRepo  // per-movie reviews
    Stats   *repository.StatsRepo   // booking totals
    Flows   *booking.Registry       // live flows, for health reporting
}

// queryFromRequest reads the catalog filters from the query string.  Absent
// parameters leave the corresponding filter disabled.
func queryFromRequest(c echo.Context) repository.CatalogQuery {
    return repository.CatalogQuery{
        Query:      strings.TrimSpace(c.QueryParam("q")),
        Genre:      strings.TrimSpace(c.QueryParam("genre")),
        Theater:    strings.TrimSpace(c.QueryParam("theater")),
        PriceRange: strings.TrimSpace(c.QueryParam("price")),
    }
}

// ListMovies handles GET /v1/movies?q=&genre=&theater=&price=.
func (h *PublicHandler) ListMovies(c echo.Context) error {
    q := queryFromRequest(c)
    items := h.Catalog.Filter(q)
    return c.JSON(http.StatusOK, echo.Map{
        "data":    items,
        "total":   len(items),
        "filters": q,
    })
}

// GetMovie handles GET /v1/movies/:id.
func (h *PublicHandler) GetMovie(c echo.Context) error {
    m, err := h.Catalog.GetByID(c.Param("id"))
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, m)
}

// ListGenres handles GET /v1/genres.
func (h *PublicHandler) ListGenres(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"data": h.Catalog.Genres()})
}

// ListTheaters handles GET /v1/theaters.
func (h *PublicHandler) ListTheaters(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"data": h.Catalog.Theaters()})
}

// ListPriceRanges handles GET /v1/price-ranges.
func (h *PublicHandler) ListPriceRanges(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"data": h.Catalog.PriceRanges()})
}

// ListReviews handles GET /v1/movies/:id/reviews.
func (h *PublicHandler) ListReviews(c echo.Context) error {
    sum, err := h.Reviews.List(c.Param("id"))
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, sum)
}

// GetStats handles GET /v1/stats.
func (h *PublicHandler) GetStats(c echo.Context) error {
    return c.JSON(http.StatusOK, h.Stats.Snapshot())
}
