// Package repository holds the in-memory stores behind the booking service:
// the compiled-in movie catalog, movie reviews and booking statistics.  The
// sentinel values below allow higher layers such as handlers to
// distinguish between different failure scenarios.
package repository

import "errors"

// ErrMovieNotFound is returned when a movie id is not part of the
// catalog.  Handlers should translate this into an HTTP 404 response.
var ErrMovieNotFound = errors.New("movie not found")

// ErrInvalidReview is returned when a review is missing its rating or
// comment.  It wraps a field-specific message; handlers should
// translate it into an HTTP 422 response.
var ErrInvalidReview = errors.New("invalid review")
