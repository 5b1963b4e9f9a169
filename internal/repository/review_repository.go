package repository

import (
    "fmt"
    "strings"
    "sync"
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// sampleReviews are shown for every movie until real reviews are added.
var sampleReviews = []model.Review{
    {ID: "sample-1", User: "john@example.com", Rating: 5, Comment: "Absolutely amazing movie! The cinematography and storytelling were exceptional.", Date: "2024-01-15"},
    {ID: "sample-2", User: "jane@example.com", Rating: 4, Comment: "Great movie with stunning visuals. Would definitely recommend!", Date: "2024-01-14"},
    {ID: "sample-3", User: "bob@example.com", Rating: 5, Comment: "One of the best films I have seen this year. Mind-blowing experience!", Date: "2024-01-13"},
}

// ReviewSummary is the review list of a movie with its average rating.
type ReviewSummary struct {
    MovieID string         `json:"movie_id"`
    Average float64        `json:"average"`
    Count   int            `json:"count"`
    Reviews []model.Review `json:"reviews"`
}

// ReviewRepo stores movie reviews in memory, newest first.  Reviews only
// live as long as the process.
type ReviewRepo struct {
    catalog *CatalogRepo

    mu      sync.RWMutex
    reviews map[string][]model.Review
}

// NewReviewRepo returns a review store for the movies of catalog.
func NewReviewRepo(catalog *CatalogRepo) *ReviewRepo {
    return &ReviewRepo{catalog: catalog, reviews: make(map[string][]model.Review)}
}

// List returns the reviews of a movie, newest first, with their average.
func (r *ReviewRepo) List(movieID string) (ReviewSummary, error) {
    if _, err := r.catalog.GetByID(movieID); err != nil {
        return ReviewSummary{}, err
    }
    r.mu.RLock()
    list, ok := r.reviews[movieID]
    r.mu.RUnlock()
    if !ok {
        list = seededReviews(movieID)
    }
    return summarize(movieID, list), nil
}

// Add records a review written by user at the given time.  rating must be
// between 1 and 5 and comment must not be blank.
func (r *ReviewRepo) Add(movieID, user string, rating int, comment string, at time.Time) (model.Review, error) {
    if _, err := r.catalog.GetByID(movieID); err != nil {
        return model.Review{}, err
    }
    if rating < 1 || rating > 5 {
        return model.Review{}, fmt.Errorf("rating must be between 1 and 5: %w", ErrInvalidReview)
    }
    comment = strings.TrimSpace(comment)
    if comment == "" {
        return model.Review{}, fmt.Errorf("comment is required: %w", ErrInvalidReview)
    }

    rev := model.Review{
        ID:      uuid.NewString(),
        MovieID: movieID,
        User:    user,
        Rating:  rating,
        Comment: comment,
        Date:    at.Format("2006-01-02"),
    }
    r.mu.Lock()
    defer r.mu.Unlock()
    list, ok := r.reviews[movieID]
    if !ok {
        list = seededReviews(movieID)
    }
    r.reviews[movieID] = append([]model.Review{rev}, list...)
    return rev, nil
}

func seededReviews(movieID string) []model.Review {
    out := make([]model.Review, len(sampleReviews))
    for i, s := range sampleReviews {
        s.ID = movieID + "-" + s.ID
        s.MovieID = movieID
        out[i] = s
    }
    return out
}

func summarize(movieID string, list []model.Review) ReviewSummary {
    sum := ReviewSummary{MovieID: movieID, Count: len(list), Reviews: append([]model.Review{}, list...)}
    if len(list) == 0 {
        return sum
    }
    total := 0
    for _, rv := range list {
        total += rv.Rating
    }
    sum.Average = float64(total) / float64(len(list))
    return sum
}
