package model

// Review is a user's rating and comment on a movie.
//
// Fields:
//  ID      – unique review identifier.
//  MovieID – reviewed movie.
//  User    – email of the author.
//  Rating  – whole stars from 1 to 5.
//  Comment – trimmed, non-empty text.
//  Date    – day the review was written (YYYY-MM-DD).
type Review struct {
    ID      string `json:"id"`
    MovieID string `json:"movie_id"`
    User    string `json:"user"`
    Rating  int    `json:"rating"`
    Comment string `json:"comment"`
    Date    string `json:"date"`
}
