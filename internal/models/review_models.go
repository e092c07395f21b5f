package models

import "time"

// Movie is a scraped title keyed by its external IMDB id.
type Movie struct {
	ID        int64     `json:"id"`
	IMDBID    string    `json:"imdb_id"`
	Title     string    `json:"title"`
	Year      int       `json:"year,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// ScrapedReview is one user review lifted off a reviews page. ReviewID is a
// content hash used for cross-run dedup, not a site identifier.
type ScrapedReview struct {
	ReviewID    string `json:"review_id"`
	MovieID     string `json:"movie_id"`
	MovieTitle  string `json:"movie_title,omitempty"`
	ReviewTitle string `json:"review_title,omitempty"`
	ReviewText  string `json:"review_text"`
	Rating      int    `json:"rating,omitempty"`
	Reviewer    string `json:"reviewer,omitempty"`
	ReviewDate  string `json:"review_date,omitempty"`
	Source      string `json:"source"`
}
