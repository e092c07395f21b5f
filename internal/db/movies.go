package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/reelsense/reelsense/internal/models"
)

// UpsertMovie inserts a movie or refreshes its title/year by imdb_id,
// returning the internal id.
func UpsertMovie(ctx context.Context, imdbID, title string, year int) (int64, error) {
	query := `
        INSERT INTO movies (imdb_id, title, year)
        VALUES ($1, NULLIF($2, ''), NULLIF($3, 0))
        ON CONFLICT (imdb_id) DO UPDATE SET
            title = COALESCE(NULLIF(EXCLUDED.title, ''), movies.title),
            year = COALESCE(EXCLUDED.year, movies.year),
            updated_at = NOW()
        RETURNING id
    `

	var id int64
	if err := DB.QueryRow(ctx, query, imdbID, title, year).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to upsert movie %s: %w", imdbID, err)
	}
	return id, nil
}

// InsertReviews batch inserts reviews for a movie. Rows whose review hash
// is already stored are skipped.
func InsertReviews(ctx context.Context, movieID int64, reviews []models.ScrapedReview) error {
	if len(reviews) == 0 {
		return nil
	}

	query := `INSERT INTO reviews (movie_id, review_hash, review_title, review_text, rating, reviewer, review_date, source) VALUES `

	values := []interface{}{}
	placeholderParts := []string{}

	for i, review := range reviews {
		offset := i * 8
		placeholderParts = append(placeholderParts,
			fmt.Sprintf("($%d, $%d, $%d, $%d, NULLIF($%d, 0), $%d, $%d, $%d)",
				offset+1, offset+2, offset+3, offset+4, offset+5, offset+6, offset+7, offset+8))

		values = append(values, movieID, review.ReviewID, review.ReviewTitle,
			review.ReviewText, review.Rating, review.Reviewer, review.ReviewDate, review.Source)
	}

	query += strings.Join(placeholderParts, ", ")
	query += `
        ON CONFLICT (review_hash) DO NOTHING
    `

	tag, err := DB.Exec(ctx, query, values...)
	if err != nil {
		return fmt.Errorf("failed to insert reviews: %w", err)
	}

	slog.Info("[DB] Stored review batch",
		slog.Int64("movie_id", movieID),
		slog.Int("batch_size", len(reviews)),
		slog.Int64("inserted", tag.RowsAffected()))
	return nil
}

// GetReviews returns stored review texts for a movie by imdb id, newest
// first, capped at limit.
func GetReviews(ctx context.Context, imdbID string, limit int) ([]models.ScrapedReview, error) {
	query := `
        SELECT r.review_hash, m.imdb_id, COALESCE(m.title, ''), COALESCE(r.review_title, ''),
               r.review_text, COALESCE(r.rating, 0), COALESCE(r.reviewer, ''),
               COALESCE(r.review_date, ''), r.source
        FROM reviews r
        JOIN movies m ON m.id = r.movie_id
        WHERE m.imdb_id = $1
        ORDER BY r.scraped_at DESC
        LIMIT $2
    `

	rows, err := DB.Query(ctx, query, imdbID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews for %s: %w", imdbID, err)
	}
	defer rows.Close()

	var reviews []models.ScrapedReview
	for rows.Next() {
		var r models.ScrapedReview
		if err := rows.Scan(&r.ReviewID, &r.MovieID, &r.MovieTitle, &r.ReviewTitle,
			&r.ReviewText, &r.Rating, &r.Reviewer, &r.ReviewDate, &r.Source); err != nil {
			slog.Warn("[DB] Failed to scan review row", slog.String("error", err.Error()))
			continue
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
