package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/reelsense/reelsense/config"
	"github.com/reelsense/reelsense/internal/clients"
	"github.com/reelsense/reelsense/internal/db"
	"github.com/reelsense/reelsense/internal/logging"
	"github.com/reelsense/reelsense/internal/models"
	"github.com/reelsense/reelsense/internal/scraper"
	"github.com/reelsense/reelsense/internal/utils"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	movieIDs := flag.String("movies", "", "comma-separated IMDB title ids (e.g. tt30144839)")
	maxReviews := flag.Int("max", 100, "maximum reviews to scrape per movie")
	flag.Parse()

	ids := splitIDs(*movieIDs)
	if len(ids) == 0 {
		slog.Error("[Scraper] No movie ids provided, use -movies")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.InitDB(ctx); err != nil {
		slog.Error("[Scraper] Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.CloseDB()

	if err := db.InitSchema(ctx); err != nil {
		slog.Error("[Scraper] Failed to initialize schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	valkey := clients.GetValkeyClient()
	defer clients.CloseValkey()

	s := scraper.New()
	for _, movieID := range ids {
		if ctx.Err() != nil {
			slog.Warn("[Scraper] Interrupted, stopping")
			break
		}
		scrapeMovie(ctx, s, valkey, movieID, *maxReviews)
	}
}

func scrapeMovie(ctx context.Context, s *scraper.Scraper, valkey *clients.ValkeyClient, movieID string, maxReviews int) {
	slog.Info("[Scraper] Scraping movie", slog.String("movie_id", movieID))

	movie, reviews, err := s.FetchReviews(ctx, movieID, maxReviews)
	if err != nil {
		slog.Error("[Scraper] Failed to fetch reviews",
			slog.String("movie_id", movieID),
			slog.String("error", err.Error()))
		return
	}

	rowID, err := db.UpsertMovie(ctx, movieID, movie.Title, movie.Year)
	if err != nil {
		slog.Error("[Scraper] Failed to store movie",
			slog.String("movie_id", movieID),
			slog.String("error", err.Error()))
		return
	}

	buffer := utils.NewBatchBuffer[models.ScrapedReview]()
	seenThisRun := make(map[string]struct{}, len(reviews))
	stored := 0

	for _, review := range reviews {
		if _, dup := seenThisRun[review.ReviewID]; dup {
			continue
		}
		seenThisRun[review.ReviewID] = struct{}{}

		if valkey != nil {
			seen, err := valkey.SeenReview(ctx, review.ReviewID)
			if err != nil {
				slog.Warn("[Scraper] Dedup check failed, keeping review",
					slog.String("error", err.Error()))
			} else if seen {
				continue
			}
		}

		buffer.Add(review)
		if buffer.Size() >= utils.BATCH_SIZE {
			stored += flushBatch(ctx, valkey, rowID, buffer)
		}
	}
	stored += flushBatch(ctx, valkey, rowID, buffer)

	slog.Info("[Scraper] Movie done",
		slog.String("movie_id", movieID),
		slog.String("title", movie.Title),
		slog.Int("fetched", len(reviews)),
		slog.Int("stored", stored))
}

func flushBatch(ctx context.Context, valkey *clients.ValkeyClient, movieRowID int64, buffer *utils.BatchBuffer[models.ScrapedReview]) int {
	batch := buffer.GetAndClear()
	if len(batch) == 0 {
		return 0
	}

	if err := db.InsertReviews(ctx, movieRowID, batch); err != nil {
		slog.Error("[Scraper] Failed to store review batch", slog.String("error", err.Error()))
		return 0
	}

	if valkey != nil {
		for _, review := range batch {
			if err := valkey.MarkReviewSeen(ctx, review.ReviewID); err != nil {
				slog.Warn("[Scraper] Failed to record review id", slog.String("error", err.Error()))
			}
		}
	}
	return len(batch)
}

func splitIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
