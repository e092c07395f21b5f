package scraper

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/reelsense/reelsense/internal/clients"
	"github.com/reelsense/reelsense/internal/models"
)

const (
	defaultBaseURL  = "https://www.imdb.com"
	reviewsPathFmt  = "/title/%s/reviews/"
	requestTimeout  = 30 * time.Second
	maxReviewPages  = 20
	minReviewLength = 20
)

var digitsPattern = regexp.MustCompile(`\d+`)

// Scraper fetches user reviews for movies from IMDB review pages.
type Scraper struct {
	client  *http.Client
	baseURL string
}

func New() *Scraper {
	return &Scraper{
		client:  &http.Client{Timeout: requestTimeout},
		baseURL: defaultBaseURL,
	}
}

// FetchReviews collects up to max reviews for the movie, following
// pagination until the site stops offering more.
func (s *Scraper) FetchReviews(ctx context.Context, movieID string, max int) (models.Movie, []models.ScrapedReview, error) {
	movie := models.Movie{IMDBID: movieID}
	var reviews []models.ScrapedReview

	start := 0
	for page := 0; page < maxReviewPages && len(reviews) < max; page++ {
		url := fmt.Sprintf(s.baseURL+reviewsPathFmt, movieID)
		if start > 0 {
			url = fmt.Sprintf("%s?start=%d", url, start)
		}

		body, err := s.fetchPage(ctx, url)
		if err != nil {
			if len(reviews) > 0 {
				// Keep what earlier pages yielded.
				slog.Warn("[Scraper] Page fetch failed, returning partial results",
					slog.String("movie_id", movieID),
					slog.String("error", err.Error()))
				break
			}
			return movie, nil, err
		}

		result, err := ParseReviewsPage(body, movieID)
		body.Close()
		if err != nil {
			return movie, reviews, err
		}

		if movie.Title == "" {
			movie.Title = result.MovieTitle
		}
		reviews = append(reviews, result.Reviews...)

		slog.Info("[Scraper] Parsed reviews page",
			slog.String("movie_id", movieID),
			slog.Int("page_reviews", len(result.Reviews)),
			slog.Int("total", len(reviews)))

		if len(result.Reviews) == 0 || !result.HasMore {
			break
		}
		start += len(result.Reviews)
	}

	if len(reviews) > max {
		reviews = reviews[:max]
	}
	return movie, reviews, nil
}

func (s *Scraper) fetchPage(ctx context.Context, url string) (io.ReadCloser, error) {
	backoff := clients.INITIAL_BACKOFF

	var lastErr error
	for attempt := 0; attempt < clients.MAX_RETRIES; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", clients.USER_AGENT)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.5")

		resp, err := s.client.Do(req)
		if err == nil && resp.StatusCode == http.StatusOK {
			return resp.Body, nil
		}

		if resp != nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusForbidden {
				return nil, fmt.Errorf("request blocked with 403 for %s", url)
			}
			lastErr = fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
		} else {
			lastErr = err
		}

		slog.Warn("[Scraper] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", lastErr.Error()))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		if backoff *= 2; backoff > clients.MAX_BACKOFF {
			backoff = clients.MAX_BACKOFF
		}
	}
	return nil, fmt.Errorf("request failed after retries: %w", lastErr)
}

// PageResult is one parsed reviews page.
type PageResult struct {
	MovieTitle string
	Reviews    []models.ScrapedReview
	HasMore    bool
}

// ParseReviewsPage extracts reviews from a reviews page. IMDB has shipped
// several layouts; selectors are tried from the oldest structure to the
// newest, then a longest-text-block last resort.
func ParseReviewsPage(r io.Reader, movieID string) (PageResult, error) {
	var result PageResult

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return result, fmt.Errorf("failed to parse reviews page: %w", err)
	}

	result.MovieTitle = firstText(doc.Selection,
		`h3[itemprop="name"] a`,
		"div.parent a",
	)

	containers := doc.Find("div.lister-item-content")
	if containers.Length() == 0 {
		containers = doc.Find("article")
	}
	if containers.Length() == 0 {
		containers = doc.Find("div.ipc-list-card")
	}
	if containers.Length() == 0 {
		containers = doc.Find(`div[data-testid="review-container"]`)
	}
	if containers.Length() == 0 {
		containers = doc.Find("div.review-container")
	}

	containers.Each(func(_ int, c *goquery.Selection) {
		text := reviewText(c)
		if text == "" {
			return
		}

		review := models.ScrapedReview{
			MovieID:     movieID,
			MovieTitle:  result.MovieTitle,
			ReviewTitle: firstText(c, "a.title", "h2 a"),
			ReviewText:  text,
			Reviewer:    firstText(c, "span.display-name-link a", `span[class*="display-name"] a`),
			ReviewDate:  firstText(c, "span.review-date", `span[class*="date"]`),
			Source:      "imdb",
		}
		review.Rating = parseRating(firstText(c, "span.rating-other-user-rating span", `span[class*="rating"]`))
		review.ReviewID = ReviewID(review)

		result.Reviews = append(result.Reviews, review)
	})

	_, hasLoadMore := doc.Find("div.load-more-data").Attr("data-key")
	result.HasMore = hasLoadMore

	return result, nil
}

// ReviewID derives a stable content hash for dedup across runs.
func ReviewID(r models.ScrapedReview) string {
	prefix := r.ReviewText
	if len(prefix) > 64 {
		prefix = prefix[:64]
	}
	raw := fmt.Sprintf("%s:%s:%s:%s", r.MovieID, r.Reviewer, r.ReviewDate, prefix)
	hash := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(hash[:])
}

func reviewText(c *goquery.Selection) string {
	if text := joinedText(c.Find("div.text.show-more__control")); text != "" {
		return text
	}
	if text := joinedText(c.Find("div.ipc-html-content-inner-div")); text != "" {
		return text
	}

	// Last resort: the longest leaf text block is usually the review.
	longest := ""
	c.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if sel.Children().Length() > 0 {
			return
		}
		if t := strings.TrimSpace(sel.Text()); len(t) > len(longest) {
			longest = t
		}
	})
	if len(longest) > minReviewLength {
		return longest
	}
	return ""
}

func joinedText(sel *goquery.Selection) string {
	var parts []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

func firstText(root *goquery.Selection, selectors ...string) string {
	for _, selector := range selectors {
		if t := strings.TrimSpace(root.Find(selector).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

func parseRating(raw string) int {
	match := digitsPattern.FindString(raw)
	if match == "" {
		return 0
	}
	rating, err := strconv.Atoi(match)
	if err != nil || rating > 10 {
		return 0
	}
	return rating
}
