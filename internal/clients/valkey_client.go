package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

const VALKEY_SCRAPED_REVIEWS_KEY = "imdb:scraped_reviews"

type ValkeyClient struct {
	Client valkey.Client
}

// GetValkeyClient returns the shared Valkey client, or nil when
// VALKEY_INIT_ADDRESS is unset. The scraper treats a nil client as
// "dedup within this run only".
func GetValkeyClient() *ValkeyClient {
	valkeyOnce.Do(func() {
		valkeyAddr := os.Getenv("VALKEY_INIT_ADDRESS")
		if valkeyAddr == "" {
			slog.Warn("[ValkeyClient] VALKEY_INIT_ADDRESS not set, review dedup limited to this run")
			return
		}

		opts := valkey.ClientOption{
			InitAddress:      []string{valkeyAddr},
			Password:         os.Getenv("VALKEY_PASSWORD"),
			ConnWriteTimeout: 5 * time.Second,
			SelectDB:         0,
		}
		if os.Getenv("VALKEY_TLS") == "true" {
			opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
		}

		client, err := valkey.NewClient(opts)
		if err != nil {
			slog.Error("[ValkeyClient] Failed to create Valkey client",
				slog.String("error", err.Error()))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		if resp := client.Do(ctx, client.B().Ping().Build()); resp.Error() != nil {
			slog.Error("[ValkeyClient] Failed to ping Valkey",
				slog.String("error", resp.Error().Error()))
			client.Close()
			return
		}

		slog.Info("[ValkeyClient] Successfully connected to valkey")
		valkeyInstance = &ValkeyClient{Client: client}
	})
	return valkeyInstance
}

// SeenReview reports whether the review id was recorded by a previous run.
func (vc *ValkeyClient) SeenReview(ctx context.Context, reviewID string) (bool, error) {
	resp := vc.Client.Do(ctx, vc.Client.B().Sismember().
		Key(VALKEY_SCRAPED_REVIEWS_KEY).Member(reviewID).Build())
	seen, err := resp.AsBool()
	if err != nil {
		return false, fmt.Errorf("[ValkeyClient] failed to check review id: %w", err)
	}
	return seen, nil
}

// MarkReviewSeen records the review id for future runs.
func (vc *ValkeyClient) MarkReviewSeen(ctx context.Context, reviewID string) error {
	resp := vc.Client.Do(ctx, vc.Client.B().Sadd().
		Key(VALKEY_SCRAPED_REVIEWS_KEY).Member(reviewID).Build())
	if err := resp.Error(); err != nil {
		return fmt.Errorf("[ValkeyClient] failed to record review id: %w", err)
	}
	return nil
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.Client.Close()
	}
}
