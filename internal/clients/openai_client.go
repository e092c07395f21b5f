package clients

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/reelsense/reelsense/config"
)

const (
	openAIRequestTimeout = 60 * time.Second
)

var (
	openAIClientInstance *OpenAIClient
	openAIOnce           sync.Once
	openAIInitErr        error
)

type OpenAIClient struct {
	Client *openai.Client
}

// GetOpenAIClient lazily builds the process-wide OpenAI client. A missing
// API key is a configuration error reported to the caller rather than a
// silent degradation; the client is never constructed without one.
func GetOpenAIClient() (*OpenAIClient, error) {
	openAIOnce.Do(func() {
		apiKey, err := config.OpenAIAPIKey()
		if err != nil {
			openAIInitErr = err
			return
		}

		cfg := openai.DefaultConfig(apiKey)
		cfg.HTTPClient = &http.Client{
			Timeout: openAIRequestTimeout,
		}

		openAIClientInstance = &OpenAIClient{
			Client: openai.NewClientWithConfig(cfg),
		}
		slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout",
			slog.Duration("timeout", openAIRequestTimeout))
	})
	return openAIClientInstance, openAIInitErr
}
