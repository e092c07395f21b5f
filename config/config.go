package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrMissingAPIKey marks an absent remote-service credential.
var ErrMissingAPIKey = errors.New("OpenAI API key not found")

const (
	DEFAULT_EMBEDDING_MODEL = "sentence-transformers/all-MiniLM-L6-v2"
	DEFAULT_ZERO_SHOT_MODEL = "typeform/distilbert-base-uncased-mnli"
	DEFAULT_OPENAI_MODEL    = "gpt-4o-mini"
	DEFAULT_MAX_TOKENS      = 180
	DEFAULT_NLI_THRESHOLD   = 0.55
	DEFAULT_ZSC_THRESHOLD   = 0.60
	DEFAULT_MODEL_DIR       = "./models"
	DEFAULT_TOP_K           = 3
)

// DefaultAspects is the aspect set used when a caller supplies none.
var DefaultAspects = []string{
	"acting_performances",
	"story_plot",
	"pacing",
	"visuals",
	"direction",
	"writing",
}

func EmbeddingModel() string {
	return getString("EMBEDDING_MODEL", DEFAULT_EMBEDDING_MODEL)
}

func ZeroShotModel() string {
	return getString("ZERO_SHOT_MODEL", DEFAULT_ZERO_SHOT_MODEL)
}

func OpenAIModel() string {
	return getString("OPENAI_MODEL", DEFAULT_OPENAI_MODEL)
}

func OpenAIMaxTokens() int {
	return getInt("OPENAI_MAX_TOKENS", DEFAULT_MAX_TOKENS)
}

func NLIThreshold() float64 {
	return getFloat("NLI_THRESHOLD", DEFAULT_NLI_THRESHOLD)
}

func ZSCThreshold() float64 {
	return getFloat("ZSC_THRESHOLD", DEFAULT_ZSC_THRESHOLD)
}

func ModelDir() string {
	return getString("MODEL_DIR", DEFAULT_MODEL_DIR)
}

// Aspects returns the aspect list from ANALYSIS_ASPECTS (comma separated)
// or DefaultAspects when unset.
func Aspects() []string {
	raw := os.Getenv("ANALYSIS_ASPECTS")
	if raw == "" {
		return append([]string(nil), DefaultAspects...)
	}
	var aspects []string
	for _, a := range strings.Split(raw, ",") {
		if a = strings.TrimSpace(a); a != "" {
			aspects = append(aspects, a)
		}
	}
	if len(aspects) == 0 {
		return append([]string(nil), DefaultAspects...)
	}
	return aspects
}

// OpenAIAPIKey fails fast when the credential is missing so a remote
// analysis never gets as far as the network without one.
func OpenAIAPIKey() (string, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return "", fmt.Errorf("%w: set the OPENAI_API_KEY environment variable or add it to a config/envs/.env file", ErrMissingAPIKey)
	}
	return key, nil
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
