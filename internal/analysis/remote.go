package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/reelsense/reelsense/internal/clients"
	"github.com/reelsense/reelsense/internal/models"
)

const rawResponsePreviewLen = 200

// ChatCompleter is the slice of the OpenAI client the remote strategy
// needs; *openai.Client satisfies it.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// RemoteStrategy submits the whole review and aspect list to a generative
// model in a single structured prompt and parses a strict JSON array back.
// The model's output shape is treated as unreliable; see ParseAspectSentiments.
type RemoteStrategy struct {
	// Client defaults to the shared OpenAI singleton when nil. The
	// credential check happens at invocation, before any network call.
	Client    ChatCompleter
	Model     string
	MaxTokens int
}

func NewRemoteStrategy(model string, maxTokens int) *RemoteStrategy {
	return &RemoteStrategy{Model: model, MaxTokens: maxTokens}
}

func (s *RemoteStrategy) Classify(ctx context.Context, review string, aspects []string) ([]models.SentimentRow, error) {
	completer := s.Client
	if completer == nil {
		client, err := clients.GetOpenAIClient()
		if err != nil {
			return nil, err
		}
		completer = client.Client
	}

	resp, err := completer.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(review, aspects)},
		},
		// The client omits a zero temperature from the request body, so the
		// smallest nonzero value stands in for 0.
		Temperature: math.SmallestNonzeroFloat32,
		MaxTokens:   s.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return ParseAspectSentiments(resp.Choices[0].Message.Content)
}

// BuildPrompt assembles the single user message: task, literal aspect list,
// the allowed sentiment values, a strict-JSON instruction, and the review
// verbatim.
func BuildPrompt(review string, aspects []string) string {
	return fmt.Sprintf(`You are analyzing a MOVIE REVIEW for aspect-based sentiment.
Aspects: %s.
For each aspect, return one of: "positive","negative","neutral","not_mentioned".
Return STRICT JSON ONLY as an array of objects:
[{"aspect":"acting","sentiment":"positive"}, ...]
Review:
%s`, strings.Join(aspects, ", "), review)
}

// ParseError reports that every parse attempt on a model response failed.
// Preview carries a truncated prefix of the raw response for diagnosis.
type ParseError struct {
	Preview string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response as JSON: %v (response was: %s...)", e.Err, e.Preview)
}

func (e *ParseError) Unwrap() error { return e.Err }

var codeFencePattern = regexp.MustCompile("(?i)^```(?:json)?\\s*|\\s*```$")

// ParseAspectSentiments decodes a model response into sentiment rows,
// trying in order: the trimmed response as-is, the response with code
// fences stripped, and finally the first-[ to last-] substring.
func ParseAspectSentiments(raw string) ([]models.SentimentRow, error) {
	trimmed := strings.TrimSpace(raw)

	if rows, err := decodeAspectArray(trimmed); err == nil {
		return rows, nil
	}

	cleaned := strings.TrimSpace(codeFencePattern.ReplaceAllString(trimmed, ""))
	cleaned = extractArray(cleaned)

	rows, err := decodeAspectArray(cleaned)
	if err != nil {
		return nil, &ParseError{Preview: preview(trimmed), Err: err}
	}
	return rows, nil
}

// decodeAspectArray reads the payload as loosely typed records: absent
// fields default to empty strings and extras are dropped. Validation of
// the aspect set against the request is deliberately not done here.
func decodeAspectArray(s string) ([]models.SentimentRow, error) {
	var items []map[string]any
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, err
	}

	rows := make([]models.SentimentRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.SentimentRow{
			Aspect:    stringField(item, "aspect"),
			Sentiment: stringField(item, "sentiment"),
		})
	}
	return rows, nil
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func extractArray(s string) string {
	start, end := strings.Index(s, "["), strings.LastIndex(s, "]")
	if start != -1 && end > start {
		return s[start : end+1]
	}
	return s
}

func preview(s string) string {
	if len(s) > rawResponsePreviewLen {
		return s[:rawResponsePreviewLen]
	}
	return s
}
