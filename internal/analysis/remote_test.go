package analysis

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/reelsense/reelsense/internal/models"
)

type fakeCompleter struct {
	gotReq openai.ChatCompletionRequest
	resp   string
	err    error
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.gotReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.resp}},
		},
	}, nil
}

func TestParseAspectSentiments(t *testing.T) {
	wantRows := []models.SentimentRow{
		{Aspect: "acting", Sentiment: "positive"},
		{Aspect: "pacing", Sentiment: "negative"},
	}
	payload := `[{"aspect":"acting","sentiment":"positive"},{"aspect":"pacing","sentiment":"negative"}]`

	tests := []struct {
		name string
		raw  string
	}{
		{name: "plain JSON", raw: payload},
		{name: "leading and trailing whitespace", raw: "\n  " + payload + "  \n"},
		{name: "json code fence", raw: "```json\n" + payload + "\n```"},
		{name: "bare code fence", raw: "```\n" + payload + "\n```"},
		{name: "surrounding prose", raw: "Here are the results:\n" + payload + "\nHope that helps!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParseAspectSentiments(tt.raw)
			if err != nil {
				t.Fatalf("ParseAspectSentiments returned error: %v", err)
			}
			if !reflect.DeepEqual(rows, wantRows) {
				t.Fatalf("rows = %v, want %v", rows, wantRows)
			}
		})
	}
}

func TestParseAspectSentimentsDefaultsMissingFields(t *testing.T) {
	raw := `[{"aspect":"pacing"},{"sentiment":"positive","score":0.9},{"aspect":1}]`

	rows, err := ParseAspectSentiments(raw)
	if err != nil {
		t.Fatalf("ParseAspectSentiments returned error: %v", err)
	}
	want := []models.SentimentRow{
		{Aspect: "pacing", Sentiment: ""},
		{Aspect: "", Sentiment: "positive"},
		{Aspect: "", Sentiment: ""},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
}

func TestParseAspectSentimentsFailureCarriesPreview(t *testing.T) {
	raw := "I could not decide on a sentiment for these aspects, sorry. " + strings.Repeat("x", 300)

	_, err := ParseAspectSentiments(raw)
	if err == nil {
		t.Fatal("ParseAspectSentiments accepted garbage")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if len(parseErr.Preview) != rawResponsePreviewLen {
		t.Fatalf("preview length = %d, want %d", len(parseErr.Preview), rawResponsePreviewLen)
	}
	if !strings.Contains(err.Error(), "I could not decide") {
		t.Fatalf("error message %q does not include the response prefix", err.Error())
	}
}

func TestBuildPrompt(t *testing.T) {
	review := "Great acting but the pacing was terrible."
	prompt := BuildPrompt(review, []string{"acting", "pacing"})

	for _, fragment := range []string{
		"Aspects: acting, pacing.",
		`"positive","negative","neutral","not_mentioned"`,
		"STRICT JSON ONLY",
		review,
	} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("prompt missing %q:\n%s", fragment, prompt)
		}
	}
}

func TestRemoteStrategyClassify(t *testing.T) {
	completer := &fakeCompleter{
		resp: "```json\n[{\"aspect\":\"visuals\",\"sentiment\":\"positive\"}]\n```",
	}
	strategy := &RemoteStrategy{Client: completer, Model: "gpt-4o-mini", MaxTokens: 180}

	rows, err := strategy.Classify(context.Background(), "Visuals were stunning.", []string{"visuals"})
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if len(rows) != 1 || rows[0].Aspect != "visuals" || rows[0].Sentiment != "positive" {
		t.Fatalf("rows = %v", rows)
	}

	if completer.gotReq.Model != "gpt-4o-mini" {
		t.Fatalf("request model = %q", completer.gotReq.Model)
	}
	if completer.gotReq.MaxTokens != 180 {
		t.Fatalf("request max tokens = %d", completer.gotReq.MaxTokens)
	}
	if len(completer.gotReq.Messages) != 1 {
		t.Fatalf("request carried %d messages, want 1", len(completer.gotReq.Messages))
	}
	if !strings.Contains(completer.gotReq.Messages[0].Content, "Visuals were stunning.") {
		t.Fatal("prompt does not carry the review verbatim")
	}
}

func TestRemoteStrategyClassifyRequestError(t *testing.T) {
	strategy := &RemoteStrategy{
		Client: &fakeCompleter{err: errors.New("rate limited")},
		Model:  "gpt-4o-mini",
	}

	if _, err := strategy.Classify(context.Background(), "some review", []string{"pacing"}); err == nil {
		t.Fatal("Classify did not surface the request error")
	}
}
