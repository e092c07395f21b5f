package analysis

import (
	"context"
	"testing"

	"github.com/reelsense/reelsense/internal/models"
)

func TestLexiconStrategyClassify(t *testing.T) {
	tests := []struct {
		name   string
		review string
		want   string
	}{
		{
			name:   "positive language",
			review: "This movie was wonderful, a brilliant and joyous triumph.",
			want:   models.SentimentPositive,
		},
		{
			name:   "negative language",
			review: "A horrible, boring disaster. I hated every awful minute.",
			want:   models.SentimentNegative,
		},
		{
			name:   "neutral language",
			review: "The film runs two hours and was shot in Vancouver.",
			want:   models.SentimentNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := NewLexiconStrategy(3)

			rows, err := strategy.Classify(context.Background(), tt.review, []string{"overall"})
			if err != nil {
				t.Fatalf("Classify returned error: %v", err)
			}
			if len(rows) != 1 {
				t.Fatalf("got %d rows, want 1", len(rows))
			}
			if rows[0].Sentiment != tt.want {
				t.Fatalf("sentiment = %q (confidence %v), want %q", rows[0].Sentiment, rows[0].Confidence, tt.want)
			}
			if rows[0].Confidence < 0 || rows[0].Confidence > 1 {
				t.Fatalf("confidence = %v, want a magnitude in [0, 1]", rows[0].Confidence)
			}
		})
	}
}

func TestLexiconStrategyRowPerAspect(t *testing.T) {
	strategy := NewLexiconStrategy(3)

	aspects := []string{"acting", "pacing", "visuals"}
	rows, err := strategy.Classify(context.Background(), "A perfectly fine movie.", aspects)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if len(rows) != len(aspects) {
		t.Fatalf("got %d rows, want %d", len(rows), len(aspects))
	}
	for i, aspect := range aspects {
		if rows[i].Aspect != aspect {
			t.Fatalf("row %d aspect = %q, want %q", i, rows[i].Aspect, aspect)
		}
	}
}
