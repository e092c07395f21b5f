package analysis

import (
	"context"
	"log/slog"
	"math"

	"github.com/reelsense/reelsense/internal/models"
	"github.com/reelsense/reelsense/internal/ranking"
	"github.com/reelsense/reelsense/internal/textproc"
)

// SentimentLabels is the candidate label set the local classifier scores
// each snippet against.
var SentimentLabels = []string{
	models.SentimentPositive,
	models.SentimentNegative,
	models.SentimentNeutral,
}

// Strategy is one interchangeable sentiment inference implementation.
// Rows come back in input aspect order for the local strategies and in
// payload order for the generative one.
type Strategy interface {
	Classify(ctx context.Context, review string, aspects []string) ([]models.SentimentRow, error)
}

// ZeroShotClassifier is the boundary to the natural-language-inference
// model: text scored against candidate labels under a hypothesis template
// naming the aspect, winner first.
type ZeroShotClassifier interface {
	ClassifyAspect(text, aspect string, labels []string) (label string, score float64, err error)
}

type snippetSource struct {
	embedder ranking.Embedder
	topK     int
	segment  func(string) ([]string, error)
}

// aspectSnippets builds the focused text per aspect. Every failure inside
// preprocessing degrades to the full cleaned review rather than aborting
// the analysis.
func aspectSnippets(src snippetSource, review string, aspects []string) map[string]string {
	cleaned := textproc.Clean(review)

	segment := src.segment
	if segment == nil {
		segment = textproc.Sentences
	}

	sentences, err := segment(cleaned)
	if err != nil {
		slog.Warn("[Analysis] Sentence segmentation failed, falling back to full review",
			slog.String("error", err.Error()))
		return fullTextSnippets(cleaned, aspects)
	}

	// Ranking adds nothing on very short reviews and costs model calls.
	if len(sentences) <= ranking.ShortReviewSentenceLimit || src.embedder == nil {
		return fullTextSnippets(cleaned, aspects)
	}

	snippets, err := ranking.TopKSnippets(src.embedder, sentences, aspects, src.topK)
	if err != nil {
		slog.Warn("[Analysis] Aspect ranking failed, falling back to full review",
			slog.String("error", err.Error()))
		return fullTextSnippets(cleaned, aspects)
	}
	return snippets
}

func fullTextSnippets(text string, aspects []string) map[string]string {
	snippets := make(map[string]string, len(aspects))
	for _, a := range aspects {
		snippets[a] = text
	}
	return snippets
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
