package analysis

import (
	"context"
	"sync"

	"github.com/jonreiter/govader"

	"github.com/reelsense/reelsense/internal/models"
	"github.com/reelsense/reelsense/internal/ranking"
)

const (
	lexiconPositiveCutoff = 0.20
	lexiconNegativeCutoff = -0.20
)

var (
	vaderOnce     sync.Once
	vaderAnalyzer *govader.SentimentIntensityAnalyzer
)

// LexiconStrategy scores aspect snippets with the VADER lexicon. It is the
// cheap offline baseline: no network, no ONNX runtime. With a nil Embedder
// every aspect is scored against the full cleaned review.
type LexiconStrategy struct {
	Embedder ranking.Embedder
	TopK     int

	segment func(string) ([]string, error)
}

func NewLexiconStrategy(topK int) *LexiconStrategy {
	return &LexiconStrategy{TopK: topK}
}

func (s *LexiconStrategy) Classify(ctx context.Context, review string, aspects []string) ([]models.SentimentRow, error) {
	vaderOnce.Do(func() {
		vaderAnalyzer = govader.NewSentimentIntensityAnalyzer()
	})

	snippets := aspectSnippets(snippetSource{
		embedder: s.Embedder,
		topK:     s.TopK,
		segment:  s.segment,
	}, review, aspects)

	rows := make([]models.SentimentRow, 0, len(aspects))
	for _, aspect := range aspects {
		text, ok := snippets[aspect]
		if !ok {
			text = review
		}

		compound := vaderAnalyzer.PolarityScores(text).Compound

		label := models.SentimentNeutral
		if compound >= lexiconPositiveCutoff {
			label = models.SentimentPositive
		} else if compound <= lexiconNegativeCutoff {
			label = models.SentimentNegative
		}

		rows = append(rows, models.SentimentRow{
			Aspect:     aspect,
			Sentiment:  label,
			Confidence: round3(abs(compound)),
		})
	}
	return rows, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
