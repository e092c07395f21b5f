package analysis

import (
	"context"
	"log/slog"

	"github.com/reelsense/reelsense/internal/clients"
	"github.com/reelsense/reelsense/internal/models"
	"github.com/reelsense/reelsense/internal/ranking"
)

// LocalStrategy runs zero-shot natural-language-inference classification on
// aspect-focused snippets of the review. Everything happens in-process; the
// only shared state is the lazily built model singletons.
type LocalStrategy struct {
	// Embedder and Classifier default to the shared hugot pipelines when
	// left nil.
	Embedder   ranking.Embedder
	Classifier ZeroShotClassifier
	Threshold  float64
	TopK       int

	segment func(string) ([]string, error)
}

func NewLocalStrategy(threshold float64, topK int) *LocalStrategy {
	return &LocalStrategy{Threshold: threshold, TopK: topK}
}

func (s *LocalStrategy) Classify(ctx context.Context, review string, aspects []string) ([]models.SentimentRow, error) {
	embedder, classifier, err := s.deps()
	if err != nil {
		return nil, err
	}

	snippets := aspectSnippets(snippetSource{
		embedder: embedder,
		topK:     s.TopK,
		segment:  s.segment,
	}, review, aspects)

	rows := make([]models.SentimentRow, 0, len(aspects))
	for _, aspect := range aspects {
		text, ok := snippets[aspect]
		if !ok {
			text = review
		}

		label, score, err := classifier.ClassifyAspect(text, aspect, SentimentLabels)
		if err != nil {
			// One aspect's failure must not abort its siblings.
			slog.Warn("[LocalStrategy] Classification failed for aspect",
				slog.String("aspect", aspect),
				slog.String("error", err.Error()))
			rows = append(rows, models.SentimentRow{
				Aspect:    aspect,
				Sentiment: models.SentimentError,
			})
			continue
		}

		// A low winning score means the aspect likely is not discussed,
		// not that the polarity call is wrong.
		if score < s.Threshold {
			label = models.SentimentNotMentioned
		}
		rows = append(rows, models.SentimentRow{
			Aspect:     aspect,
			Sentiment:  label,
			Confidence: round3(score),
		})
	}

	return rows, nil
}

func (s *LocalStrategy) deps() (ranking.Embedder, ZeroShotClassifier, error) {
	if s.Embedder != nil && s.Classifier != nil {
		return s.Embedder, s.Classifier, nil
	}
	client, err := clients.GetHugotClient()
	if err != nil {
		return nil, nil, err
	}

	embedder := s.Embedder
	if embedder == nil {
		embedder = client
	}
	classifier := s.Classifier
	if classifier == nil {
		classifier = client
	}
	return embedder, classifier, nil
}
