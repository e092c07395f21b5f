package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/reelsense/reelsense/config"
	"github.com/reelsense/reelsense/internal/models"
)

// Analyzer dispatches a review to the selected strategy and normalizes the
// result into the two-column table front-ends render. Analyze never fails:
// every error and panic along the way becomes a visible error row.
type Analyzer struct {
	strategies     map[models.Method]Strategy
	defaultAspects []string
}

func NewAnalyzer(defaultAspects []string) *Analyzer {
	return &Analyzer{
		strategies:     make(map[models.Method]Strategy),
		defaultAspects: defaultAspects,
	}
}

// NewDefaultAnalyzer wires the three production strategies against the
// shared model singletons.
func NewDefaultAnalyzer() *Analyzer {
	a := NewAnalyzer(config.Aspects())
	a.Register(models.MethodLocal, NewLocalStrategy(config.NLIThreshold(), config.DEFAULT_TOP_K))
	a.Register(models.MethodRemote, NewRemoteStrategy(config.OpenAIModel(), config.OpenAIMaxTokens()))
	a.Register(models.MethodLexicon, NewLexiconStrategy(config.DEFAULT_TOP_K))
	return a
}

func (a *Analyzer) Register(method models.Method, strategy Strategy) {
	a.strategies[method] = strategy
}

func (a *Analyzer) Analyze(ctx context.Context, review string, aspects []string, method models.Method) (table models.ResultTable) {
	// The model runtimes can panic; the caller still gets a renderable
	// table.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[Analyzer] Analysis panicked",
				slog.Any("panic", r),
				slog.String("method", string(method)))
			table = errorTable(fmt.Errorf("panic: %v", r))
		}
	}()

	if review == "" {
		return models.ResultTable{{
			Aspect:    models.AspectNoReview,
			Sentiment: models.NoReviewSentiment,
		}}
	}
	if len(aspects) == 0 {
		aspects = a.defaultAspects
	}

	strategy, ok := a.strategies[method]
	if !ok {
		return errorTable(fmt.Errorf("unknown analysis method %q", method))
	}

	rows, err := strategy.Classify(ctx, review, aspects)
	if err != nil {
		slog.Error("[Analyzer] Strategy failed",
			slog.String("method", string(method)),
			slog.String("error", err.Error()))
		return errorTable(err)
	}

	// Strategy payloads are not trusted to carry the canonical shape;
	// keep only the two named columns and default anything missing.
	table = make(models.ResultTable, 0, len(rows))
	for _, row := range rows {
		table = append(table, models.ResultRow{
			Aspect:    row.Aspect,
			Sentiment: row.Sentiment,
		})
	}
	return table
}

func errorTable(err error) models.ResultTable {
	return models.ResultTable{{
		Aspect:    models.AspectError,
		Sentiment: errorKind(err) + ": " + err.Error(),
	}}
}

func errorKind(err error) string {
	var parseErr *ParseError
	switch {
	case errors.As(err, &parseErr):
		return "ParseError"
	case errors.Is(err, config.ErrMissingAPIKey):
		return "ConfigError"
	default:
		return "AnalysisError"
	}
}
