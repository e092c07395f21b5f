package models

const (
	SentimentPositive     = "positive"
	SentimentNegative     = "negative"
	SentimentNeutral      = "neutral"
	SentimentNotMentioned = "not_mentioned"
	SentimentError        = "error"
)

// Sentinel aspect values used for whole-table conditions. A table carrying
// one of these has exactly one row.
const (
	AspectNoReview = ""
	AspectError    = "(error)"

	NoReviewSentiment = "(no review)"
)

// SentimentRow is a single aspect verdict as emitted by a strategy.
// Confidence is only populated by the local strategies; the generative
// strategy supplies sentiment alone.
type SentimentRow struct {
	Aspect     string  `json:"aspect"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence,omitempty"`
}

// ResultRow is the normalized two-column row handed to front-ends.
type ResultRow struct {
	Aspect    string `json:"aspect"`
	Sentiment string `json:"sentiment"`
}

// ResultTable is what Analyze returns: one row per requested aspect in
// request order, or a single sentinel row.
type ResultTable []ResultRow

// Method selects one of the interchangeable sentiment inference strategies.
type Method string

const (
	MethodRemote  Method = "llm"
	MethodLocal   Method = "nli"
	MethodLexicon Method = "vader"
)
