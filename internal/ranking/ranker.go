package ranking

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ShortReviewSentenceLimit is the sentence count at or below which ranking
// is skipped and the full cleaned text serves as every aspect's snippet.
const ShortReviewSentenceLimit = 3

// Embedder is the boundary to the shared embedding model: one fixed-size
// vector per input string, comparable by cosine similarity within a single
// model instance.
type Embedder interface {
	Embed(texts []string) ([][]float32, error)
}

type scoredSentence struct {
	index int
	score float64
}

// TopKSnippets scores every sentence against every aspect name and builds a
// focused snippet per aspect from the k most similar sentences, joined in
// descending-similarity order. Equal scores keep original sentence order.
// With fewer than k sentences all of them are used; with none, every aspect
// maps to an empty snippet.
func TopKSnippets(e Embedder, sentences, aspects []string, k int) (map[string]string, error) {
	snippets := make(map[string]string, len(aspects))

	if len(sentences) == 0 {
		for _, a := range aspects {
			snippets[a] = ""
		}
		return snippets, nil
	}
	if k > len(sentences) {
		k = len(sentences)
	}

	sentEmb, err := e.Embed(sentences)
	if err != nil {
		return nil, fmt.Errorf("failed to embed sentences: %w", err)
	}
	aspEmb, err := e.Embed(aspects)
	if err != nil {
		return nil, fmt.Errorf("failed to embed aspects: %w", err)
	}
	if len(sentEmb) != len(sentences) || len(aspEmb) != len(aspects) {
		return nil, fmt.Errorf("embedding count mismatch: got %d/%d vectors for %d/%d inputs",
			len(sentEmb), len(aspEmb), len(sentences), len(aspects))
	}

	for i, aspect := range aspects {
		scored := make([]scoredSentence, len(sentences))
		for j := range sentences {
			scored[j] = scoredSentence{index: j, score: CosineSimilarity(aspEmb[i], sentEmb[j])}
		}
		sort.SliceStable(scored, func(a, b int) bool {
			return scored[a].score > scored[b].score
		})

		picked := make([]string, 0, k)
		for _, s := range scored[:k] {
			picked = append(picked, sentences[s.index])
		}
		snippets[aspect] = strings.Join(picked, " ")
	}

	return snippets, nil
}

// CosineSimilarity returns the directional closeness of two vectors in
// [-1, 1]. Zero vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	av := make([]float64, len(a))
	bv := make([]float64, len(b))
	for i := range a {
		av[i] = float64(a[i])
		bv[i] = float64(b[i])
	}

	normA := floats.Norm(av, 2)
	normB := floats.Norm(bv, 2)
	if normA == 0 || normB == 0 {
		return 0
	}
	return floats.Dot(av, bv) / (normA * normB)
}
