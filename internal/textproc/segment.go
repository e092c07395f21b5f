package textproc

import (
	"fmt"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

var (
	tokenizerOnce sync.Once
	tokenizer     *sentences.DefaultSentenceTokenizer
	tokenizerErr  error
)

// Sentences splits cleaned text into sentence units using the Punkt
// boundary model. Callers are expected to fall back to treating the whole
// text as a single segment when this fails.
func Sentences(text string) ([]string, error) {
	tokenizerOnce.Do(func() {
		tokenizer, tokenizerErr = english.NewSentenceTokenizer(nil)
	})
	if tokenizerErr != nil {
		return nil, fmt.Errorf("failed to load sentence tokenizer: %w", tokenizerErr)
	}

	var out []string
	for _, s := range tokenizer.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}
