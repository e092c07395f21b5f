package textproc

import (
	"html"
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	lineBreakPattern = regexp.MustCompile(`(?i)<br\s*/?>`)
	htmlTagPattern   = regexp.MustCompile(`<[^>]+>`)
	linkPattern      = regexp.MustCompile(`\[(.*?)\]\(https?://[^\s)]+\)`)
	urlPattern       = regexp.MustCompile(`https?://\S+|www\.\S+`)
	gluedSentences   = regexp.MustCompile(`([.!?])([A-Za-z])`)
)

// RemoveLinks keeps the text of markdown links and drops bare URLs.
func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

// FlattenMarkup renders markdown/HTML review markup down to plain text.
func FlattenMarkup(input string) string {
	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := htmlTagPattern.ReplaceAllString(string(rendered), " ")
	return RemoveLinks(html.UnescapeString(plain))
}

// Clean normalizes raw review text: line-break markup becomes a space,
// residual markup is flattened, run-together sentences get a space after
// their closing punctuation, and whitespace collapses to single spaces.
// Clean(Clean(x)) == Clean(x).
func Clean(raw string) string {
	cleaned := lineBreakPattern.ReplaceAllString(raw, " ")
	cleaned = FlattenMarkup(cleaned)
	cleaned = gluedSentences.ReplaceAllString(cleaned, "$1 $2")
	return strings.Join(strings.Fields(cleaned), " ")
}
