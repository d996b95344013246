package polarity

import (
	"strings"

	"github.com/bbalet/stopwords"
)

// An NPExtractor finds noun phrases in a tokenized span of text.
type NPExtractor interface {
	Extract(tokens []*Token) []string
}

// stopwordExtractor treats runs of non-stop words as candidate phrases. A
// run of two or more words is a phrase; a single word is one only when it
// has been tagged as a noun.
type stopwordExtractor struct {
	langCode string
}

// NewStopwordExtractor returns the built-in English phrase extractor.
func NewStopwordExtractor() NPExtractor {
	return &stopwordExtractor{langCode: "en"}
}

func (e *stopwordExtractor) Extract(tokens []*Token) []string {
	var (
		phrases []string
		run     []*Token
	)

	flush := func() {
		if len(run) > 1 || (len(run) == 1 && strings.HasPrefix(run[0].Tag, "NN")) {
			words := make([]string, len(run))
			for i, tok := range run {
				words[i] = strings.ToLower(tok.Text)
			}
			phrases = append(phrases, strings.Join(words, " "))
		}
		run = run[:0]
	}

	for _, tok := range tokens {
		if !isContentWord(tok) || e.isStopWord(tok.Text) {
			flush()
			continue
		}
		run = append(run, tok)
	}
	flush()
	return phrases
}

// isStopWord probes the stop word list one word at a time; the library
// replaces a stop word with whitespace.
func (e *stopwordExtractor) isStopWord(word string) bool {
	return strings.TrimSpace(stopwords.CleanString(word, e.langCode, false)) == ""
}
