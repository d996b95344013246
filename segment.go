package polarity

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// SenterName is the pipeline name of the sentence segmentation stage. The
// polarity stage scores sentences only when a stage of this name precedes
// it.
const SenterName = "senter"

// Segmenter splits a Document into sentences with the English Punkt model.
type Segmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

var punkt = sync.OnceValues(func() (*sentences.DefaultSentenceTokenizer, error) {
	return english.NewSentenceTokenizer(nil)
})

// NewSegmenter returns a segmentation stage. The Punkt model is loaded once
// per process.
func NewSegmenter() (*Segmenter, error) {
	tok, err := punkt()
	if err != nil {
		return nil, err
	}
	return &Segmenter{tokenizer: tok}, nil
}

// Segment returns the sentences of text with surrounding whitespace trimmed.
// Whitespace-only text has no sentences.
func (s *Segmenter) Segment(text string) []*Sentence {
	var sents []*Sentence
	for _, span := range s.tokenizer.Tokenize(text) {
		start := span.Start + len(span.Text) - len(strings.TrimLeftFunc(span.Text, unicode.IsSpace))
		end := span.Start + len(strings.TrimRightFunc(span.Text, unicode.IsSpace))
		if start >= end {
			continue
		}
		sents = append(sents, &Sentence{Text: text[start:end], Start: start, End: end})
	}
	return sents
}

// Process replaces doc's sentences.
func (s *Segmenter) Process(ctx context.Context, doc *Document) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc.SetSentences(s.Segment(doc.Text))
	return doc, nil
}

func init() {
	RegisterFactory(SenterName, func(_ *Pipeline, _ string, _ any) (Stage, error) {
		return NewSegmenter()
	})
}
