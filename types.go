package polarity

// A Token represents an individual token of text such as a word or punctuation
// symbol.
type Token struct {
	Tag   string // The token's part-of-speech tag, empty when untagged.
	Text  string // The token's actual content.
	Start int    // Start position in original text
	End   int    // End position in original text
}

// A Sentence represents a segmented portion of a Document's text.
//
// Sentences are owned by their Document; the span is read-only, but each
// sentence carries its own attribute slots (see Extension).
type Sentence struct {
	Text  string // The sentence's text.
	Start int    // Start position in original text
	End   int    // End position in original text

	attrs attrs
}

// String returns the text content of the sentence
func (s *Sentence) String() string {
	return s.Text
}

// Attr returns the value of the named span extension. Unset slots read back
// the extension's registered default; ok is false if name was never registered.
func (s *Sentence) Attr(name string) (any, bool) {
	return s.attrs.get(SpanTarget, name)
}

// SetAttr writes the named span extension, overwriting any previous value.
func (s *Sentence) SetAttr(name string, value any) error {
	return s.attrs.set(SpanTarget, name, value)
}

// Polarity returns the sentence's polarity score. ok is false until the
// polarity stage has written it.
func (s *Sentence) Polarity() (float64, bool) {
	return polarityOf(s.Attr(PolarityAttr))
}

// Sentiment is the lexicon analyzer's view of a span of text.
type Sentiment struct {
	Polarity     float64 // -1.0 (negative) to 1.0 (positive)
	Subjectivity float64 // 0.0 (objective) to 1.0 (subjective)
	Intensity    float64 // 0.0 (neutral) to 1.0 (strong)

	PositiveWords []WordContribution
	NegativeWords []WordContribution
	Negations     []int // Token positions whose sentiment was negated.
}

// WordContribution represents a word's sentiment contribution
type WordContribution struct {
	Word          string
	Position      int
	BaseScore     float64
	AdjustedScore float64
}

func polarityOf(v any, ok bool) (float64, bool) {
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}
