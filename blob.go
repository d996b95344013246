package polarity

// A POSTagger assigns part-of-speech tags to tokens in place and returns
// them.
type POSTagger interface {
	Tag(tokens []*Token) []*Token
}

// A Parser produces a shallow parse of text.
type Parser interface {
	Parse(text string) (string, error)
}

// A Classifier assigns a label to text.
type Classifier interface {
	Classify(text string) (string, error)
}

// LexiconOptions selects the components a Blob is built from. Nil fields fall
// back to the built-ins: NewIterTokenizer, NewStopwordExtractor and a
// LexiconAnalyzer over the English lexicon. There is no built-in POSTagger,
// Parser or Classifier.
type LexiconOptions struct {
	Tokenizer   Tokenizer
	NPExtractor NPExtractor
	POSTagger   POSTagger
	Analyzer    Analyzer
	Parser      Parser
	Classifier  Classifier
}

var (
	defaultTokenizer   = NewIterTokenizer()
	defaultNPExtractor = NewStopwordExtractor()
	defaultAnalyzer    = NewLexiconAnalyzer(nil)
)

func (opts LexiconOptions) withDefaults() LexiconOptions {
	if opts.Tokenizer == nil {
		opts.Tokenizer = defaultTokenizer
	}
	if opts.NPExtractor == nil {
		opts.NPExtractor = defaultNPExtractor
	}
	if opts.Analyzer == nil {
		opts.Analyzer = defaultAnalyzer
	}
	return opts
}

// A Blob is a span of text analyzed with a fixed set of components. Results
// are computed on first use and cached; a Blob is not safe for concurrent use.
type Blob struct {
	Text string

	opts      LexiconOptions
	tokens    []*Token
	sentiment *Sentiment
}

// NewBlob returns a Blob over text.
func NewBlob(text string, opts LexiconOptions) *Blob {
	return &Blob{Text: text, opts: opts.withDefaults()}
}

// Tokens returns the Blob's tokens, tagged if a POSTagger is set.
func (b *Blob) Tokens() []*Token {
	if b.tokens == nil {
		b.tokens = b.opts.Tokenizer.Tokenize(b.Text)
		if b.opts.POSTagger != nil {
			b.tokens = b.opts.POSTagger.Tag(b.tokens)
		}
	}
	return b.tokens
}

// Tags returns the part-of-speech tag of each token. Tags are empty without
// a POSTagger.
func (b *Blob) Tags() []string {
	tokens := b.Tokens()
	tags := make([]string, len(tokens))
	for i, tok := range tokens {
		tags[i] = tok.Tag
	}
	return tags
}

// NounPhrases returns the noun phrases found by the Blob's NPExtractor.
func (b *Blob) NounPhrases() []string {
	return b.opts.NPExtractor.Extract(b.Tokens())
}

// Sentiment returns the Blob's sentiment as scored by its Analyzer.
func (b *Blob) Sentiment() Sentiment {
	if b.sentiment == nil {
		s := b.opts.Analyzer.Analyze(b.Text, b.Tokens())
		b.sentiment = &s
	}
	return *b.sentiment
}

// Polarity is shorthand for Sentiment().Polarity.
func (b *Blob) Polarity() float64 {
	return b.Sentiment().Polarity
}

// Parse returns the Blob's parse, or ErrNoParser.
func (b *Blob) Parse() (string, error) {
	if b.opts.Parser == nil {
		return "", ErrNoParser
	}
	return b.opts.Parser.Parse(b.Text)
}

// Classify returns the Blob's label, or ErrNoClassifier.
func (b *Blob) Classify() (string, error) {
	if b.opts.Classifier == nil {
		return "", ErrNoClassifier
	}
	return b.opts.Classifier.Classify(b.Text)
}
