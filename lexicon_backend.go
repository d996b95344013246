package polarity

// LexiconBackend scores text with a Blob built from a fixed set of
// components. Each call is independent and never leaves the process.
type LexiconBackend struct {
	opts LexiconOptions
}

// NewLexiconBackend returns a backend that builds every Blob from opts.
func NewLexiconBackend(opts LexiconOptions) *LexiconBackend {
	return &LexiconBackend{opts: opts}
}

// Score returns the polarity of text, roughly in [-1, 1].
func (lb *LexiconBackend) Score(text string) float64 {
	return NewBlob(text, lb.opts).Polarity()
}

// Options returns the components the backend was built with. Unset fields
// mean the Blob's built-ins.
func (lb *LexiconBackend) Options() LexiconOptions {
	return lb.opts
}

// ResolveLexiconOptions looks up the named components of cfg in the
// registries. Empty names stay nil, selecting the built-ins.
func ResolveLexiconOptions(cfg LexiconConfig) (LexiconOptions, error) {
	var (
		opts LexiconOptions
		err  error
	)
	if opts.Tokenizer, err = build(tokenizers, cfg.Tokenizer); err != nil {
		return LexiconOptions{}, err
	}
	if opts.NPExtractor, err = build(npExtractors, cfg.NPExtractor); err != nil {
		return LexiconOptions{}, err
	}
	if opts.POSTagger, err = build(posTaggers, cfg.POSTagger); err != nil {
		return LexiconOptions{}, err
	}
	if opts.Parser, err = build(parsers, cfg.Parser); err != nil {
		return LexiconOptions{}, err
	}
	if opts.Classifier, err = build(classifiers, cfg.Classifier); err != nil {
		return LexiconOptions{}, err
	}

	if cfg.ExternalLexicon == "" {
		if opts.Analyzer, err = build(analyzers, cfg.Analyzer); err != nil {
			return LexiconOptions{}, err
		}
		return opts, nil
	}

	// An external lexicon extends the word list of the lexicon analyzer.
	if cfg.Analyzer != "" && cfg.Analyzer != "lexicon" {
		return LexiconOptions{}, &ConfigError{
			Field:  "lexicon_backend_options.external_lexicon",
			Value:  cfg.ExternalLexicon,
			Reason: "only the lexicon analyzer accepts an external lexicon, not " + cfg.Analyzer,
		}
	}
	lexicon, err := LoadSentimentLexicon(cfg.ExternalLexicon)
	if err != nil {
		return LexiconOptions{}, &ConfigError{
			Field: "lexicon_backend_options.external_lexicon",
			Value: cfg.ExternalLexicon,
			Err:   err,
		}
	}
	opts.Analyzer = NewLexiconAnalyzer(lexicon)
	return opts, nil
}

// merge returns opts with every non-nil field of over applied.
func (opts LexiconOptions) merge(over LexiconOptions) LexiconOptions {
	if over.Tokenizer != nil {
		opts.Tokenizer = over.Tokenizer
	}
	if over.NPExtractor != nil {
		opts.NPExtractor = over.NPExtractor
	}
	if over.POSTagger != nil {
		opts.POSTagger = over.POSTagger
	}
	if over.Analyzer != nil {
		opts.Analyzer = over.Analyzer
	}
	if over.Parser != nil {
		opts.Parser = over.Parser
	}
	if over.Classifier != nil {
		opts.Classifier = over.Classifier
	}
	return opts
}
