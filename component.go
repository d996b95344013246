package polarity

import (
	"context"
)

// ComponentName is the factory name of the polarity stage.
const ComponentName = "polarity"

// Component is the pipeline stage that writes a polarity score to a
// Document and, when sentence-level scoring is on, to each of its
// sentences. Its backend and granularity are fixed at construction.
type Component struct {
	cfg       Config
	sentences bool
	scorer    scorer
}

// scorer is one of lexiconScorer or neuralScorer.
type scorer interface {
	scoreSentences(ctx context.Context, texts []string) ([]float64, error)
	scoreDoc(ctx context.Context, text string) (float64, error)
	Close() error
}

type componentOptions struct {
	lexicon LexiconOptions
	loader  Loader
}

// A ComponentOpt adjusts how NewComponent builds its backend.
type ComponentOpt func(*componentOptions)

// WithLexiconOptions supplies concrete lexicon backend components. Non-nil
// fields take precedence over the names in the configuration.
func WithLexiconOptions(opts LexiconOptions) ComponentOpt {
	return func(o *componentOptions) {
		o.lexicon = opts
	}
}

// WithLoader loads the neural runtime with loader instead of the runtime
// named in the configuration.
func WithLoader(loader Loader) ComponentOpt {
	return func(o *componentOptions) {
		o.loader = loader
	}
}

// NewComponent builds a polarity stage from cfg. sentencizer reports
// whether the pipeline segments documents into sentences ahead of this
// stage; sentence scores are written only if it and cfg.SentencePolarity
// are both true.
//
// With the neural backend the model id is checked here, but the model itself
// is loaded by the first document processed.
func NewComponent(cfg Config, sentencizer bool, opts ...ComponentOpt) (*Component, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o componentOptions
	for _, applyOpt := range opts {
		applyOpt(&o)
	}

	c := &Component{
		cfg:       cfg,
		sentences: sentencizer && cfg.SentencePolarity,
	}
	for _, ext := range c.Extensions() {
		SetExtension(ext)
	}

	if cfg.UseNeuralBackend {
		nb, err := NewNeuralBackend(cfg.Neural, o.loader)
		if err != nil {
			return nil, err
		}
		c.scorer = &neuralScorer{backend: nb}
		return c, nil
	}

	lexOpts, err := ResolveLexiconOptions(cfg.Lexicon)
	if err != nil {
		return nil, err
	}
	c.scorer = &lexiconScorer{backend: NewLexiconBackend(lexOpts.merge(o.lexicon))}
	return c, nil
}

// Extensions implements Extender.
func (c *Component) Extensions() []Extension {
	return polarityExtensions()
}

// SentenceLevel reports whether the component scores sentences.
func (c *Component) SentenceLevel() bool {
	return c.sentences
}

// Config returns the configuration the component was built with.
func (c *Component) Config() Config {
	return c.cfg
}

// Process scores doc and its sentences and writes the scores to their
// polarity slots. Nothing is written unless every score succeeds.
func (c *Component) Process(ctx context.Context, doc *Document) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sents []*Sentence
	if c.sentences {
		sents = doc.Sentences()
	}

	texts := make([]string, len(sents))
	for i, s := range sents {
		texts[i] = s.Text
	}
	sentScores, err := c.scorer.scoreSentences(ctx, texts)
	if err != nil {
		return nil, err
	}
	docScore, err := c.scorer.scoreDoc(ctx, doc.Text)
	if err != nil {
		return nil, err
	}

	for i, s := range sents {
		if err := s.SetAttr(PolarityAttr, sentScores[i]); err != nil {
			return nil, err
		}
	}
	if err := doc.SetAttr(PolarityAttr, docScore); err != nil {
		return nil, err
	}
	return doc, nil
}

// Close releases the backend's resources.
func (c *Component) Close() error {
	return c.scorer.Close()
}

type lexiconScorer struct {
	backend *LexiconBackend
}

func (ls *lexiconScorer) scoreSentences(_ context.Context, texts []string) ([]float64, error) {
	scores := make([]float64, len(texts))
	for i, text := range texts {
		scores[i] = ls.backend.Score(text)
	}
	return scores, nil
}

func (ls *lexiconScorer) scoreDoc(_ context.Context, text string) (float64, error) {
	return ls.backend.Score(text), nil
}

func (ls *lexiconScorer) Close() error { return nil }

// neuralScorer sends a document's sentences as one batch and the document
// text as a second, separate batch.
type neuralScorer struct {
	backend *NeuralBackend
}

func (ns *neuralScorer) scoreSentences(ctx context.Context, texts []string) ([]float64, error) {
	if len(texts) == 0 {
		return []float64{}, nil
	}
	dists, err := ns.backend.ScoreBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	return NormalizeAll(dists)
}

func (ns *neuralScorer) scoreDoc(ctx context.Context, text string) (float64, error) {
	dists, err := ns.backend.ScoreBatch(ctx, []string{text})
	if err != nil {
		return 0, err
	}
	return Normalize(dists[0])
}

func (ns *neuralScorer) Close() error {
	return ns.backend.Close()
}

func init() {
	RegisterFactory(ComponentName, func(p *Pipeline, _ string, settings any) (Stage, error) {
		cfg, err := decodeSettings(settings)
		if err != nil {
			return nil, err
		}
		return NewComponent(cfg, p.HasPipe(SenterName))
	})
}
