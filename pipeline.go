package polarity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// A Stage transforms a Document in place and returns it.
type Stage interface {
	Process(ctx context.Context, doc *Document) (*Document, error)
}

// A Factory builds the stage added to p under name. settings is whatever
// was passed to AddPipe.
type Factory func(p *Pipeline, name string, settings any) (Stage, error)

var factories = newRegistry[Factory]("factory")

// RegisterFactory makes a stage available to Pipeline.AddPipe under name.
func RegisterFactory(name string, f Factory) {
	factories.register(name, f)
}

type pipe struct {
	name  string
	stage Stage
}

// A Pipeline runs an ordered list of named stages over documents.
type Pipeline struct {
	mu    sync.RWMutex
	pipes []pipe

	sentencizer bool
	logger      *log.Logger
	concurrency int
}

// A PipelineOpt represents a setting that changes the pipeline's assembly.
type PipelineOpt func(p *Pipeline)

// WithSentencizer adds the "senter" segmentation stage first.
func WithSentencizer() PipelineOpt {
	return func(p *Pipeline) {
		p.sentencizer = true
	}
}

// WithLogger sets the logger the pipeline reports assembly on. It defaults
// to the package logger.
func WithLogger(l *log.Logger) PipelineOpt {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithConcurrency bounds the number of documents ProcessAll handles at once.
// It defaults to GOMAXPROCS.
func WithConcurrency(n int) PipelineOpt {
	return func(p *Pipeline) {
		p.concurrency = n
	}
}

// NewPipeline returns a Pipeline with no stages other than those its options
// add.
func NewPipeline(opts ...PipelineOpt) (*Pipeline, error) {
	p := &Pipeline{
		logger:      Logger(),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, applyOpt := range opts {
		applyOpt(p)
	}
	if p.concurrency < 1 {
		p.concurrency = 1
	}
	if p.sentencizer {
		if _, err := p.AddPipe(SenterName, nil); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// AddPipe builds a stage with the named factory and appends it. If the stage
// is an Extender, its attribute slots are registered first. A pipeline
// holds at most one stage per name.
func (p *Pipeline) AddPipe(factory string, settings any) (Stage, error) {
	newStage, err := factories.get(factory)
	if err != nil {
		return nil, err
	}
	if p.HasPipe(factory) {
		return nil, fmt.Errorf("polarity: pipeline already has a %q stage", factory)
	}

	stage, err := newStage(p, factory, settings)
	if err != nil {
		return nil, fmt.Errorf("polarity: building %q stage: %w", factory, err)
	}
	if ext, ok := stage.(Extender); ok {
		for _, e := range ext.Extensions() {
			SetExtension(e)
		}
	}

	p.mu.Lock()
	p.pipes = append(p.pipes, pipe{name: factory, stage: stage})
	p.mu.Unlock()

	p.logger.Debug("added pipe", "name", factory, "pipes", p.PipeNames())
	return stage, nil
}

// PipeNames returns the names of the pipeline's stages in order.
func (p *Pipeline) PipeNames() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, len(p.pipes))
	for i, pp := range p.pipes {
		names[i] = pp.name
	}
	return names
}

// HasPipe reports whether the pipeline has a stage called name.
func (p *Pipeline) HasPipe(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, pp := range p.pipes {
		if pp.name == name {
			return true
		}
	}
	return false
}

// GetPipe returns the stage called name.
func (p *Pipeline) GetPipe(name string) (Stage, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, pp := range p.pipes {
		if pp.name == name {
			return pp.stage, true
		}
	}
	return nil, false
}

// NewDoc returns an unprocessed Document over text.
func (p *Pipeline) NewDoc(text string) *Document {
	return &Document{Text: text}
}

// Process runs every stage over a new Document for text.
func (p *Pipeline) Process(ctx context.Context, text string) (*Document, error) {
	return p.ProcessDoc(ctx, p.NewDoc(text))
}

// ProcessDoc runs every stage over doc, in order, stopping at the first
// error.
func (p *Pipeline) ProcessDoc(ctx context.Context, doc *Document) (*Document, error) {
	p.mu.RLock()
	pipes := p.pipes
	p.mu.RUnlock()

	for _, pp := range pipes {
		var err error
		if doc, err = pp.stage.Process(ctx, doc); err != nil {
			return nil, fmt.Errorf("polarity: %s: %w", pp.name, err)
		}
	}
	return doc, nil
}

// ProcessAll processes texts concurrently and returns their documents in
// the order given. The first error cancels the remaining work.
func (p *Pipeline) ProcessAll(ctx context.Context, texts []string) ([]*Document, error) {
	docs := make([]*Document, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, text := range texts {
		g.Go(func() error {
			doc, err := p.Process(ctx, text)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Close closes every stage that holds resources.
func (p *Pipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for _, pp := range p.pipes {
		if c, ok := pp.stage.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
