package polarity

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// SupportedModelID is the only model the neural backend accepts: a
// three-way (negative, neutral, positive) financial sentiment classifier.
const SupportedModelID = "ProsusAI/finbert"

// A Distribution is a probability distribution over a model's labels, in
// the model's label order.
type Distribution struct {
	Labels []string
	Probs  []float64
}

// Prob returns the probability of label. ok is false if the distribution has
// no such label.
func (d Distribution) Prob(label string) (float64, bool) {
	for i, l := range d.Labels {
		if l == label && i < len(d.Probs) {
			return d.Probs[i], true
		}
	}
	return 0, false
}

// NeuralBackend scores texts with a sequence-classification model. The
// model runtime is loaded on first use and shared by all later calls.
type NeuralBackend struct {
	opts   NeuralConfig
	loader Loader

	load singleflight.Group
	mu   sync.RWMutex
	rt   Runtime
}

// NewNeuralBackend validates opts and returns a backend that has not yet
// loaded its runtime. A nil loader means the runtime registered under
// opts.Runtime. An unsupported model id is rejected here, before anything
// is loaded.
func NewNeuralBackend(opts NeuralConfig, loader Loader) (*NeuralBackend, error) {
	if opts.ModelID != SupportedModelID {
		return nil, unsupportedModel(opts.ModelID)
	}
	if loader == nil {
		var err error
		if loader, err = runtimes.get(opts.Runtime); err != nil {
			return nil, err
		}
	}
	return &NeuralBackend{opts: opts, loader: loader}, nil
}

// ScoreBatch returns one distribution per text, in order. An empty batch
// returns an empty result without loading the runtime.
func (nb *NeuralBackend) ScoreBatch(ctx context.Context, texts []string) ([]Distribution, error) {
	if len(texts) == 0 {
		return []Distribution{}, nil
	}

	rt, err := nb.runtime(ctx)
	if err != nil {
		return nil, err
	}

	logits, err := rt.Logits(ctx, InferenceRequest{
		Texts:      texts,
		Padding:    nb.opts.EnablePadding,
		Truncation: nb.opts.EnableTruncation,
	})
	if err != nil {
		return nil, fmt.Errorf("neural inference: %w", err)
	}

	labels := rt.Labels()
	if rows, cols := logits.Dims(); rows != len(texts) || cols != len(labels) {
		return nil, fmt.Errorf("neural inference: got %dx%d logits for %d texts and %d labels",
			rows, cols, len(texts), len(labels))
	}
	return softmax(logits, labels), nil
}

// runtime returns the cached runtime, loading it if needed. Concurrent
// callers share a single load; a failed load is retried by the next call.
// The shared load ignores the first caller's cancellation, so one caller
// giving up does not fail the others.
func (nb *NeuralBackend) runtime(ctx context.Context) (Runtime, error) {
	nb.mu.RLock()
	rt := nb.rt
	nb.mu.RUnlock()
	if rt != nil {
		return rt, nil
	}

	v, err, _ := nb.load.Do("runtime", func() (any, error) {
		nb.mu.RLock()
		rt := nb.rt
		nb.mu.RUnlock()
		if rt != nil {
			return rt, nil
		}

		rt, err := nb.newRuntime(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		nb.mu.Lock()
		nb.rt = rt
		nb.mu.Unlock()
		return rt, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Runtime), nil
}

func (nb *NeuralBackend) newRuntime(ctx context.Context) (Runtime, error) {
	device := CPU
	if nb.opts.UseAccelerator {
		device = Accelerator
	}

	Logger().Debug("loading model runtime",
		"model", nb.opts.ModelID, "runtime", nb.opts.Runtime, "device", device)

	rt, err := nb.loader(ctx, LoadRequest{
		ModelID: nb.opts.ModelID,
		Device:  device,
		Options: nb.opts,
	})
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", nb.opts.ModelID, err)
	}

	if nb.opts.CachePath != "" {
		cached, err := NewCachedRuntime(ctx, rt, nb.opts.CachePath, nb.opts.ModelID)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt = cached
	}
	return rt, nil
}

// Close releases the runtime, if one was loaded. A later ScoreBatch loads a
// new one.
func (nb *NeuralBackend) Close() error {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	if nb.rt == nil {
		return nil
	}
	err := nb.rt.Close()
	nb.rt = nil
	return err
}
