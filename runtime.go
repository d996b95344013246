package polarity

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// Device is where a runtime executes inference.
type Device int

const (
	CPU Device = iota
	Accelerator
)

func (d Device) String() string {
	if d == Accelerator {
		return "accelerator"
	}
	return "cpu"
}

// InferenceRequest is one batch of texts for a Runtime.
type InferenceRequest struct {
	Texts      []string
	Padding    bool // pad the batch to a common length
	Truncation bool // truncate texts longer than the model's maximum
}

// A Runtime executes a sequence-classification model.
type Runtime interface {
	// Labels returns the model's output labels in index order.
	Labels() []string

	// Logits returns raw classifier scores with one row per text, in request
	// order, and one column per label.
	Logits(ctx context.Context, req InferenceRequest) (*mat.Dense, error)

	Close() error
}

// LoadRequest describes the runtime a NeuralBackend wants.
type LoadRequest struct {
	ModelID string

	// Device is the preferred device. A loader falls back to CPU when an
	// accelerator is requested but not available.
	Device Device

	Options NeuralConfig
}

// A Loader creates a Runtime. It is called at most once per successful load.
type Loader func(ctx context.Context, req LoadRequest) (Runtime, error)

var runtimes = newRegistry[Loader]("neural_backend_options.runtime")

// RegisterRuntime makes a Loader available under name for the runtime
// setting. Registering an existing name replaces it.
func RegisterRuntime(name string, loader Loader) {
	runtimes.register(name, loader)
}

func init() {
	RegisterRuntime("tei", LoadTEI)
}
