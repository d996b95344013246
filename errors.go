package polarity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedModel is matched (via errors.Is) by any *ConfigError raised
// for a model identifier the neural backend does not support.
var ErrUnsupportedModel = errors.New("unsupported model")

// ErrNoParser is returned by Blob.Parse when no parser was configured.
var ErrNoParser = errors.New("blob has no parser")

// ErrNoClassifier is returned by Blob.Classify when no classifier was configured.
var ErrNoClassifier = errors.New("blob has no classifier")

// A ConfigError reports an invalid or unsupported configuration value. It is
// raised at construction time and is never retried.
type ConfigError struct {
	Field  string // Dotted configuration key, e.g. "neural_backend_options.model_id".
	Value  string // The offending value, if any.
	Reason string
	Err    error // Optional cause.
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("polarity: invalid configuration")
	if e.Field != "" {
		b.WriteString(" for ")
		b.WriteString(e.Field)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " (%q)", e.Value)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// A ContractError reports a backend output that does not carry the label set
// the normalizer requires. It means the model and the pipeline disagree and is
// not recoverable by retrying.
type ContractError struct {
	Missing []string // Required labels that were absent.
	Labels  []string // Labels the backend actually produced.
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("polarity: backend output is missing required labels %v (got %v)", e.Missing, e.Labels)
}

func unsupportedModel(id string) *ConfigError {
	return &ConfigError{
		Field:  "neural_backend_options.model_id",
		Value:  id,
		Reason: fmt.Sprintf("only %q is supported", SupportedModelID),
		Err:    ErrUnsupportedModel,
	}
}
