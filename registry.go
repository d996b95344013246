package polarity

import (
	"slices"
	"strings"
	"sync"
)

// registry maps names to values of one kind. Later registrations replace
// earlier ones.
type registry[T any] struct {
	field string // configuration key that names entries of this kind

	mu sync.RWMutex
	m  map[string]T
}

func newRegistry[T any](field string) *registry[T] {
	return &registry[T]{field: field, m: make(map[string]T)}
}

func (r *registry[T]) register(name string, v T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.m[name] = v
}

func (r *registry[T]) lookup(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, found := r.m[name]
	return v, found
}

// get returns the named entry or a *ConfigError listing the known names.
func (r *registry[T]) get(name string) (T, error) {
	v, found := r.lookup(name)
	if !found {
		return v, &ConfigError{
			Field:  r.field,
			Value:  name,
			Reason: "unknown name, registered: " + joinNames(r.names()),
		}
	}
	return v, nil
}

func (r *registry[T]) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.m))
	for name := range r.m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

var (
	tokenizers   = newRegistry[func() Tokenizer]("lexicon_backend_options.tokenizer")
	npExtractors = newRegistry[func() NPExtractor]("lexicon_backend_options.np_extractor")
	posTaggers   = newRegistry[func() POSTagger]("lexicon_backend_options.pos_tagger")
	analyzers    = newRegistry[func() Analyzer]("lexicon_backend_options.analyzer")
	parsers      = newRegistry[func() Parser]("lexicon_backend_options.parser")
	classifiers  = newRegistry[func() Classifier]("lexicon_backend_options.classifier")
)

// RegisterTokenizer makes a Tokenizer available by name to lexicon backend
// configuration.
func RegisterTokenizer(name string, fn func() Tokenizer) { tokenizers.register(name, fn) }

// RegisterNPExtractor makes an NPExtractor available by name.
func RegisterNPExtractor(name string, fn func() NPExtractor) { npExtractors.register(name, fn) }

// RegisterPOSTagger makes a POSTagger available by name.
func RegisterPOSTagger(name string, fn func() POSTagger) { posTaggers.register(name, fn) }

// RegisterAnalyzer makes an Analyzer available by name.
func RegisterAnalyzer(name string, fn func() Analyzer) { analyzers.register(name, fn) }

// RegisterParser makes a Parser available by name.
func RegisterParser(name string, fn func() Parser) { parsers.register(name, fn) }

// RegisterClassifier makes a Classifier available by name.
func RegisterClassifier(name string, fn func() Classifier) { classifiers.register(name, fn) }

func init() {
	RegisterTokenizer("iter", func() Tokenizer { return defaultTokenizer })
	RegisterNPExtractor("stopwords", func() NPExtractor { return defaultNPExtractor })
	RegisterAnalyzer("lexicon", func() Analyzer { return defaultAnalyzer })
	RegisterAnalyzer("vader", func() Analyzer { return DefaultVaderAnalyzer() })
}

// build resolves name through r. The empty name resolves to the zero value,
// which LexiconOptions treats as "use the built-in".
func build[T any](r *registry[func() T], name string) (T, error) {
	var zero T
	if name == "" {
		return zero, nil
	}
	fn, err := r.get(name)
	if err != nil {
		return zero, err
	}
	return fn(), nil
}
