package polarity

import (
	"fmt"
	"sync"
)

// PolarityAttr is the extension name under which polarity scores are stored
// on both documents and sentences.
const PolarityAttr = "polarity"

// Target selects which type an Extension is attached to.
type Target int

const (
	DocTarget  Target = iota // Document
	SpanTarget               // Sentence
)

func (t Target) String() string {
	if t == DocTarget {
		return "doc"
	}
	return "span"
}

// An Extension declares a named, optional attribute slot on every Document or
// Sentence. Unwritten slots read back Default.
type Extension struct {
	Name    string
	Target  Target
	Default any
}

// An Extender is a pipeline stage that needs attribute slots. Pipeline.AddPipe
// registers them when the stage is assembled.
type Extender interface {
	Extensions() []Extension
}

type extKey struct {
	target Target
	name   string
}

var extensions = struct {
	sync.RWMutex
	m map[extKey]Extension
}{m: make(map[extKey]Extension)}

// SetExtension registers ext process-wide. Registration is idempotent and the
// first writer wins: it returns false, leaving the existing default in place,
// if the name is already registered for that target.
func SetExtension(ext Extension) bool {
	key := extKey{ext.Target, ext.Name}

	extensions.Lock()
	defer extensions.Unlock()

	if _, found := extensions.m[key]; found {
		return false
	}
	extensions.m[key] = ext
	return true
}

// HasExtension reports whether name is registered for target.
func HasExtension(target Target, name string) bool {
	extensions.RLock()
	defer extensions.RUnlock()

	_, found := extensions.m[extKey{target, name}]
	return found
}

func lookupExtension(target Target, name string) (Extension, bool) {
	extensions.RLock()
	defer extensions.RUnlock()

	ext, found := extensions.m[extKey{target, name}]
	return ext, found
}

func polarityExtensions() []Extension {
	return []Extension{
		{Name: PolarityAttr, Target: DocTarget},
		{Name: PolarityAttr, Target: SpanTarget},
	}
}

// attrs holds the per-instance values of registered extensions.
type attrs struct {
	mu     sync.RWMutex
	values map[string]any
}

func (a *attrs) get(target Target, name string) (any, bool) {
	ext, found := lookupExtension(target, name)
	if !found {
		return nil, false
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	if v, set := a.values[name]; set {
		return v, true
	}
	return ext.Default, true
}

func (a *attrs) set(target Target, name string, value any) error {
	if !HasExtension(target, name) {
		return fmt.Errorf("polarity: no %s extension named %q", target, name)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.values == nil {
		a.values = make(map[string]any)
	}
	a.values[name] = value
	return nil
}
