package polarity

import (
	"sync"

	"github.com/jonreiter/govader"
)

// VaderAnalyzer scores text with the VADER rule set. Its polarity is the
// VADER compound score. It is safe for concurrent use.
type VaderAnalyzer struct {
	sia *govader.SentimentIntensityAnalyzer
	mu  sync.Mutex
}

var (
	defaultVader *VaderAnalyzer
	vaderOnce    sync.Once
)

// NewVaderAnalyzer returns a VADER analyzer. Building the VADER lexicon is
// costly, so callers that only need one should prefer DefaultVaderAnalyzer.
func NewVaderAnalyzer() *VaderAnalyzer {
	return &VaderAnalyzer{sia: govader.NewSentimentIntensityAnalyzer()}
}

// DefaultVaderAnalyzer returns the package-level VADER analyzer, built on
// first use.
func DefaultVaderAnalyzer() *VaderAnalyzer {
	vaderOnce.Do(func() {
		defaultVader = NewVaderAnalyzer()
	})
	return defaultVader
}

// Analyze implements Analyzer. VADER does its own tokenization, so tokens
// are only used to measure subjectivity.
func (va *VaderAnalyzer) Analyze(text string, _ []*Token) Sentiment {
	va.mu.Lock()
	scores := va.sia.PolarityScores(text)
	va.mu.Unlock()

	return Sentiment{
		Polarity:     scores.Compound,
		Subjectivity: scores.Positive + scores.Negative,
		Intensity:    max(scores.Positive, scores.Negative),
	}
}
