package polarity

import "math"

// SentimentClass represents sentiment categories
type SentimentClass string

const (
	StrongPositive SentimentClass = "strong_positive"
	Positive       SentimentClass = "positive"
	Neutral        SentimentClass = "neutral"
	Negative       SentimentClass = "negative"
	StrongNegative SentimentClass = "strong_negative"
	Mixed          SentimentClass = "mixed"
)

// SentimentClassifier is a Classifier that labels text with a
// SentimentClass derived from an Analyzer's output. It is registered as
// "sentiment".
type SentimentClassifier struct {
	tokenizer Tokenizer
	analyzer  Analyzer
}

// NewSentimentClassifier returns a classifier over analyzer. Nil arguments
// select the built-ins.
func NewSentimentClassifier(tokenizer Tokenizer, analyzer Analyzer) *SentimentClassifier {
	if tokenizer == nil {
		tokenizer = defaultTokenizer
	}
	if analyzer == nil {
		analyzer = defaultAnalyzer
	}
	return &SentimentClassifier{tokenizer: tokenizer, analyzer: analyzer}
}

// Classify implements Classifier.
func (sc *SentimentClassifier) Classify(text string) (string, error) {
	return string(ClassifySentiment(sc.analyzer.Analyze(text, sc.tokenizer.Tokenize(text)))), nil
}

// ClassifySentiment determines the sentiment class of s. Text whose positive
// and negative contributions are of similar strength is Mixed.
func ClassifySentiment(s Sentiment) SentimentClass {
	if len(s.PositiveWords) > 0 && len(s.NegativeWords) > 0 {
		var posStrength, negStrength float64
		for _, w := range s.PositiveWords {
			posStrength += math.Abs(w.AdjustedScore)
		}
		for _, w := range s.NegativeWords {
			negStrength += math.Abs(w.AdjustedScore)
		}
		if math.Min(posStrength, negStrength)/math.Max(posStrength, negStrength) > 0.7 {
			return Mixed
		}
	}

	if math.Abs(s.Polarity) < 0.1 {
		return Neutral
	}
	if s.Polarity > 0 {
		if s.Intensity > 0.6 && s.Polarity > 0.5 {
			return StrongPositive
		}
		return Positive
	}
	if s.Intensity > 0.6 && s.Polarity < -0.5 {
		return StrongNegative
	}
	return Negative
}

func init() {
	RegisterClassifier("sentiment", func() Classifier { return NewSentimentClassifier(nil, nil) })
}
