package polarity

import (
	"math"
	"strings"
)

// An Analyzer scores the sentiment of a span of text. tokens are the span's
// tokens as produced by the Blob's Tokenizer (and POSTagger, if any).
type Analyzer interface {
	Analyze(text string, tokens []*Token) Sentiment
}

// LexiconAnalyzer performs lexicon-based sentiment analysis: each content
// word's lexicon score is adjusted for nearby modifiers and negations, and
// the adjusted scores are averaged into a polarity.
type LexiconAnalyzer struct {
	lexicon *SentimentLexicon

	// NegationWindow is the number of preceding tokens searched for a
	// negation.
	NegationWindow int
}

// NewLexiconAnalyzer returns an analyzer over lexicon. A nil lexicon means
// the built-in English lexicon.
func NewLexiconAnalyzer(lexicon *SentimentLexicon) *LexiconAnalyzer {
	if lexicon == nil {
		lexicon = NewSentimentLexicon()
	}
	return &LexiconAnalyzer{lexicon: lexicon, NegationWindow: 3}
}

// Lexicon returns the analyzer's word list.
func (la *LexiconAnalyzer) Lexicon() *SentimentLexicon {
	return la.lexicon
}

// Analyze implements Analyzer.
func (la *LexiconAnalyzer) Analyze(_ string, tokens []*Token) Sentiment {
	var (
		posScore     float64
		negScore     float64
		wordCount    int
		contentWords int
		sentiment    Sentiment
	)

	for i, token := range tokens {
		// Skip non-content words
		if !isContentWord(token) {
			continue
		}
		contentWords++

		base := la.lexicon.GetSentiment(token.Text)
		if base == 0 {
			continue
		}

		modified := la.applyModifiers(base, tokens, i)
		if la.checkNegation(tokens, i) {
			// Negation reverses but weakens
			modified = -modified * 0.5
			sentiment.Negations = append(sentiment.Negations, i)
		}

		contrib := WordContribution{
			Word:          token.Text,
			Position:      i,
			BaseScore:     base,
			AdjustedScore: modified,
		}
		if modified > 0 {
			posScore += modified
			sentiment.PositiveWords = append(sentiment.PositiveWords, contrib)
		} else {
			negScore += math.Abs(modified)
			sentiment.NegativeWords = append(sentiment.NegativeWords, contrib)
		}
		wordCount++
	}

	if wordCount == 0 {
		return sentiment
	}

	posScore /= float64(wordCount)
	negScore /= float64(wordCount)

	sentiment.Polarity = combinePolarity(posScore, negScore)
	sentiment.Intensity = math.Min(1.0, math.Max(posScore, negScore)*1.5)
	sentiment.Subjectivity = float64(wordCount) / float64(contentWords)
	return sentiment
}

// combinePolarity maps averaged positive and negative strengths onto [-1, 1].
func combinePolarity(posScore, negScore float64) float64 {
	switch {
	case posScore == 0 && negScore == 0:
		return 0
	case negScore == 0:
		return math.Min(1.0, posScore*1.5)
	case posScore == 0:
		return math.Max(-1.0, -negScore*1.5)
	default:
		return (posScore - negScore) / (posScore + negScore)
	}
}

// checkNegation detects negation in context
func (la *LexiconAnalyzer) checkNegation(tokens []*Token, position int) bool {
	start := max(0, position-la.NegationWindow)

	for i := start; i < position; i++ {
		lower := strings.ToLower(tokens[i].Text)
		if !la.lexicon.IsNegation(lower) && !strings.Contains(lower, "n't") {
			continue
		}
		// A clause boundary between negation and target ends its scope.
		for j := i + 1; j < position; j++ {
			if isClauseBoundary(tokens[j]) {
				return false
			}
		}
		return true
	}
	return false
}

// applyModifiers adjusts sentiment based on intensifiers/diminishers in the
// previous two tokens.
func (la *LexiconAnalyzer) applyModifiers(base float64, tokens []*Token, position int) float64 {
	if position == 0 || base == 0 {
		return base
	}

	for i := max(0, position-2); i < position; i++ {
		if modifier := la.lexicon.GetModifierStrength(tokens[i].Text); modifier != 0 {
			// A diminisher's strength is negative.
			return base * (1 + modifier)
		}
	}
	return base
}

// isContentWord checks if a token is a content word
func isContentWord(token *Token) bool {
	// Skip punctuation and very short words
	if len(token.Text) <= 1 {
		return false
	}
	if token.Tag != "" {
		// Content words: nouns, verbs, adjectives, adverbs
		return strings.HasPrefix(token.Tag, "NN") ||
			strings.HasPrefix(token.Tag, "VB") ||
			strings.HasPrefix(token.Tag, "JJ") ||
			strings.HasPrefix(token.Tag, "RB")
	}
	// If no POS tag, accept words with letters
	for _, r := range token.Text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

var clauseBoundaries = map[string]bool{
	",":        true,
	";":        true,
	":":        true,
	".":        true,
	"!":        true,
	"?":        true,
	"but":      true,
	"however":  true,
	"although": true,
}

func isClauseBoundary(token *Token) bool {
	return clauseBoundaries[strings.ToLower(token.Text)]
}
