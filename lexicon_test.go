package polarity

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexiconOperations(t *testing.T) {
	lexicon := NewSentimentLexicon()

	tests := []struct {
		word     string
		expected float64
	}{
		{"good", 0.6},
		{"Good", 0.6},
		{"excellent", 0.9},
		{"bad", -0.6},
		{"terrible", -0.9},
		{"grew", 0.5},
		{"failed", -0.7},
		{"profits", 0.5},
		{"neutral", 0.0},
	}

	for _, tt := range tests {
		sentiment := lexicon.GetSentiment(tt.word)
		if math.Abs(sentiment-tt.expected) > 0.01 {
			t.Errorf("Word %q: expected %.2f, got %.2f", tt.word, tt.expected, sentiment)
		}
	}

	// Test negation detection
	for _, neg := range []string{"not", "Never", "can't", "won't", "n't"} {
		if !lexicon.IsNegation(neg) {
			t.Errorf("Expected %q to be recognized as negation", neg)
		}
	}

	// Test modifier strength
	modifiers := map[string]float64{
		"very":      0.3,
		"extremely": 0.5,
		"slightly":  -0.3,
		"table":     0,
	}
	for word, expected := range modifiers {
		strength := lexicon.GetModifierStrength(word)
		if math.Abs(strength-expected) > 0.01 {
			t.Errorf("Modifier %q: expected %.2f, got %.2f", word, expected, strength)
		}
	}

	// Test custom word addition
	size := lexicon.Size()
	lexicon.AddCustomWord("Blockchain", 0.3, 0.8)
	if math.Abs(lexicon.GetSentiment("blockchain")-0.3) > 0.01 {
		t.Error("Custom word not added correctly")
	}
	if !lexicon.HasWord("BLOCKCHAIN") || lexicon.Size() != size+1 {
		t.Error("Custom word not counted")
	}
}

func writeLexicon(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexicon.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadExternalLexicon(t *testing.T) {
	path := writeLexicon(t, `{
		"languages": {
			"english": {
				"positive": [{"word": "Bullish", "sentiment": 0.7, "confidence": 0.9}],
				"negative": [{"word": "bearish", "sentiment": -0.7, "confidence": 0.9}],
				"modifiers": [{"word": "massively", "factor": 0.6}],
				"intensifiers": ["super"],
				"diminishers": ["kinda"],
				"negations": ["nary"]
			},
			"spanish": {
				"positive": [{"word": "bueno", "sentiment": 0.6, "confidence": 0.9}]
			}
		}
	}`)

	lexicon, err := LoadSentimentLexicon(path)
	require.NoError(t, err)

	assert.InDelta(t, 0.7, lexicon.GetSentiment("bullish"), 1e-9)
	assert.InDelta(t, -0.7, lexicon.GetSentiment("bearish"), 1e-9)
	assert.InDelta(t, 0.6, lexicon.GetModifierStrength("massively"), 1e-9)
	assert.InDelta(t, defaultIntensifierFactor, lexicon.GetModifierStrength("super"), 1e-9)
	assert.InDelta(t, defaultDiminisherFactor, lexicon.GetModifierStrength("kinda"), 1e-9)
	assert.True(t, lexicon.IsNegation("nary"))
	assert.False(t, lexicon.HasWord("bueno"), "only the english section is merged")

	// Built-in words survive the merge.
	assert.InDelta(t, 0.6, lexicon.GetSentiment("good"), 1e-9)
}

func TestLoadExternalLexiconErrors(t *testing.T) {
	_, err := LoadSentimentLexicon(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadSentimentLexicon(writeLexicon(t, "{not json"))
	assert.Error(t, err)

	lexicon, err := LoadSentimentLexicon("")
	require.NoError(t, err)
	assert.Equal(t, NewSentimentLexicon().Size(), lexicon.Size())
}

func TestExternalLexiconOption(t *testing.T) {
	path := writeLexicon(t, `{"languages":{"english":{"words":[{"word":"moon","sentiment":0.8,"confidence":0.5}]}}}`)

	opts, err := ResolveLexiconOptions(LexiconConfig{ExternalLexicon: path})
	require.NoError(t, err)
	assert.Greater(t, NewLexiconBackend(opts).Score("to the moon"), 0.0)

	_, err = ResolveLexiconOptions(LexiconConfig{ExternalLexicon: path, Analyzer: "vader"})
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "lexicon_backend_options.external_lexicon", cfgErr.Field)

	_, err = ResolveLexiconOptions(LexiconConfig{ExternalLexicon: writeLexicon(t, "[")})
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "lexicon_backend_options.external_lexicon", cfgErr.Field)
}
