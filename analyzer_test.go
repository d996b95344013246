package polarity

import (
	"math"
	"testing"
)

func analyze(text string) Sentiment {
	return NewBlob(text, LexiconOptions{}).Sentiment()
}

func TestSentimentPolarity(t *testing.T) {
	tests := []struct {
		text     string
		expected float64
		delta    float64
		desc     string
	}{
		{"I love this product!", 1.0, 0.01, "Strong positive sentiment"},
		{"This is terrible.", -1.0, 0.01, "Strong negative sentiment"},
		{"It's okay.", 0.3, 0.01, "Mildly positive sentiment"},
		{"Not bad at all.", 0.45, 0.01, "Negation of negative"},
		{"I don't like it.", -0.375, 0.01, "Negation of positive"},
		{"This movie is absolutely fantastic!", 1.0, 0.01, "Intensified positive"},
		{"The service was slightly disappointing.", -0.735, 0.01, "Diminished negative"},
		{"I really hate this!", -1.0, 0.01, "Intensified negative"},
		{"This is good but not great.", 0.2308, 0.01, "Mixed sentiment"},
		{"", 0.0, 0.001, "Empty text"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			sentiment := analyze(tt.text)
			if math.Abs(sentiment.Polarity-tt.expected) > tt.delta {
				t.Errorf("Text: %q\nExpected polarity: %.2f ± %.2f\nGot: %.4f",
					tt.text, tt.expected, tt.delta, sentiment.Polarity)
			}
		})
	}
}

func TestSentimentIntensity(t *testing.T) {
	tests := []struct {
		text         string
		minIntensity float64
		desc         string
	}{
		{"This is absolutely amazing!", 0.7, "High intensity with intensifier"},
		{"It's very very bad.", 0.6, "Multiple intensifiers"},
		{"Slightly disappointing.", 0.3, "Low intensity with diminisher"},
		{"TERRIBLE!!!", 0.7, "High intensity with caps and punctuation"},
		{"good", 0.5, "Single positive word"},
		{"This is the worst thing ever!", 0.7, "Superlative negative"},
		{"Perfect! Absolutely perfect!", 0.8, "Repeated strong positive"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			sentiment := analyze(tt.text)
			if sentiment.Intensity < tt.minIntensity {
				t.Errorf("Text: %q\nExpected intensity >= %.2f\nGot: %.2f",
					tt.text, tt.minIntensity, sentiment.Intensity)
			}
		})
	}
}

func TestNegationHandling(t *testing.T) {
	pairs := []struct {
		positive string
		negated  string
		desc     string
	}{
		{"This is good.", "This is not good.", "Simple negation"},
		{"I like it.", "I don't like it.", "Contraction negation"},
		{"Happy with the service.", "Not happy with the service.", "Beginning negation"},
		{"The food is excellent.", "The food isn't excellent.", "Negation with contraction"},
		{"I love this.", "I never loved this.", "Never negation"},
	}

	for _, pair := range pairs {
		t.Run(pair.desc, func(t *testing.T) {
			posSent := analyze(pair.positive)
			negSent := analyze(pair.negated)

			if posSent.Polarity <= 0.1 || negSent.Polarity >= 0 {
				t.Errorf("Negation not handled properly:\n%s: %.2f\n%s: %.2f",
					pair.positive, posSent.Polarity,
					pair.negated, negSent.Polarity)
			}
			if len(negSent.Negations) != 1 {
				t.Errorf("%q: expected one negated word, got %v", pair.negated, negSent.Negations)
			}
		})
	}
}

func TestModifierEffects(t *testing.T) {
	base := analyze("This is good.")
	intensified := analyze("This is very good.")
	diminished := analyze("This is slightly good.")

	// Intensifier should increase magnitude
	if math.Abs(intensified.Polarity) <= math.Abs(base.Polarity) {
		t.Errorf("Intensifier failed: base=%.2f, intensified=%.2f",
			base.Polarity, intensified.Polarity)
	}

	// Diminisher should decrease magnitude
	if math.Abs(diminished.Polarity) >= math.Abs(base.Polarity) {
		t.Errorf("Diminisher failed: base=%.2f, diminished=%.2f",
			base.Polarity, diminished.Polarity)
	}

	if got := intensified.PositiveWords[0].AdjustedScore; math.Abs(got-0.78) > 0.001 {
		t.Errorf("very good: expected adjusted score 0.78, got %.3f", got)
	}
}

func TestSentimentClasses(t *testing.T) {
	tests := []struct {
		text     string
		expected SentimentClass
		desc     string
	}{
		{"This is absolutely perfect!", StrongPositive, "Strong positive"},
		{"It's okay.", Positive, "Moderate positive"},
		{"The report is due on Friday.", Neutral, "Neutral"},
		{"Not good.", Negative, "Negative"},
		{"Absolutely terrible!", StrongNegative, "Strong negative"},
		{"I love it but hate the price.", Mixed, "Mixed sentiment"},
		{"", Neutral, "Empty text"},
	}

	classifier := NewSentimentClassifier(nil, nil)
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := classifier.Classify(tt.text)
			if err != nil {
				t.Fatal(err)
			}
			if got != string(tt.expected) {
				t.Errorf("Text: %q\nExpected class: %s\nGot: %s (polarity: %.2f)",
					tt.text, tt.expected, got, analyze(tt.text).Polarity)
			}
		})
	}
}

func TestSentimentFeatures(t *testing.T) {
	sentiment := analyze("I absolutely love this amazing product! It's perfect!")

	found := map[string]bool{}
	for _, word := range sentiment.PositiveWords {
		found[word.Word] = true
	}
	for _, want := range []string{"love", "amazing", "perfect"} {
		if !found[want] {
			t.Errorf("Expected %q in positive words, got %+v", want, sentiment.PositiveWords)
		}
	}
	if len(sentiment.NegativeWords) != 0 {
		t.Errorf("Expected no negative words, got %+v", sentiment.NegativeWords)
	}
}

func TestSubjectivity(t *testing.T) {
	// One of six content words carries sentiment.
	sentiment := analyze("The stock markets grew this year.")
	if math.Abs(sentiment.Subjectivity-1.0/6) > 0.001 {
		t.Errorf("Expected subjectivity 1/6, got %.3f", sentiment.Subjectivity)
	}

	if s := analyze("the a an"); s.Subjectivity != 0 {
		t.Errorf("Expected zero subjectivity without sentiment words, got %.3f", s.Subjectivity)
	}
}

func TestEmptySentiment(t *testing.T) {
	sentiment := analyze("")
	if sentiment.Polarity != 0 || sentiment.Intensity != 0 {
		t.Errorf("Empty text should have zero polarity and intensity, got polarity=%.2f, intensity=%.2f",
			sentiment.Polarity, sentiment.Intensity)
	}
	if ClassifySentiment(sentiment) != Neutral {
		t.Errorf("Empty text should be classified as Neutral, got %s", ClassifySentiment(sentiment))
	}
}

func TestClauseBoundaryNegation(t *testing.T) {
	// Negation shouldn't cross clause boundaries
	sentiment := analyze("I don't like the color, but the quality is excellent.")
	if sentiment.Polarity < -0.2 {
		t.Errorf("Clause boundary not respected in negation, got polarity=%.2f", sentiment.Polarity)
	}

	sentiment = analyze("Not now, good.")
	if len(sentiment.Negations) != 0 {
		t.Errorf("Negation crossed a comma: %v", sentiment.Negations)
	}
}

func TestVaderAnalyzer(t *testing.T) {
	tests := []struct {
		text     string
		positive bool
	}{
		{"This is wonderful!", true},
		{"This is terrible!", false},
	}

	va := DefaultVaderAnalyzer()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			s := va.Analyze(tt.text, nil)
			if tt.positive && s.Polarity <= 0 {
				t.Errorf("expected positive sentiment for %q, got %.2f", tt.text, s.Polarity)
			}
			if !tt.positive && s.Polarity >= 0 {
				t.Errorf("expected negative sentiment for %q, got %.2f", tt.text, s.Polarity)
			}
		})
	}
}

func BenchmarkSentimentAnalysis(b *testing.B) {
	texts := []string{
		"This product exceeded my expectations in every way.",
		"The customer service was absolutely terrible.",
		"It's an okay product, nothing special.",
		"I'm not sure if I like it or not.",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = analyze(texts[i%len(texts)])
	}
}
