package polarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func texts(tokens []*Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", " \t\n", nil},
		{"punctuation", "The markets grew.", []string{"The", "markets", "grew", "."}},
		{"possessive", "The company's profits", []string{"The", "company", "'s", "profits"}},
		{"negation", "I don't like it", []string{"I", "do", "n't", "like", "it"}},
		{"currency", "$100 gain", []string{"$", "100", "gain"}},
		{"brackets", "(test).", []string{"(", "test", ")", "."}},
		{"abbreviation", "The U.S. economy", []string{"The", "U.S.", "economy"}},
		{"emoticon", "I love it :)", []string{"I", "love", "it", ":)"}},
		{"curly quotes", "“Great”", []string{`"`, "Great", `"`}},
	}

	tok := NewIterTokenizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.text)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, texts(got))
		})
	}
}

func TestTokenizeOffsets(t *testing.T) {
	text := "The company's $100 don't (test)."
	want := []struct {
		text       string
		start, end int
	}{
		{"The", 0, 3},
		{"company", 4, 11},
		{"'s", 11, 13},
		{"$", 14, 15},
		{"100", 15, 18},
		{"do", 19, 21},
		{"n't", 21, 24},
		{"(", 25, 26},
		{"test", 26, 30},
		{")", 30, 31},
		{".", 31, 32},
	}

	got := NewIterTokenizer().Tokenize(text)
	if !assert.Len(t, got, len(want)) {
		return
	}
	for i, w := range want {
		assert.Equal(t, w.text, got[i].Text, "token %d", i)
		assert.Equal(t, w.start, got[i].Start, "token %d start", i)
		assert.Equal(t, w.end, got[i].End, "token %d end", i)
		assert.Equal(t, w.text, text[got[i].Start:got[i].End], "token %d span", i)
	}
}

func TestTokenizeMultibyteOffsets(t *testing.T) {
	text := "“Great”"
	got := NewIterTokenizer().Tokenize(text)
	if !assert.Len(t, got, 3) {
		return
	}
	assert.Equal(t, "“", text[got[0].Start:got[0].End])
	assert.Equal(t, "Great", text[got[1].Start:got[1].End])
	assert.Equal(t, "”", text[got[2].Start:got[2].End])
}

func TestTokenizerOptions(t *testing.T) {
	keep := func(s string) bool { return s == "e.g." }
	tok := NewIterTokenizer(
		UsingIsUnsplittable(keep),
		UsingEmoticons(map[string]int{}),
		UsingContractions([]string{"n't"}),
	)

	assert.Equal(t, []string{"e.g."}, texts(tok.Tokenize("e.g.")))
	assert.Equal(t, []string{":", ")"}, texts(tok.Tokenize(":)")))
	assert.Equal(t, []string{"they'll"}, texts(tok.Tokenize("they'll")))
}
