package polarity

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A Tokenizer splits text into word tokens carrying byte offsets into the
// text it was given.
type Tokenizer interface {
	Tokenize(text string) []*Token
}

// TokenTester reports whether a token should be kept whole.
type TokenTester func(string) bool

// iterTokenizer splits a sentence into words.
type iterTokenizer struct {
	specialRE      *regexp.Regexp
	sanitizer      *strings.Replacer
	splitCases     []string
	suffixes       []string
	prefixes       []string
	emoticons      map[string]int
	isUnsplittable TokenTester
}

// TokenizerOptFunc configures NewIterTokenizer.
type TokenizerOptFunc func(*iterTokenizer)

// UsingIsUnsplittable gives a function that tests whether a token is splittable or not.
func UsingIsUnsplittable(x TokenTester) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.isUnsplittable = x
	}
}

// UsingEmoticons replaces the set of emoticons kept as single tokens.
func UsingEmoticons(x map[string]int) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.emoticons = x
	}
}

// UsingContractions replaces the contraction suffixes that are split off,
// e.g. "n't" in "don't".
func UsingContractions(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.splitCases = x
	}
}

// NewIterTokenizer returns the built-in rule-based word tokenizer.
func NewIterTokenizer(opts ...TokenizerOptFunc) Tokenizer {
	tok := &iterTokenizer{
		specialRE:      internalRE,
		sanitizer:      sanitizer,
		splitCases:     contractions,
		suffixes:       suffixes,
		prefixes:       prefixes,
		emoticons:      emoticons,
		isUnsplittable: func(_ string) bool { return false },
	}
	for _, applyOpt := range opts {
		applyOpt(tok)
	}
	return tok
}

func (t *iterTokenizer) isSpecial(token string) bool {
	_, found := t.emoticons[token]
	return found || t.specialRE.MatchString(token) || t.isUnsplittable(token)
}

// Tokenize splits text on whitespace and then peels prefixes, suffixes and
// contractions off each chunk.
func (t *iterTokenizer) Tokenize(text string) []*Token {
	var tokens []*Token

	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, t.split(text[start:i], start)...)
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, t.split(text[start:], start)...)
	}
	return tokens
}

// split handles one whitespace-delimited chunk beginning at offset.
func (t *iterTokenizer) split(chunk string, offset int) []*Token {
	var head, tail []*Token

	end := offset + len(chunk)
	for chunk != "" {
		if t.isSpecial(chunk) {
			head = append(head, t.token(chunk, offset))
			return append(head, tail...)
		}

		lower := strings.ToLower(chunk)
		if n := hasAnyPrefix(chunk, t.prefixes); n > 0 {
			// $100 -> [$, 100]
			head = append(head, t.token(chunk[:n], offset))
			chunk, offset = chunk[n:], offset+n
		} else if idx := hasAnyIndex(lower, t.splitCases); idx > 0 {
			// don't -> [do, n't]; they'll -> [they, 'll]
			head = append(head, t.token(chunk[:idx], offset))
			chunk, offset = chunk[idx:], offset+idx
		} else if hasAnySuffix(chunk, t.suffixes) {
			// good. -> [good, .]
			_, size := utf8.DecodeLastRuneInString(chunk)
			tail = append([]*Token{t.token(chunk[len(chunk)-size:], end-size)}, tail...)
			chunk, end = chunk[:len(chunk)-size], end-size
		} else {
			head = append(head, t.token(chunk, offset))
			break
		}
	}
	return append(head, tail...)
}

func (t *iterTokenizer) token(s string, start int) *Token {
	return &Token{
		Text:  t.sanitizer.Replace(s),
		Start: start,
		End:   start + len(s),
	}
}

// hasAnyPrefix returns the byte length of the first prefix s starts with, or 0.
func hasAnyPrefix(s string, prefixes []string) int {
	n := len(s)
	for _, prefix := range prefixes {
		if n > len(prefix) && strings.HasPrefix(s, prefix) {
			return len(prefix)
		}
	}
	return 0
}

func hasAnySuffix(s string, suffixes []string) bool {
	n := len(s)
	for _, suffix := range suffixes {
		if n > len(suffix) && strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// hasAnyIndex returns the position of the first split case found in s, or -1.
// A split case must sit at the end of s, or be followed only by suffixes.
func hasAnyIndex(s string, cases []string) int {
	for _, c := range cases {
		idx := strings.Index(s, c)
		if idx < 0 {
			continue
		}
		rest := strings.TrimRight(s[idx+len(c):], `,)"]!;.?:'`)
		if rest == "" {
			return idx
		}
	}
	return -1
}

var internalRE = regexp.MustCompile(`^(?:[A-Za-z]\.){2,}$|^[A-Z][a-z]{1,2}\.$`)
var sanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"&rsquo;", "'")
var contractions = []string{"'ll", "'s", "'re", "'m", "'ve", "'d", "n't", "’s", "n’t"}
var suffixes = []string{",", ")", `"`, "]", "!", ";", ".", "?", ":", "'", "”"}
var prefixes = []string{"$", "(", `"`, "[", "“"}
var emoticons = map[string]int{
	"(-8":   1,
	"(-;":   1,
	"(:":    1,
	"(=":    1,
	"8-)":   1,
	"8D":    1,
	":(":    1,
	":((":   1,
	":)":    1,
	":))":   1,
	":-(":   1,
	":-)":   1,
	":-/":   1,
	":-D":   1,
	":-P":   1,
	":-p":   1,
	":-|":   1,
	":/":    1,
	":D":    1,
	":P":    1,
	":p":    1,
	";)":    1,
	";-)":   1,
	"<3":    1,
	"=(":    1,
	"=)":    1,
	"=D":    1,
	"O_o":   1,
	"XD":    1,
	"^_^":   1,
	"o_O":   1,
	"xD":    1,
	"¯\\(ツ)/¯": 1,
}
