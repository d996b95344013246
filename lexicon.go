package polarity

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// SentimentLexicon manages sentiment word lists
type SentimentLexicon struct {
	words     map[string]LexiconEntry
	modifiers map[string]float64
	negations map[string]bool
	mutex     sync.RWMutex
}

// LexiconEntry represents a word's sentiment information
type LexiconEntry struct {
	Word       string
	Sentiment  float64 // -1 to 1
	Confidence float64 // 0 to 1
	Domain     string
}

// ExternalLexicon represents the JSON structure for external lexicon files.
// Only the "english" section is read.
type ExternalLexicon struct {
	Languages map[string]LanguageLexicon `json:"languages"`
}

// LanguageLexicon contains all word categories for a specific language
type LanguageLexicon struct {
	Words        []WordEntry     `json:"words,omitempty"`
	Modifiers    []ModifierEntry `json:"modifiers,omitempty"`
	Negations    []string        `json:"negations,omitempty"`
	Positive     []WordEntry     `json:"positive,omitempty"`
	Negative     []WordEntry     `json:"negative,omitempty"`
	Intensifiers []string        `json:"intensifiers,omitempty"`
	Diminishers  []string        `json:"diminishers,omitempty"`
}

// WordEntry represents a sentiment word in JSON format
type WordEntry struct {
	Word       string  `json:"word"`
	Sentiment  float64 `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Domain     string  `json:"domain,omitempty"`
}

// ModifierEntry represents a modifier word in JSON format. Factor is added to
// 1 and multiplied into the modified word's score, so 0.5 boosts by half and
// -0.5 halves it.
type ModifierEntry struct {
	Word   string  `json:"word"`
	Factor float64 `json:"factor"`
}

const (
	defaultIntensifierFactor = 0.3
	defaultDiminisherFactor  = -0.3
)

// NewSentimentLexicon returns the built-in English lexicon.
func NewSentimentLexicon() *SentimentLexicon {
	sl := &SentimentLexicon{
		words:     make(map[string]LexiconEntry, len(englishWords)),
		modifiers: make(map[string]float64, len(englishModifiers)),
		negations: make(map[string]bool, len(englishNegations)),
	}
	for word, score := range englishWords {
		sl.words[word] = LexiconEntry{Word: word, Sentiment: score[0], Confidence: score[1]}
	}
	for word, factor := range englishModifiers {
		sl.modifiers[word] = factor
	}
	for _, word := range englishNegations {
		sl.negations[word] = true
	}
	return sl
}

// LoadSentimentLexicon returns the built-in lexicon merged with the external
// JSON lexicon at path. An empty path yields the built-in lexicon.
func LoadSentimentLexicon(path string) (*SentimentLexicon, error) {
	sl := NewSentimentLexicon()
	if path == "" {
		return sl, nil
	}
	if err := sl.LoadExternalLexicon(path); err != nil {
		return nil, fmt.Errorf("failed to load external lexicon: %w", err)
	}
	return sl, nil
}

// LoadExternalLexicon loads and merges external lexicon data
func (sl *SentimentLexicon) LoadExternalLexicon(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading lexicon file: %w", err)
	}

	var external ExternalLexicon
	if err := json.Unmarshal(data, &external); err != nil {
		return fmt.Errorf("error parsing lexicon JSON: %w", err)
	}

	sl.mutex.Lock()
	defer sl.mutex.Unlock()

	if langData, exists := external.Languages["english"]; exists {
		sl.mergeLanguageData(langData)
	}
	return nil
}

func (sl *SentimentLexicon) mergeLanguageData(data LanguageLexicon) {
	for _, group := range [][]WordEntry{data.Words, data.Positive, data.Negative} {
		for _, entry := range group {
			sl.words[strings.ToLower(entry.Word)] = LexiconEntry(entry)
		}
	}
	for _, modifier := range data.Modifiers {
		sl.modifiers[strings.ToLower(modifier.Word)] = modifier.Factor
	}
	for _, intensifier := range data.Intensifiers {
		sl.modifiers[strings.ToLower(intensifier)] = defaultIntensifierFactor
	}
	for _, diminisher := range data.Diminishers {
		sl.modifiers[strings.ToLower(diminisher)] = defaultDiminisherFactor
	}
	for _, negation := range data.Negations {
		sl.negations[strings.ToLower(negation)] = true
	}
}

// GetSentiment returns sentiment score for a word
func (sl *SentimentLexicon) GetSentiment(word string) float64 {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()

	if entry, exists := sl.words[word]; exists {
		return entry.Sentiment
	}
	if entry, exists := sl.words[strings.ToLower(word)]; exists {
		return entry.Sentiment
	}
	return 0.0
}

// IsNegation checks if word is a negation
func (sl *SentimentLexicon) IsNegation(word string) bool {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()

	return sl.negations[word] || sl.negations[strings.ToLower(word)]
}

// GetModifierStrength returns modifier strength
func (sl *SentimentLexicon) GetModifierStrength(word string) float64 {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()

	if strength, exists := sl.modifiers[word]; exists {
		return strength
	}
	return sl.modifiers[strings.ToLower(word)]
}

// AddCustomWord allows adding domain-specific words
func (sl *SentimentLexicon) AddCustomWord(word string, sentiment, confidence float64) {
	sl.mutex.Lock()
	defer sl.mutex.Unlock()

	sl.words[strings.ToLower(word)] = LexiconEntry{
		Word:       word,
		Sentiment:  sentiment,
		Confidence: confidence,
		Domain:     "custom",
	}
}

// HasWord checks if a word exists in the lexicon
func (sl *SentimentLexicon) HasWord(word string) bool {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()

	_, exists := sl.words[strings.ToLower(word)]
	return exists
}

// Size returns the number of words in the lexicon
func (sl *SentimentLexicon) Size() int {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()

	return len(sl.words)
}

// englishWords maps a word to {sentiment, confidence}.
var englishWords = map[string][2]float64{
	// Strong positive
	"excellent":   {0.9, 0.95},
	"amazing":     {0.85, 0.95},
	"wonderful":   {0.85, 0.95},
	"fantastic":   {0.85, 0.95},
	"outstanding": {0.9, 0.95},
	"perfect":     {0.95, 0.95},
	"brilliant":   {0.85, 0.95},
	"superb":      {0.85, 0.95},

	// Moderate positive
	"good":       {0.6, 0.9},
	"great":      {0.75, 0.9},
	"nice":       {0.5, 0.85},
	"love":       {0.8, 0.9},
	"loved":      {0.8, 0.9},
	"happy":      {0.7, 0.9},
	"enjoy":      {0.65, 0.9},
	"like":       {0.5, 0.85},
	"pleasant":   {0.6, 0.9},
	"positive":   {0.6, 0.9},
	"best":       {0.85, 0.95},
	"better":     {0.5, 0.85},
	"well":       {0.4, 0.75},
	"awesome":    {0.8, 0.9},
	"strong":     {0.5, 0.8},
	"success":    {0.7, 0.9},
	"successful": {0.7, 0.9},

	// Financial positive
	"grew":       {0.5, 0.8},
	"grow":       {0.5, 0.8},
	"growth":     {0.5, 0.8},
	"gain":       {0.5, 0.8},
	"gains":      {0.5, 0.8},
	"profit":     {0.5, 0.8},
	"profits":    {0.5, 0.8},
	"profitable": {0.6, 0.85},
	"rose":       {0.4, 0.75},
	"rise":       {0.4, 0.75},
	"surged":     {0.6, 0.8},
	"rally":      {0.5, 0.75},
	"beat":       {0.4, 0.6},

	// Mild positive
	"okay":   {0.2, 0.7},
	"fine":   {0.3, 0.75},
	"decent": {0.4, 0.8},

	// Strong negative
	"terrible":   {-0.9, 0.95},
	"awful":      {-0.85, 0.95},
	"horrible":   {-0.85, 0.95},
	"disgusting": {-0.9, 0.95},
	"dreadful":   {-0.85, 0.95},
	"abysmal":    {-0.95, 0.95},

	// Moderate negative
	"bad":           {-0.6, 0.9},
	"hate":          {-0.8, 0.9},
	"sad":           {-0.7, 0.9},
	"disappointing": {-0.7, 0.9},
	"poor":          {-0.65, 0.9},
	"wrong":         {-0.6, 0.85},
	"worst":         {-0.85, 0.95},
	"worse":         {-0.5, 0.85},
	"dislike":       {-0.5, 0.85},
	"negative":      {-0.6, 0.9},
	"annoying":      {-0.65, 0.9},
	"boring":        {-0.6, 0.85},
	"fail":          {-0.7, 0.9},
	"failed":        {-0.7, 0.9},
	"failure":       {-0.75, 0.9},
	"weak":          {-0.5, 0.8},

	// Financial negative
	"loss":      {-0.6, 0.85},
	"losses":    {-0.6, 0.85},
	"decline":   {-0.5, 0.8},
	"declined":  {-0.5, 0.8},
	"fell":      {-0.4, 0.75},
	"dropped":   {-0.4, 0.75},
	"plunged":   {-0.7, 0.85},
	"crash":     {-0.8, 0.9},
	"debt":      {-0.3, 0.6},
	"bankrupt":  {-0.9, 0.9},
	"recession": {-0.7, 0.85},

	// Context-dependent
	"cheap": {-0.3, 0.6},
	"slow":  {-0.3, 0.6},
	"easy":  {0.3, 0.6},
}

var englishModifiers = map[string]float64{
	// Intensifiers
	"very":       0.3,
	"extremely":  0.5,
	"absolutely": 0.5,
	"totally":    0.4,
	"really":     0.3,
	"so":         0.3,
	"quite":      0.2,
	"incredibly": 0.5,
	"remarkably": 0.4,
	"especially": 0.3,
	"utterly":    0.5,
	"completely": 0.4,
	"sharply":    0.4,

	// Diminishers
	"slightly":   -0.3,
	"somewhat":   -0.3,
	"rather":     -0.2,
	"fairly":     -0.1,
	"marginally": -0.4,
	"barely":     -0.5,
	"hardly":     -0.5,
	"scarcely":   -0.5,
}

var englishNegations = []string{
	"not", "no", "never", "neither", "nor", "cannot", "can't", "won't",
	"don't", "doesn't", "didn't", "isn't", "aren't", "wasn't", "weren't",
	"hasn't", "haven't", "hadn't", "wouldn't", "shouldn't", "couldn't",
	"without", "nobody", "nothing", "nowhere", "none", "n't",
}
