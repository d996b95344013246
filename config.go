package polarity

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config holds the polarity component's settings. It is a value: a
// component copies it at construction and never sees later changes.
type Config struct {
	SentencePolarity bool          `mapstructure:"sentence_polarity"`
	UseNeuralBackend bool          `mapstructure:"use_neural_backend"`
	Lexicon          LexiconConfig `mapstructure:"lexicon_backend_options"`
	Neural           NeuralConfig  `mapstructure:"neural_backend_options"`
}

// LexiconConfig names the registered components the lexicon backend is built
// from. An empty name selects the built-in.
type LexiconConfig struct {
	Tokenizer       string `mapstructure:"tokenizer"`
	NPExtractor     string `mapstructure:"np_extractor"`
	POSTagger       string `mapstructure:"pos_tagger"`
	Analyzer        string `mapstructure:"analyzer"`
	Parser          string `mapstructure:"parser"`
	Classifier      string `mapstructure:"classifier"`
	ExternalLexicon string `mapstructure:"external_lexicon"`
}

// NeuralConfig holds the neural backend settings.
type NeuralConfig struct {
	ModelID             string        `mapstructure:"model_id"`
	EnablePadding       bool          `mapstructure:"enable_padding"`
	EnableTruncation    bool          `mapstructure:"enable_truncation"`
	UseAccelerator      bool          `mapstructure:"use_accelerator"`
	Runtime             string        `mapstructure:"runtime"`
	Endpoint            string        `mapstructure:"endpoint"`
	AcceleratorEndpoint string        `mapstructure:"accelerator_endpoint"`
	Timeout             time.Duration `mapstructure:"timeout"`
	RequestsPerSecond   float64       `mapstructure:"requests_per_second"`
	CachePath           string        `mapstructure:"cache_path"`
}

// DefaultConfig returns the default settings: sentence-level scoring with
// the lexicon backend.
func DefaultConfig() Config {
	return Config{
		SentencePolarity: true,
		UseNeuralBackend: false,
		Neural: NeuralConfig{
			ModelID:          SupportedModelID,
			EnablePadding:    true,
			EnableTruncation: true,
			Runtime:          "tei",
			Endpoint:         "http://localhost:8080",
			Timeout:          30 * time.Second,
		},
	}
}

// LoadConfig reads settings from the YAML, JSON or TOML file at path (if
// path is non-empty) and from POLARITY_-prefixed environment variables, e.g.
// POLARITY_NEURAL_BACKEND_OPTIONS_MODEL_ID. Unset keys take DefaultConfig's
// values.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("POLARITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("sentence_polarity", def.SentencePolarity)
	v.SetDefault("use_neural_backend", def.UseNeuralBackend)

	// Lexicon defaults
	v.SetDefault("lexicon_backend_options.tokenizer", "")
	v.SetDefault("lexicon_backend_options.np_extractor", "")
	v.SetDefault("lexicon_backend_options.pos_tagger", "")
	v.SetDefault("lexicon_backend_options.analyzer", "")
	v.SetDefault("lexicon_backend_options.parser", "")
	v.SetDefault("lexicon_backend_options.classifier", "")
	v.SetDefault("lexicon_backend_options.external_lexicon", "")

	// Neural defaults
	v.SetDefault("neural_backend_options.model_id", def.Neural.ModelID)
	v.SetDefault("neural_backend_options.enable_padding", def.Neural.EnablePadding)
	v.SetDefault("neural_backend_options.enable_truncation", def.Neural.EnableTruncation)
	v.SetDefault("neural_backend_options.use_accelerator", def.Neural.UseAccelerator)
	v.SetDefault("neural_backend_options.runtime", def.Neural.Runtime)
	v.SetDefault("neural_backend_options.endpoint", def.Neural.Endpoint)
	v.SetDefault("neural_backend_options.accelerator_endpoint", "")
	v.SetDefault("neural_backend_options.timeout", def.Neural.Timeout.String())
	v.SetDefault("neural_backend_options.requests_per_second", 0.0)
	v.SetDefault("neural_backend_options.cache_path", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, &ConfigError{Value: path, Reason: "reading config file", Err: err}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, &ConfigError{Value: path, Reason: "decoding config", Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that can be checked without loading
// anything. The neural model id is checked by NewNeuralBackend.
func (c Config) Validate() error {
	if !c.UseNeuralBackend {
		return nil
	}
	n := c.Neural
	switch {
	case n.ModelID == "":
		return &ConfigError{Field: "neural_backend_options.model_id", Reason: "must not be empty"}
	case n.Runtime == "":
		return &ConfigError{Field: "neural_backend_options.runtime", Reason: "must not be empty"}
	case n.Timeout < 0:
		return &ConfigError{Field: "neural_backend_options.timeout", Value: n.Timeout.String(), Reason: "must not be negative"}
	case n.RequestsPerSecond < 0:
		return &ConfigError{
			Field:  "neural_backend_options.requests_per_second",
			Value:  fmt.Sprint(n.RequestsPerSecond),
			Reason: "must not be negative",
		}
	}
	return nil
}

// decodeSettings turns the settings passed to Pipeline.AddPipe into a Config.
// A map is decoded over DefaultConfig, so omitted keys keep their defaults
// and unknown keys are rejected.
func decodeSettings(settings any) (Config, error) {
	switch s := settings.(type) {
	case nil:
		return DefaultConfig(), nil
	case Config:
		return s, nil
	case *Config:
		if s == nil {
			return DefaultConfig(), nil
		}
		return *s, nil
	case map[string]any:
		cfg := DefaultConfig()
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
			ErrorUnused: true,
			Result:      &cfg,
		})
		if err != nil {
			return Config{}, err
		}
		if err := dec.Decode(s); err != nil {
			return Config{}, &ConfigError{Reason: "decoding settings", Err: err}
		}
		return cfg, nil
	default:
		return Config{}, &ConfigError{Value: fmt.Sprintf("%T", settings), Reason: "settings must be nil, a Config or a map[string]any"}
	}
}
