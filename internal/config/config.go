// Package config provides configuration loading and value resolution.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Compiled defaults, the last step of the resolution precedence.
const (
	DefaultMode         = "curriculum"
	DefaultDurationSec  = 300
	DefaultShuffleAfter = 5
	DefaultHardMode     = true

	DefaultSentencesFile = "sentences.txt"
	DefaultSnippetsFile  = "snippets.txt"
	DefaultQuoteAPIURL   = "https://api.quotify.top/random"
	DefaultAIEndpoint    = "http://localhost:11434/api/generate"
	DefaultAIAPIType     = "auto"
	DefaultAIModel       = "codellama"
	DefaultLanguages     = "python,rust,c,cpp,go"

	DefaultProviderTimeout = 2 * time.Second
	DefaultAITimeout       = 10 * time.Second
)

// DefaultSentenceSources is the fallback chain order for sentence content.
var DefaultSentenceSources = []string{"api", "cmd", "file", "local"}

// DefaultCodeSources is the fallback chain order for code content.
var DefaultCodeSources = []string{"ai", "cmd", "file", "local"}

// Config is the resolved, immutable view the engine and pipeline consume.
type Config struct {
	Mode         string
	Duration     time.Duration
	ShuffleAfter int
	HardMode     bool

	SentenceSources []string
	CodeSources     []string
	SentencesFile   string
	SnippetsFile    string
	SentenceCommand string
	CodeCommand     string
	QuoteAPIURL     string

	AIEndpoint string
	AIAPIType  string
	AIModel    string
	AIAPIKey   string

	Languages []string

	ProviderTimeout time.Duration
	AITimeout       time.Duration
}

// Overrides carries profile-held values that take precedence over the file.
type Overrides struct {
	Mode     string
	HardMode *bool
}

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Sources  SourcesConfig  `toml:"sources"`
	AI       AIConfig       `toml:"ai"`
}

// PracticeConfig maps session-related settings.
type PracticeConfig struct {
	Mode         *string `toml:"mode"`
	DurationSec  *int    `toml:"duration"`
	ShuffleAfter *int    `toml:"shuffle-after"`
	HardMode     *bool   `toml:"hard-mode"`
	Languages    *string `toml:"languages"`
}

// SourcesConfig maps content source settings.
type SourcesConfig struct {
	Sentence        []string `toml:"sentence"`
	Code            []string `toml:"code"`
	SentencesFile   *string  `toml:"sentences-file"`
	SnippetsFile    *string  `toml:"snippets-file"`
	SentenceCommand *string  `toml:"sentence-command"`
	CodeCommand     *string  `toml:"code-command"`
	QuoteAPIURL     *string  `toml:"quote-api-url"`
}

// AIConfig maps AI provider settings.
type AIConfig struct {
	Endpoint *string `toml:"endpoint"`
	Type     *string `toml:"type"`
	Model    *string `toml:"model"`
	APIKey   *string `toml:"api-key"`
}

// LoadFile reads a TOML config from the given path. Missing file is not an
// error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Resolve applies the precedence profile override, then file value, then
// compiled default, and returns the resolved configuration.
func Resolve(file FileConfig, over Overrides) Config {
	cfg := Config{
		Mode:            stringOr(file.Practice.Mode, DefaultMode),
		Duration:        time.Duration(intOr(file.Practice.DurationSec, DefaultDurationSec)) * time.Second,
		ShuffleAfter:    intOr(file.Practice.ShuffleAfter, DefaultShuffleAfter),
		HardMode:        boolOr(file.Practice.HardMode, DefaultHardMode),
		SentenceSources: sliceOr(file.Sources.Sentence, DefaultSentenceSources),
		CodeSources:     sliceOr(file.Sources.Code, DefaultCodeSources),
		SentencesFile:   stringOr(file.Sources.SentencesFile, DefaultSentencesFile),
		SnippetsFile:    stringOr(file.Sources.SnippetsFile, DefaultSnippetsFile),
		SentenceCommand: stringOr(file.Sources.SentenceCommand, ""),
		CodeCommand:     stringOr(file.Sources.CodeCommand, ""),
		QuoteAPIURL:     stringOr(file.Sources.QuoteAPIURL, DefaultQuoteAPIURL),
		AIEndpoint:      stringOr(file.AI.Endpoint, DefaultAIEndpoint),
		AIAPIType:       stringOr(file.AI.Type, DefaultAIAPIType),
		AIModel:         stringOr(file.AI.Model, DefaultAIModel),
		AIAPIKey:        stringOr(file.AI.APIKey, ""),
		Languages:       ParseLanguages(stringOr(file.Practice.Languages, DefaultLanguages)),
		ProviderTimeout: DefaultProviderTimeout,
		AITimeout:       DefaultAITimeout,
	}
	if over.Mode != "" {
		cfg.Mode = over.Mode
	}
	if over.HardMode != nil {
		cfg.HardMode = *over.HardMode
	}
	return cfg
}

// supportedLanguages filters the configured code language list.
var supportedLanguages = map[string]bool{
	"python": true,
	"rust":   true,
	"c":      true,
	"cpp":    true,
	"go":     true,
}

// ParseLanguages splits a comma-separated language list, keeping only
// supported entries. An empty result falls back to all supported languages.
func ParseLanguages(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part != "" && supportedLanguages[part] {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return ParseLanguages(DefaultLanguages)
	}
	return out
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func sliceOr(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}
