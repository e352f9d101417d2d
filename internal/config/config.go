// Package config holds the typed application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/spigell/hr-screener/internal/secrets"
	"github.com/spigell/hr-screener/internal/skills"
)

const (
	EnvPrefix = "HR_SCREENER"

	TokenizerAnalyzer = "analyzer"
	TokenizerSimple   = "simple"
	TokenizerNone     = "none"
)

type Config struct {
	Tokenizer TokenizerConfig `mapstructure:"tokenizer"`
	Skills    SkillsConfig    `mapstructure:"skills"`
	Batch     BatchConfig     `mapstructure:"batch"`
	Records   RecordsConfig   `mapstructure:"records"`
	AI        AIConfig        `mapstructure:"ai"`
}

type TokenizerConfig struct {
	Kind string `mapstructure:"kind" validate:"oneof=analyzer simple none"`
	// Strict disables the fallback to the simple tokenizer.
	Strict bool `mapstructure:"strict"`
}

type SkillsConfig struct {
	Vocabulary     []string `mapstructure:"vocabulary" validate:"dive,required"`
	VocabularyFile string   `mapstructure:"vocabulary-file"`
}

type BatchConfig struct {
	MinMatch    float64 `mapstructure:"min-match" validate:"gte=0,lte=100"`
	Concurrency int     `mapstructure:"concurrency" validate:"gte=1,lte=64"`
	ExcludeFile string  `mapstructure:"exclude-file"`
}

type RecordsConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=file sqlite"`
	Path    string `mapstructure:"path" validate:"required"`
}

type AIConfig struct {
	Enabled  bool         `mapstructure:"enabled"`
	Provider string       `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	Gemini   GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=0,lte=10"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

// SetDefaults registers every known key so env overrides work for all of them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("tokenizer.kind", TokenizerAnalyzer)
	v.SetDefault("tokenizer.strict", false)
	v.SetDefault("skills.vocabulary", []string{})
	v.SetDefault("skills.vocabulary-file", "")
	v.SetDefault("batch.min-match", 0.0)
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("batch.exclude-file", "")
	v.SetDefault("records.backend", "file")
	v.SetDefault("records.path", "hr-screener-records.json")
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.gemini.api-key", "")
	v.SetDefault("ai.gemini.api-key-file", "")
	v.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	v.SetDefault("ai.gemini.max-retries", 2)
	v.SetDefault("ai.gemini.max-log-length", 0)
}

// BindEnv makes HR_SCREENER_BATCH_MIN_MATCH override batch.min-match and so on.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Tokenizer.Kind = strings.ToLower(strings.TrimSpace(cfg.Tokenizer.Kind))
	cfg.Records.Backend = strings.ToLower(strings.TrimSpace(cfg.Records.Backend))
	cfg.AI.Provider = strings.ToLower(strings.TrimSpace(cfg.AI.Provider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			fields := make([]string, 0, len(invalid))
			for _, fe := range invalid {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Vocabulary returns the configured vocabulary: inline entries first, then the
// vocabulary file, then the default list.
func (c *Config) Vocabulary() (*skills.Vocabulary, error) {
	if len(c.Skills.Vocabulary) > 0 {
		return skills.NewVocabulary(c.Skills.Vocabulary...), nil
	}

	path := strings.TrimSpace(c.Skills.VocabularyFile)
	if path == "" {
		return skills.DefaultVocabulary(), nil
	}

	entries, err := LoadVocabularyFile(path)
	if err != nil {
		return nil, err
	}
	return skills.NewVocabulary(entries...), nil
}

// LoadVocabularyFile reads a YAML file holding either a plain list of skills
// or a mapping with a "skills" list.
func LoadVocabularyFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary file: %w", err)
	}

	var doc struct {
		Skills []string `yaml:"skills"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		var list []string
		if listErr := yaml.Unmarshal(data, &list); listErr != nil {
			return nil, fmt.Errorf("parse vocabulary file %s: %w", path, err)
		}
		doc.Skills = list
	}

	if len(doc.Skills) == 0 {
		return nil, fmt.Errorf("vocabulary file %s has no skills", path)
	}
	return doc.Skills, nil
}

// GeminiAPIKey resolves the Gemini key from the key file, GEMINI_API_KEY, or the inline value.
func (c *Config) GeminiAPIKey() (string, error) {
	return secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  c.AI.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
		Value: c.AI.Gemini.APIKey,
	})
}
