// Package config loads CLI settings from a TOML file, an optional .env file
// and NOTEKEEP_* environment variables. Flags are applied by the caller on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/poiesic/notekeep/ai"
	"github.com/poiesic/notekeep/tagging"
)

// Environment variables that override file settings.
const (
	EnvDB       = "NOTEKEEP_DB"
	EnvLogLevel = "NOTEKEEP_LOG_LEVEL"
	EnvAIHost   = "NOTEKEEP_AI_HOST"
	EnvAIModel  = "NOTEKEEP_AI_MODEL"
	EnvAIToken  = "NOTEKEEP_AI_TOKEN"
)

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type AIConfig struct {
	Host         string `toml:"host"`
	Model        string `toml:"model"`
	Token        string `toml:"token"`
	SummaryMin   int    `toml:"summary_min"`
	SummaryMax   int    `toml:"summary_max"`
	KeywordCount int    `toml:"keyword_count"`
}

type TaggingConfig struct {
	PoolSize   int    `toml:"pool_size"`
	BatchSize  int    `toml:"batch_size"`
	MaxRetries int    `toml:"max_retries"`
	RetryDelay string `toml:"retry_delay"`
}

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	AI       AIConfig       `toml:"ai"`
	Tagging  TaggingConfig  `toml:"tagging"`
}

// Default returns the settings used when nothing else is configured.
func Default() *Config {
	aiDefaults := ai.DefaultConfig()
	return &Config{
		Database: DatabaseConfig{Path: "notekeep.db"},
		Log:      LogConfig{Level: "info"},
		AI: AIConfig{
			Host:         aiDefaults.Host,
			Model:        aiDefaults.Model,
			Token:        aiDefaults.Token,
			SummaryMin:   aiDefaults.Summary.MinLength,
			SummaryMax:   aiDefaults.Summary.MaxLength,
			KeywordCount: aiDefaults.KeywordCount,
		},
		Tagging: TaggingConfig{
			BatchSize:  tagging.DefaultBatchSize,
			MaxRetries: 3,
			RetryDelay: "1s",
		},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// Resolve loads the file at path, then the .env file at envFile (if it
// exists), then applies environment overrides.
func Resolve(path, envFile string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if envFile != "" {
		// Variables already set in the environment win over the .env file.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file '%s': %w", envFile, err)
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides settings with the NOTEKEEP_* environment variables that are set.
func (c *Config) ApplyEnv() {
	for env, field := range map[string]*string{
		EnvDB:       &c.Database.Path,
		EnvLogLevel: &c.Log.Level,
		EnvAIHost:   &c.AI.Host,
		EnvAIModel:  &c.AI.Model,
		EnvAIToken:  &c.AI.Token,
	} {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*field = v
		}
	}
}

// Validate checks the settings that the CLI cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("config: database path is required")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.retryDelay(); err != nil {
		return fmt.Errorf("config: tagging retry_delay: %w", err)
	}
	return nil
}

// AIConfig converts the [ai] section into an ai.Config.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.AI.Host),
		ai.WithModel(c.AI.Model),
		ai.WithToken(c.AI.Token),
		ai.WithSummaryLength(c.AI.SummaryMin, c.AI.SummaryMax),
		ai.WithKeywordCount(c.AI.KeywordCount),
	)
}

// RetaggerConfig converts the [tagging] section into a tagging.Config.
func (c *Config) RetaggerConfig() *tagging.Config {
	cfg := tagging.DefaultConfig()
	if c.Tagging.BatchSize > 0 {
		cfg.BatchSize = c.Tagging.BatchSize
	}
	if c.Tagging.MaxRetries > 0 {
		cfg.MaxRetries = c.Tagging.MaxRetries
	}
	if d, err := c.retryDelay(); err == nil && d > 0 {
		cfg.RetryDelay = d
	}
	if c.AI.KeywordCount > 0 {
		cfg.TopN = c.AI.KeywordCount
	}
	return cfg
}

func (c *Config) retryDelay() (time.Duration, error) {
	if c.Tagging.RetryDelay == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Tagging.RetryDelay)
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", s)
	}
}
