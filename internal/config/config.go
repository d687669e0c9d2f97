package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// OpenAIEncoderConfig holds configuration for the OpenAI-compatible encoder.
type OpenAIEncoderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EncoderConfig selects and configures the text encoder implementation.
type EncoderConfig struct {
	Type        string               `yaml:"type"`
	MaxInputLen int                  `yaml:"max_input_len"`
	OpenAI      *OpenAIEncoderConfig `yaml:"openai,omitempty"`
}

// MatcherConfig holds the decision thresholds and the per-query time bound.
// Thresholds are inclusive lower bounds on the cosine scale [-1, 1].
type MatcherConfig struct {
	AnswerThreshold  float64 `yaml:"answer_threshold"`
	MarginThreshold  float64 `yaml:"margin_threshold"`
	ClarifyThreshold float64 `yaml:"clarify_threshold"`
	TopK             int     `yaml:"top_k"`
	TimeoutSecs      int     `yaml:"timeout_secs"`
}

// RedisConfig contains connection details for a Redis session store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SessionConfig selects and configures the conversation session store.
type SessionConfig struct {
	Store           string       `yaml:"store"`
	IdleTimeoutSecs int          `yaml:"idle_timeout_secs"`
	MaxFollowUps    int          `yaml:"max_follow_ups"`
	Redis           *RedisConfig `yaml:"redis,omitempty"`
}

// MessagesConfig holds the operator-tunable response templates.
type MessagesConfig struct {
	Fallback      string `yaml:"fallback"`
	ClarifyPrompt string `yaml:"clarify_prompt"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Encoder  EncoderConfig  `yaml:"encoder"`
	Matcher  MatcherConfig  `yaml:"matcher"`
	Session  SessionConfig  `yaml:"session"`
	Messages MessagesConfig `yaml:"messages"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// MatcherTimeout returns the decision time bound as a duration.
func (c *AppConfig) MatcherTimeout() time.Duration {
	return time.Duration(c.Matcher.TimeoutSecs) * time.Second
}

// IdleTimeout returns the session idle expiry as a duration.
func (c *AppConfig) IdleTimeout() time.Duration {
	return time.Duration(c.Session.IdleTimeoutSecs) * time.Second
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./faqbot.yaml first, then ~/.config/faqbot/config.yaml.
// If neither exists, it writes defaults to ~/.config/faqbot/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "faqbot.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "faqbot", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

// applyConfigDefaults fills zero values with the documented defaults so a
// partial YAML file stays valid. Threshold defaults (answer 0.75, margin
// 0.05, clarify 0.5) are starting points meant to be tuned per deployment.
func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Encoder.Type == "" {
		cfg.Encoder.Type = "tfidf"
	}
	if cfg.Encoder.MaxInputLen == 0 {
		cfg.Encoder.MaxInputLen = 2000
	}
	if cfg.Encoder.Type == "openai" && cfg.Encoder.OpenAI != nil {
		if cfg.Encoder.OpenAI.BaseURL == "" {
			cfg.Encoder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Encoder.OpenAI.APIKeyEnv == "" {
			cfg.Encoder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Encoder.OpenAI.Model == "" {
			cfg.Encoder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Encoder.OpenAI.TimeoutSecs == 0 {
			cfg.Encoder.OpenAI.TimeoutSecs = 30
		}
	}
	if cfg.Matcher.AnswerThreshold == 0 {
		cfg.Matcher.AnswerThreshold = 0.75
	}
	if cfg.Matcher.MarginThreshold == 0 {
		cfg.Matcher.MarginThreshold = 0.05
	}
	if cfg.Matcher.ClarifyThreshold == 0 {
		cfg.Matcher.ClarifyThreshold = 0.5
	}
	if cfg.Matcher.TopK == 0 {
		cfg.Matcher.TopK = 3
	}
	if cfg.Matcher.TimeoutSecs == 0 {
		cfg.Matcher.TimeoutSecs = 10
	}
	if cfg.Session.Store == "" {
		cfg.Session.Store = "memory"
	}
	if cfg.Session.IdleTimeoutSecs == 0 {
		cfg.Session.IdleTimeoutSecs = 1800
	}
	if cfg.Session.MaxFollowUps == 0 {
		cfg.Session.MaxFollowUps = 1
	}
	if cfg.Messages.Fallback == "" {
		cfg.Messages.Fallback = "Sorry, I don't have an answer for that. Please contact us directly."
	}
	if cfg.Messages.ClarifyPrompt == "" {
		cfg.Messages.ClarifyPrompt = "Did you mean one of these?"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}
