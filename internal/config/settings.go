package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port           string   `yaml:"port"`
	DatabaseDriver string   `yaml:"database_driver"`
	DatabaseDSN    string   `yaml:"database_dsn"`
	DefaultUserID  string   `yaml:"default_user_id"`
	AllowedOrigins []string `yaml:"cors_allowed_origins"`
	CryptoKey      string   `yaml:"crypto_key"`
	AI             AIConfig `yaml:"ai"`
}

type AIConfig struct {
	Provider        string `yaml:"provider"`
	Model           string `yaml:"model"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	OpenAIAPIKey    string `yaml:"openai_api_key"`
	GoogleAPIKey    string `yaml:"google_api_key"`
	DeepSeekAPIKey  string `yaml:"deepseek_api_key"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
}

const DefaultUserID = "00000000-0000-0000-0000-000000000001"

// LoadAppConfig reads the optional YAML file named by COACH_CONFIG and lets
// environment variables override every field.
func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	if path := os.Getenv("COACH_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	applyEnvironmentOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func applyEnvironmentOverrides(cfg *AppConfig) {
	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.DatabaseDriver, "DATABASE_DRIVER")
	overrideString(&cfg.DatabaseDSN, "DATABASE_DSN")
	overrideString(&cfg.DefaultUserID, "DEFAULT_USER_ID")
	overrideString(&cfg.CryptoKey, "CRYPTO_KEY")
	overrideString(&cfg.AI.Provider, "AI_PROVIDER")
	overrideString(&cfg.AI.Model, "AI_MODEL")
	overrideString(&cfg.AI.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	overrideString(&cfg.AI.OpenAIAPIKey, "OPENAI_API_KEY")
	overrideString(&cfg.AI.GoogleAPIKey, "GEMINI_API_KEY")
	overrideString(&cfg.AI.GoogleAPIKey, "GOOGLE_API_KEY")
	overrideString(&cfg.AI.DeepSeekAPIKey, "DEEPSEEK_API_KEY")

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	}
	if v := os.Getenv("AI_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.AI.TimeoutSeconds = secs
		}
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DatabaseDriver == "" {
		cfg.DatabaseDriver = "postgres"
	}
	if cfg.DatabaseDriver == "sqlite" && cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "coach.db"
	}
	if cfg.DefaultUserID == "" {
		cfg.DefaultUserID = DefaultUserID
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "anthropic"
	}
	cfg.AI.Provider = strings.ToLower(strings.TrimSpace(cfg.AI.Provider))
	if cfg.AI.TimeoutSeconds <= 0 {
		cfg.AI.TimeoutSeconds = 60
	}
}

func (c *AppConfig) validate() error {
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedDriver, c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database_dsn is required for driver %s", c.DatabaseDriver)
	}
	if c.CryptoKey != "" && len(c.CryptoKey) != 32 {
		return fmt.Errorf("crypto_key must be 32 bytes, got %d", len(c.CryptoKey))
	}
	return nil
}

func overrideString(dst *string, env string) {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*dst = v
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
