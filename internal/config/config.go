// Package config loads service configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the service.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Storage     StorageConfig     `yaml:"storage"`
	Redis       RedisConfig       `yaml:"redis"`
	Suggestions SuggestionsConfig `yaml:"suggestions"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// PublicURL is the externally reachable base URL embedded in tracking
	// links and QR codes.
	PublicURL   string   `yaml:"public_url"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// StorageConfig selects the storage backend. A non-empty DatabaseURL picks
// the remote Postgres strategy; otherwise the service falls back to the
// local JSON file store under LocalPath.
type StorageConfig struct {
	DatabaseURL string `yaml:"database_url"`
	LocalPath   string `yaml:"local_path"`
}

// Remote reports whether the remote backend is configured.
func (s StorageConfig) Remote() bool { return s.DatabaseURL != "" }

// RedisConfig holds the optional scan queue settings. An empty Addr
// disables the queue and scans are written directly.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Enabled reports whether the scan queue is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// SuggestionsConfig holds the suggestion oracle settings.
type SuggestionsConfig struct {
	// Provider is "openai", "bedrock", or empty to disable (fixed
	// fallback strings are served instead).
	Provider       string `yaml:"provider"`
	OpenAIAPIKey   string `yaml:"openai_api_key"`
	OpenAIModel    string `yaml:"openai_model"`
	BedrockModelID string `yaml:"bedrock_model_id"`
	AWSRegion      string `yaml:"aws_region"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.PublicURL == "" {
		cfg.Server.PublicURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	if cfg.Storage.LocalPath == "" {
		cfg.Storage.LocalPath = "./data"
	}
	if cfg.Suggestions.OpenAIModel == "" {
		cfg.Suggestions.OpenAIModel = "gpt-4o-mini"
	}
	if cfg.Suggestions.BedrockModelID == "" {
		cfg.Suggestions.BedrockModelID = "anthropic.claude-3-sonnet-20240229-v1:0"
	}
	if cfg.Suggestions.AWSRegion == "" {
		cfg.Suggestions.AWSRegion = "us-east-1"
	}
}

// LoadFromEnv loads configuration with environment variable overrides.
// It loads a .env file (if present) before reading env vars, so secrets can
// live in .env locally and in real env vars in production. A missing config
// file is not an error: defaults plus env vars are enough to run.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	var cfg *Config
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			cfg = Default()
		} else {
			cfg = loaded
		}
	} else {
		cfg = Default()
	}

	// Override with environment variables if present
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if u := os.Getenv("PUBLIC_URL"); u != "" {
		cfg.Server.PublicURL = u
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Storage.DatabaseURL = dbURL
	}
	if dir := os.Getenv("LOCAL_DATA_DIR"); dir != "" {
		cfg.Storage.LocalPath = dir
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if pw := os.Getenv("REDIS_PASSWORD"); pw != "" {
		cfg.Redis.Password = pw
	}
	if provider := os.Getenv("SUGGESTIONS_PROVIDER"); provider != "" {
		cfg.Suggestions.Provider = provider
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.Suggestions.OpenAIAPIKey = apiKey
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.Suggestions.OpenAIModel = model
	}
	if modelID := os.Getenv("BEDROCK_MODEL_ID"); modelID != "" {
		cfg.Suggestions.BedrockModelID = modelID
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		cfg.Suggestions.AWSRegion = region
	}

	return cfg, nil
}
