// Package config loads application configuration from a YAML file, .env and the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/careerforward/career-quest/internal/scoring"
)

// EnvPrefix prefixes every automatically bound environment variable (CQ_SERVER_PORT, ...).
const EnvPrefix = "CQ"

// DefaultConfigName is looked up in the working directory when no --config is given.
const DefaultConfigName = "career_quest"

// Config is the full application configuration.
type Config struct {
	DatabaseURL string         `mapstructure:"database_url"`
	Server      ServerConfig   `mapstructure:"server"`
	Gemini      GeminiConfig   `mapstructure:"gemini"`
	Market      MarketConfig   `mapstructure:"market"`
	Redis       RedisConfig    `mapstructure:"redis"`
	RabbitMQ    RabbitMQConfig `mapstructure:"rabbitmq"`
	Storage     StorageConfig  `mapstructure:"storage"`
	Scoring     scoring.Rubric `mapstructure:"scoring"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigin   string        `mapstructure:"allowed_origin"`
}

// GeminiConfig configures the LLM client used for resume parsing and demand estimates.
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Temperature float32 `mapstructure:"temperature"`
}

// MarketConfig configures market-data providers.
type MarketConfig struct {
	APIURL   string        `mapstructure:"api_url"`
	APIKey   string        `mapstructure:"api_key"`
	UseLLM   bool          `mapstructure:"use_llm"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// RedisConfig configures the market-data cache. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RabbitMQConfig configures the async scoring worker.
type RabbitMQConfig struct {
	URL       string `mapstructure:"url"`
	Queue     string `mapstructure:"queue"`
	Exchange  string `mapstructure:"exchange"`
	Consumers int    `mapstructure:"consumers"`
	Prefetch  int    `mapstructure:"prefetch"`
}

// StorageConfig configures the S3-compatible bucket holding uploaded resumes.
type StorageConfig struct {
	Bucket          string `mapstructure:"bucket"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
}

// explicitEnv binds conventional variable names that do not carry the CQ_ prefix.
var explicitEnv = map[string]string{
	"database_url":              "DATABASE_URL",
	"gemini.api_key":            "GEMINI_API_KEY",
	"redis.addr":                "REDIS_ADDR",
	"redis.password":            "REDIS_PASSWORD",
	"rabbitmq.url":              "RABBITMQ_URL",
	"storage.bucket":            "S3_BUCKET",
	"storage.endpoint":          "S3_ENDPOINT",
	"storage.region":            "S3_REGION",
	"storage.access_key_id":     "S3_ACCESS_KEY_ID",
	"storage.secret_access_key": "S3_SECRET_ACCESS_KEY",
	"market.api_url":            "MARKET_API_URL",
	"market.api_key":            "MARKET_API_KEY",
	"server.port":               "PORT",
}

// Load reads configuration. When path is empty, career_quest.yaml in the working
// directory is used if present; a missing default file is not an error.
func Load(path string) (*Config, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith loads configuration into v, which may carry flag bindings.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, env := range explicitEnv {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.NewReplacer(".", "_").Replace(key)), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{Scoring: scoring.DefaultRubric()}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database_url", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.allowed_origin", "*")
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.temperature", 0.1)
	v.SetDefault("market.api_url", "")
	v.SetDefault("market.api_key", "")
	v.SetDefault("market.use_llm", false)
	v.SetDefault("market.cache_ttl", "24h")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.queue", "score_requests")
	v.SetDefault("rabbitmq.exchange", "score_updates")
	v.SetDefault("rabbitmq.consumers", 2)
	v.SetDefault("rabbitmq.prefetch", 4)
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.region", "auto")
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.secret_access_key", "")
	v.SetDefault("storage.use_path_style", false)

	// Registering the rubric keys lets CQ_SCORING_* variables override them.
	if rubric, err := toMap(scoring.DefaultRubric()); err == nil {
		v.SetDefault("scoring", rubric)
	}
}

func toMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// normalize validates ranges and fills the rubric's zero fields.
func (c *Config) normalize() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.RabbitMQ.Consumers < 1 {
		c.RabbitMQ.Consumers = 1
	}
	if c.RabbitMQ.Prefetch < c.RabbitMQ.Consumers {
		c.RabbitMQ.Prefetch = c.RabbitMQ.Consumers
	}
	if c.Market.CacheTTL < 0 {
		return fmt.Errorf("market.cache_ttl must not be negative: %s", c.Market.CacheTTL)
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		return fmt.Errorf("gemini.temperature out of range: %v", c.Gemini.Temperature)
	}
	c.Scoring = c.Scoring.Normalized()
	return nil
}
