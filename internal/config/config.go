// Package config provides configuration loading and validation for the service.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/readiness-check/internal/llm"
	"github.com/spf13/viper"
)

// Config is the process configuration. Every key can be set as an upper-case
// environment variable (PORT, DATABASE_URL, ...) or in readiness.yaml.
type Config struct {
	Port int `mapstructure:"port" validate:"min=1,max=65535"`

	DatabaseDriver string `mapstructure:"database_driver" validate:"oneof=postgres sqlite"`
	DatabaseURL    string `mapstructure:"database_url" validate:"required"`

	LLMProvider     string        `mapstructure:"llm_provider" validate:"oneof=gemini ollama"`
	LLMAPIKey       string        `mapstructure:"llm_api_key" validate:"required_if=LLMProvider gemini"`
	LLMBaseURL      string        `mapstructure:"llm_base_url" validate:"required"`
	LLMModel        string        `mapstructure:"llm_model"`
	LLMTimeout      time.Duration `mapstructure:"llm_timeout" validate:"gt=0"`
	LLMMaxRetries   int           `mapstructure:"llm_max_retries" validate:"min=0,max=5"`
	LLMRetryBackoff time.Duration `mapstructure:"llm_retry_backoff" validate:"min=0"`

	LogLevel  string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=console json"`
	LogFile   string `mapstructure:"log_file"`

	CORSAllowedOrigin string `mapstructure:"cors_allowed_origin" validate:"required"`
}

var defaults = map[string]any{
	"port":                8080,
	"database_driver":     "postgres",
	"database_url":        "",
	"llm_provider":        string(llm.ProviderGemini),
	"llm_api_key":         "",
	"llm_base_url":        "",
	"llm_model":           "",
	"llm_timeout":         llm.DefaultTimeout,
	"llm_max_retries":     0,
	"llm_retry_backoff":   500 * time.Millisecond,
	"log_level":           "info",
	"log_format":          "console",
	"log_file":            "",
	"cors_allowed_origin": "*",
}

// Load reads configuration from the environment and an optional YAML file.
// When configFile is empty, readiness.yaml is looked up in . and ./config.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("readiness")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.ToUpper(f.Tag.Get("mapstructure"))
	})
	return v
}

// Validate checks the configuration and names every offending key.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config error: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "required_if":
		return fmt.Sprintf("%s is required when %s", fe.Field(), strings.Replace(fe.Param(), " ", "=", 1))
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("%s is invalid (%s=%s)", fe.Field(), fe.Tag(), fe.Param())
	}
}

// LLM returns the generative client settings.
func (c *Config) LLM() *llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Provider = llm.Provider(c.LLMProvider)
	cfg.APIKey = c.LLMAPIKey
	cfg.BaseURL = c.LLMBaseURL
	cfg.Model = c.LLMModel
	cfg.Timeout = c.LLMTimeout
	return cfg
}

// storeBudget covers validation, scoring and the database write around the model call.
const storeBudget = 30 * time.Second

// RequestBudget is the longest a submission can take: every model attempt at
// its timeout, the linear backoff between them and the store write.
func (c *Config) RequestBudget() time.Duration {
	attempts := time.Duration(c.LLMMaxRetries + 1)
	retries := time.Duration(c.LLMMaxRetries)
	backoff := c.LLMRetryBackoff * retries * (retries + 1) / 2
	return attempts*c.LLMTimeout + backoff + storeBudget
}

// Redacted returns a copy safe to log.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.LLMAPIKey != "" {
		cp.LLMAPIKey = "***"
	}
	if cp.DatabaseURL != "" {
		cp.DatabaseURL = redactURL(cp.DatabaseURL)
	}
	return cp
}

func redactURL(raw string) string {
	at := strings.LastIndex(raw, "@")
	scheme := strings.Index(raw, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return raw
	}
	return raw[:scheme+3] + "***" + raw[at:]
}
