package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates application settings sourced from environment
// variables (optionally via a .env file loaded in main).
type Config struct {
	ServerAddress string `mapstructure:"server_address"`

	MongoURI string `mapstructure:"mongodb_uri"`
	MongoDB  string `mapstructure:"mongodb_db"`

	JWTSecret         string `mapstructure:"jwt_secret"`
	SessionCookieName string `mapstructure:"session_cookie_name"`
	CookieDomain      string `mapstructure:"cookie_domain"`

	GeminiAPIKey             string `mapstructure:"gemini_api_key"`
	GenAIModel               string `mapstructure:"genai_model"`
	GenerationTimeoutSeconds int    `mapstructure:"generation_timeout_seconds"`

	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 7 * 24 * time.Hour

// Load reads configuration solely from environment variables (with
// defaults for everything that has a sane one).
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server_address", ":8080")
	v.SetDefault("mongodb_db", "careerforge")
	v.SetDefault("session_cookie_name", "cf_session")
	v.SetDefault("cookie_domain", "")
	v.SetDefault("genai_model", "gemini-2.0-flash")
	v.SetDefault("generation_timeout_seconds", 60)
	v.SetDefault("allowed_origins", []string{"*"})

	v.AutomaticEnv()

	for _, key := range []string{
		"server_address",
		"mongodb_uri",
		"mongodb_db",
		"jwt_secret",
		"session_cookie_name",
		"cookie_domain",
		"gemini_api_key",
		"genai_model",
		"generation_timeout_seconds",
		"allowed_origins",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// GenerationTimeout bounds every outbound generation call; on expiry the
// operation fails upstream-style instead of hanging the request.
func (c *Config) GenerationTimeout() time.Duration {
	return time.Duration(c.GenerationTimeoutSeconds) * time.Second
}

func validate(cfg Config) error {
	if cfg.MongoURI == "" {
		return errors.New("MONGODB_URI is required")
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}
