// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	// Load .env file to environments
	_ "github.com/joho/godotenv/autoload"
)

// Config holds every setting the server reads at start-up
type Config struct {
	Port         int    `mapstructure:"PORT"`
	GinMode      string `mapstructure:"GIN_MODE"`
	AllowOrigins string `mapstructure:"ALLOW_ORIGIN"`

	DBHost        string `mapstructure:"DB_HOST"`
	DBPort        string `mapstructure:"DB_PORT"`
	DBUser        string `mapstructure:"DB_USERNAME"`
	DBPassword    string `mapstructure:"DB_PASSWORD"`
	DBName        string `mapstructure:"DB_DATABASE"`
	UseConnStr    bool   `mapstructure:"USE_CONNECTION_STR"`
	ConnectionStr string `mapstructure:"DB_CONNECTION_STR"`

	SecretKey string        `mapstructure:"SECRET_KEY"`
	JwtTTL    time.Duration `mapstructure:"JWT_TTL"`

	RedisURL    string `mapstructure:"REDIS_URL"`
	GCSBucket   string `mapstructure:"GCS_BUCKET"`
	RateLimit   uint   `mapstructure:"RATE_LIMIT_REQUESTS_PER_SECOND"`
	AuthLogging bool   `mapstructure:"LOGGING"`

	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	OauthRedirectURL   string `mapstructure:"OAUTH_REDIRECT_URL"`
}

var defaults = map[string]interface{}{
	"PORT":                           8080,
	"GIN_MODE":                       "debug",
	"ALLOW_ORIGIN":                   "http://localhost:3000",
	"DB_HOST":                        "localhost",
	"DB_PORT":                        "5432",
	"DB_USERNAME":                    "",
	"DB_PASSWORD":                    "",
	"DB_DATABASE":                    "",
	"USE_CONNECTION_STR":             false,
	"DB_CONNECTION_STR":              "",
	"SECRET_KEY":                     "",
	"JWT_TTL":                        "1h",
	"REDIS_URL":                      "",
	"GCS_BUCKET":                     "",
	"RATE_LIMIT_REQUESTS_PER_SECOND": 5,
	"LOGGING":                        false,
	"GOOGLE_CLIENT_ID":               "",
	"GOOGLE_CLIENT_SECRET":           "",
	"OAUTH_REDIRECT_URL":             "",
}

// Load reads configuration from environment variables, falling back to defaults
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if cfg.RateLimit == 0 {
		cfg.RateLimit = 5
	}
	if cfg.SecretKey == "" && cfg.GinMode != gin.TestMode {
		return nil, fmt.Errorf("SECRET_KEY is required to sign access tokens")
	}
	if cfg.JwtTTL <= 0 {
		return nil, fmt.Errorf("invalid JWT_TTL: must be positive")
	}

	return cfg, nil
}

// Origins splits ALLOW_ORIGIN into the list cors expects
func (c *Config) Origins() []string {
	origins := []string{}
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
