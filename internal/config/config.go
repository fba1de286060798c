package config

import "github.com/kelseyhightower/envconfig"

// Config holds application configuration loaded from environment variables.
// It is read once at process start and treated as immutable afterwards.
type Config struct {
	Port          int    `envconfig:"PORT" default:"8080"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL   string `envconfig:"DATABASE_URL" required:"true"`
	TokenSecret   string `envconfig:"TOKEN_SECRET" required:"true"`
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" required:"true"`
	TokenTTLHours int    `envconfig:"TOKEN_TTL_HOURS" default:"24"`
	BcryptCost    int    `envconfig:"BCRYPT_COST" default:"12"`
	Version       string `envconfig:"VERSION" default:"dev"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
