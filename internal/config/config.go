// Package config loads the server settings from the environment, with an
// optional .env file overlay.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port string `env:"PORT,default=8080" validate:"required"`

	StoreDriver   string        `env:"STORE_DRIVER,default=mongo" validate:"oneof=mongo memory"`
	MongoURI      string        `env:"MONGO_URI,default=mongodb://localhost:27017"`
	MongoDatabase string        `env:"MONGO_DATABASE,default=bssm" validate:"required"`
	MongoTimeout  time.Duration `env:"MONGO_TIMEOUT,default=5s" validate:"gt=0"`

	// "*" allows every origin, otherwise a comma-separated list.
	CORSOrigins string `env:"CORS_ORIGINS,default=*"`

	TokenMode   string        `env:"TOKEN_MODE,default=demo" validate:"oneof=demo jwt"`
	TokenPrefix string        `env:"TOKEN_PREFIX,default=demo-"`
	JWTSecret   string        `env:"JWT_SECRET" validate:"required_if=TokenMode jwt"`
	JWTTTL      time.Duration `env:"JWT_TTL,default=4h"`

	// Reports are disabled when MinioEndpoint is empty.
	MinioEndpoint   string        `env:"MINIO_ENDPOINT"`
	MinioAccessKey  string        `env:"MINIO_ACCESS_KEY,default=minioadmin"`
	MinioSecretKey  string        `env:"MINIO_SECRET_KEY,default=minioadmin"`
	MinioBucket     string        `env:"MINIO_BUCKET,default=bssm-reports"`
	MinioUseSSL     bool          `env:"MINIO_USE_SSL,default=false"`
	ReportURLExpiry time.Duration `env:"REPORT_URL_EXPIRY,default=1h" validate:"gt=0"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text" validate:"oneof=text json"`
	AccessLog bool   `env:"ACCESS_LOG,default=true"`
}

// Load reads configuration from environment variables, loading a .env file
// first if one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// AllowedOrigins returns the configured CORS origins, or nil when any
// origin is allowed.
func (c *Config) AllowedOrigins() []string {
	if strings.TrimSpace(c.CORSOrigins) == "*" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) ReportsEnabled() bool {
	return c.MinioEndpoint != ""
}
