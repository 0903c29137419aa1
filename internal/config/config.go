// Package config provides explicit configuration objects for the server and
// CLI. Nothing here is a package-level singleton; loaded configs are passed
// to the components that need them.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Server holds the full server configuration, loaded from an optional YAML
// file with environment-variable overrides.
type Server struct {
	Port        int    `mapstructure:"port"`
	DatabaseURL string `mapstructure:"database_url"`

	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`
	BcryptCost         int    `mapstructure:"bcrypt_cost"`
	PasswordPepper     string `mapstructure:"password_pepper"`

	GoogleClientID     string `mapstructure:"google_client_id"`
	GoogleClientSecret string `mapstructure:"google_client_secret"`
	GoogleRedirectURL  string `mapstructure:"google_redirect_url"`

	S3Endpoint  string `mapstructure:"s3_endpoint"`
	S3Region    string `mapstructure:"s3_region"`
	S3Bucket    string `mapstructure:"s3_bucket"`
	S3AccessKey string `mapstructure:"s3_access_key"`
	S3SecretKey string `mapstructure:"s3_secret_key"`
	S3PublicURL string `mapstructure:"s3_public_url"`

	AMQPURL   string `mapstructure:"amqp_url"`
	AMQPQueue string `mapstructure:"amqp_queue"`
}

// LoadServer reads configuration from the given file (optional; empty path
// skips the file) and from CVBUILDER_* environment variables.
func LoadServer(path string) (*Server, error) {
	v := viper.New()
	v.SetEnvPrefix("cvbuilder")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so AutomaticEnv picks it up during Unmarshal.
	v.SetDefault("port", 8080)
	v.SetDefault("database_url", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_expiration_hours", 24)
	v.SetDefault("bcrypt_cost", 12)
	v.SetDefault("password_pepper", "")
	v.SetDefault("google_client_id", "")
	v.SetDefault("google_client_secret", "")
	v.SetDefault("google_redirect_url", "")
	v.SetDefault("s3_endpoint", "")
	v.SetDefault("s3_region", "auto")
	v.SetDefault("s3_bucket", "")
	v.SetDefault("s3_access_key", "")
	v.SetDefault("s3_secret_key", "")
	v.SetDefault("s3_public_url", "")
	v.SetDefault("amqp_url", "")
	v.SetDefault("amqp_queue", "cv-events")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Server{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required values and numeric ranges.
func (c *Server) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: database_url is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("config error: jwt_secret is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port out of range: %d", c.Port)
	}
	if c.JWTExpirationHours < 1 {
		return fmt.Errorf("config error: jwt_expiration_hours must be at least 1, got: %d", c.JWTExpirationHours)
	}
	return nil
}

// JWT returns the JWT sub-config as an explicit object.
func (c *Server) JWT() *JWTConfig {
	return &JWTConfig{Secret: c.JWTSecret, ExpirationHours: c.JWTExpirationHours}
}

// Password returns the password-hashing sub-config as an explicit object.
func (c *Server) Password() (*PasswordConfig, error) {
	return NewPasswordConfig(c.BcryptCost, c.PasswordPepper)
}
