// Package config loads configuration for commands embedding the BankID
// client, such as cmd/bankid-demo.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/klarhet/bankid/pkg/bankid/endpoint"
)

// validate is a package-level singleton; creating a validator per call is
// expensive.
var validate = validator.New()

// Config represents the demo application configuration
type Config struct {
	Environment EnvironmentConfig `mapstructure:"environment"`
	Order       OrderConfig       `mapstructure:"order"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// EnvironmentConfig selects the BankID environment and, for production, the
// relying-party certificate to present.
type EnvironmentConfig struct {
	Name         string `mapstructure:"name" default:"sandbox" validate:"oneof=sandbox production"`
	CertFile     string `mapstructure:"cert_file" validate:"required_if=Name production"`
	CertPassword string `mapstructure:"cert_password"`
}

// OrderConfig contains order settings used by the demo
type OrderConfig struct {
	EndUserIP    string        `mapstructure:"end_user_ip" default:"127.0.0.1" validate:"ip"`
	PollInterval time.Duration `mapstructure:"poll_interval" default:"2s" validate:"gte=1s"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level" default:"info"`
	Format     string `mapstructure:"format" default:"console"`
	OutputPath string `mapstructure:"output_path"`
}

// Load reads, defaults and validates the configuration file
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := defaults.Set(&config); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	if err := validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Endpoint builds the environment profile the configuration selects. For
// production it loads the relying-party identity from the configured PKCS#12
// bundle; the bundled sandbox credentials are used only for sandbox.
func (c *EnvironmentConfig) Endpoint() (endpoint.Endpoint, error) {
	if c.Name != "production" {
		return endpoint.Sandbox(), nil
	}

	der, err := os.ReadFile(c.CertFile)
	if err != nil {
		return endpoint.Endpoint{}, fmt.Errorf("read relying-party certificate: %w", err)
	}
	identity, err := endpoint.IdentityFromPKCS12(der, c.CertPassword)
	if err != nil {
		return endpoint.Endpoint{}, err
	}
	return endpoint.Production(identity), nil
}
