// Package config loads actiond settings from defaults, a YAML file and
// ACTIOND_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	NATS    NATSConfig    `mapstructure:"nats"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Breaker BreakerConfig `mapstructure:"breaker"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

type NATSConfig struct {
	URL     string        `mapstructure:"url"`
	Subject string        `mapstructure:"subject"`
	Queue   string        `mapstructure:"queue"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

type BreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxFailures uint32        `mapstructure:"max_failures"`
	OpenTimeout time.Duration `mapstructure:"open_timeout"`
}

type TracingConfig struct {
	// Endpoint is an OTLP/HTTP URL. Tracing is off when empty.
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

// EnvPrefix prefixes every environment override, e.g. ACTIOND_NATS_URL.
const EnvPrefix = "ACTIOND"

func setDefaults(v *viper.Viper) {
	v.SetDefault("nats.url", "nats://127.0.0.1:4222")
	v.SetDefault("nats.subject", "actions.dispatch")
	v.SetDefault("nats.queue", "actiond")
	v.SetDefault("nats.timeout", "10s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.addr", ":9090")
	v.SetDefault("breaker.enabled", false)
	v.SetDefault("breaker.max_failures", 5)
	v.SetDefault("breaker.open_timeout", "30s")
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", "actiond")
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load reads configPath, or config.yaml from the working directory and
// /etc/actiond when configPath is empty. A missing default file is not an
// error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/actiond")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
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

// Validate reports settings that would leave the daemon unusable.
func (c *Config) Validate() error {
	if c.NATS.URL == "" {
		return errors.New("config: nats.url is required")
	}
	if c.NATS.Subject == "" {
		return errors.New("config: nats.subject is required")
	}
	if c.NATS.Timeout <= 0 {
		return errors.New("config: nats.timeout must be positive")
	}
	if c.Breaker.Enabled && c.Breaker.MaxFailures == 0 {
		return errors.New("config: breaker.max_failures must be at least 1")
	}
	return nil
}
