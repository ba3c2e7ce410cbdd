package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Server     ServerConfig
	Dictionary DictionaryConfig
	Logging    LoggingConfig
	Metrics    MetricsConfig
}

// ServerConfig holds inbound Diameter server configuration
type ServerConfig struct {
	ListenAddr     string
	MaxConnections int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxMessageSize uint32
}

// DictionaryConfig holds AVP dictionary configuration
type DictionaryConfig struct {
	// Path to an XML dictionary file. Empty selects the embedded base
	// protocol dictionary.
	Path string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string // "debug", "info", "warn", "error"
}

// MetricsConfig holds traffic stats configuration
type MetricsConfig struct {
	Enabled  bool
	Interval time.Duration
}

// Load loads configuration from file and environment variables
// Priority order (highest to lowest):
// 1. Environment variables (prefixed with DIAMPEER_)
// 2. Config file specified by configPath
// 3. config.yaml in standard paths
// 4. Hardcoded defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/diam-peer")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("DIAMPEER")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file found; defaults and environment variables apply.
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.listenAddr", "127.0.0.1:3868")
	v.SetDefault("server.maxConnections", 0)
	v.SetDefault("server.readTimeout", "0s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.maxMessageSize", 65535)

	// Dictionary defaults
	v.SetDefault("dictionary.path", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.interval", "30s")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics config: %w", err)
	}
	return nil
}

// Validate validates the ServerConfig
func (c *ServerConfig) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listenAddr is required")
	}
	if c.MaxConnections < 0 {
		return fmt.Errorf("maxConnections must be non-negative")
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("readTimeout must be non-negative")
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("writeTimeout must be non-negative")
	}
	return nil
}

// Validate validates the LoggingConfig
func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error", "fatal":
		return nil
	default:
		return fmt.Errorf("invalid log level: %s", c.Level)
	}
}

// Validate validates the MetricsConfig
func (c *MetricsConfig) Validate() error {
	if c.Enabled && c.Interval <= 0 {
		return fmt.Errorf("interval must be positive when metrics are enabled")
	}
	return nil
}
