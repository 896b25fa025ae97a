// Package config loads fitcheck settings from a YAML file, a .env file and
// FITCHECK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FITCHECK_LOG_LEVEL.
const EnvPrefix = "FITCHECK"

// Config holds the settings shared by all commands.
type Config struct {
	Format     string        `mapstructure:"format"`
	Instrument string        `mapstructure:"instrument"`
	Strict     bool          `mapstructure:"strict"`
	FailOn     string        `mapstructure:"fail_on"`
	Log        LoggingConfig `mapstructure:"log"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration. An empty path searches the working directory for
// fitcheck.yaml; a missing default file is not an error, a missing explicit
// one is.
func Load(path string) (*Config, error) {
	if err := loadEnvFile(path); err != nil {
		return nil, err
	}

	v := viper.New()
	applyDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("fitcheck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config.Load: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("format", "json")
	v.SetDefault("instrument", "")
	v.SetDefault("strict", true)
	v.SetDefault("fail_on", "none")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
}

// loadEnvFile loads .env from the config file's directory, or the working
// directory when no config file is given. Existing variables win.
func loadEnvFile(configPath string) error {
	dir := "."
	if configPath != "" {
		dir = filepath.Dir(configPath)
	}
	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err != nil {
		return nil
	}
	if err := godotenv.Load(envPath); err != nil {
		return fmt.Errorf("config.Load: %s: %w", envPath, err)
	}
	return nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	switch c.Format {
	case "json", "md":
	default:
		errs = append(errs, fmt.Errorf("format: must be json or md, got %q", c.Format))
	}
	switch c.FailOn {
	case "none", "potential", "poor":
	default:
		errs = append(errs, fmt.Errorf("fail_on: must be none, potential or poor, got %q", c.FailOn))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: invalid %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: must be console or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
