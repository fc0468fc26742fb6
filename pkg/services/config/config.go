package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "FLATTEN"

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Config struct {
	Delimiter string       `mapstructure:"delimiter"`
	Extension string       `mapstructure:"extension"`
	OutputDir string       `mapstructure:"output_dir"`
	LogLevel  string       `mapstructure:"log_level"`
	Workers   int          `mapstructure:"workers"`
	Server    ServerConfig `mapstructure:"server"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("delimiter", ",")
	v.SetDefault("extension", "csv")
	v.SetDefault("output_dir", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("workers", 4)
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
}

// LoadConfig reads the config file at path, if any, and applies FLATTEN_*
// environment overrides on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Delimiter == "" {
		return errors.New("delimiter must not be empty")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// ApplyProfile overrides the output settings with the ones of a named profile
func (c *Config) ApplyProfile(p Profile) {
	if p.Delimiter != "" {
		c.Delimiter = p.Delimiter
	}
	if p.Extension != "" {
		c.Extension = p.Extension
	}
}
