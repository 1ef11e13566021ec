// Package config loads server, logging and typewriter settings from an
// optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix      = "PORTFOLIO"
	configName     = "portfolio"
	configFileType = "yaml"
)

// Validation errors returned by Load and Validate.
var (
	ErrInvalidPort   = errors.New("server.port must be between 1 and 65535")
	ErrInvalidMode   = errors.New("server.mode must be debug, release or test")
	ErrInvalidFormat = errors.New("log.format must be text or json")
)

// Config is the full runtime configuration.
type Config struct {
	Server     Server     `mapstructure:"server"`
	Log        Log        `mapstructure:"log"`
	Typewriter Typewriter `mapstructure:"typewriter"`
	Content    Content    `mapstructure:"content"`

	// ConfigFileUsed is the file that was read, empty if none.
	ConfigFileUsed string `mapstructure:"-"`
}

// Server holds the HTTP listener settings.
type Server struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Mode      string `mapstructure:"mode"`
	ImagesDir string `mapstructure:"images_dir"`
	// TrustedProxies lists the proxy addresses or CIDRs whose
	// X-Forwarded-For header is believed. Empty trusts no one.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// Addr is the listen address.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Log selects log level, format and an optional log file.
type Log struct {
	Debug  bool   `mapstructure:"debug"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Typewriter holds the hero animation timings. Zero means default.
type Typewriter struct {
	TypeInterval   time.Duration `mapstructure:"type_interval"`
	DeleteInterval time.Duration `mapstructure:"delete_interval"`
	Hold           time.Duration `mapstructure:"hold"`
}

// Content points at an optional site content file.
type Content struct {
	// File overrides the embedded site content.
	File string `mapstructure:"file"`
}

// Load reads configFile, or portfolio.yaml from the working directory
// when configFile is empty. A missing default file is not an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
	}
	v.SetConfigType(configFileType)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT is what most hosting platforms set.
	if err := v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ConfigFileUsed = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.images_dir", "./images")
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("log.debug", false)
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("typewriter.type_interval", "150ms")
	v.SetDefault("typewriter.delete_interval", "0s")
	v.SetDefault("typewriter.hold", "2s")
	v.SetDefault("content.file", "")
}

// Validate checks values that viper cannot type-check.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Server.Mode)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Log.Format)
	}
	return nil
}
