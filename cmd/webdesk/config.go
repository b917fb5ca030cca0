package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configDir  = ".config/webdesk"
	configName = "config"
	configType = "toml"
	envPrefix  = "WEBDESK"
)

// Metrics sources.
const (
	metricsRandom = "random"
	metricsHost   = "host"
)

var errInvalidConfig = errors.New("invalid configuration")

type config struct {
	Server struct {
		Addr            string        `mapstructure:"addr"`
		StaticDir       string        `mapstructure:"static_dir"`
		CORSOrigin      string        `mapstructure:"cors_origin"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
		StreamClients   int           `mapstructure:"stream_clients"`
	} `mapstructure:"server"`
	Screen struct {
		Width  int `mapstructure:"width"`
		Height int `mapstructure:"height"`
	} `mapstructure:"screen"`
	Prefs struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"prefs"`
	Metrics struct {
		Source string `mapstructure:"source"`
	} `mapstructure:"metrics"`
	Apps struct {
		File string `mapstructure:"file"`
	} `mapstructure:"apps"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.static_dir", "")
	v.SetDefault("server.cors_origin", "*")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.stream_clients", 64)
	v.SetDefault("screen.width", 1920)
	v.SetDefault("screen.height", 1080)
	v.SetDefault("prefs.path", filepath.Join(home, configDir, "prefs.toml"))
	v.SetDefault("metrics.source", metricsRandom)
	v.SetDefault("apps.file", "")
	v.SetDefault("log.level", "info")
}

// loadConfig reads the TOML config at path, or the default location when
// path is empty, then applies WEBDESK_* environment overrides. A missing
// default config file is not an error; a missing explicit one is.
func loadConfig(v *viper.Viper, path string) (config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	setDefaults(v, home)
	v.SetConfigType(configType)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(filepath.Join(home, configDir))
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	switch {
	case c.Screen.Width < 0 || c.Screen.Height < 0:
		return fmt.Errorf("%w: screen size %dx%d", errInvalidConfig, c.Screen.Width, c.Screen.Height)
	case c.Server.StreamClients < 0:
		return fmt.Errorf("%w: server.stream_clients must not be negative", errInvalidConfig)
	case c.Metrics.Source != metricsRandom && c.Metrics.Source != metricsHost:
		return fmt.Errorf("%w: metrics.source must be %q or %q, got %q", errInvalidConfig, metricsRandom, metricsHost, c.Metrics.Source)
	}
	return nil
}
