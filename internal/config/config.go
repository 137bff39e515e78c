// Package config loads cardfan settings from defaults, a TOML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the config file, CARDFAN_*
// environment variables. Keys are dotted section paths, so fan.spacing is
// overridden by CARDFAN_FAN_SPACING.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/matzehuels/cardfan/pkg/errors"
	"github.com/matzehuels/cardfan/pkg/fan"
)

const (
	appName   = "cardfan"
	envPrefix = "CARDFAN"
	fileName  = "config.toml"
)

// Config holds application configuration.
type Config struct {
	Fan    fan.Config   `mapstructure:"fan" toml:"fan"`
	Demo   DemoConfig   `mapstructure:"demo" toml:"demo"`
	Server ServerConfig `mapstructure:"server" toml:"server"`
}

// DemoConfig holds window and deck settings for the interactive hosts.
type DemoConfig struct {
	Width  int `mapstructure:"width" toml:"width"`
	Height int `mapstructure:"height" toml:"height"`
	Cards  int `mapstructure:"cards" toml:"cards"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr" toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Fan:    fan.DefaultConfig(),
		Demo:   DemoConfig{Width: 960, Height: 540, Cards: 7},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Fan.Validate(); err != nil {
		return err
	}
	checks := []error{
		errors.ValidatePositive("demo.width", float64(c.Demo.Width)),
		errors.ValidatePositive("demo.height", float64(c.Demo.Height)),
		errors.ValidateNonNegative("demo.cards", float64(c.Demo.Cards)),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr must not be empty")
	}
	return nil
}

// DefaultPath returns the config file location following XDG
// (~/.config/cardfan/config.toml).
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads configuration. An explicit path must exist; with an empty path
// CARDFAN_CONFIG is consulted, then DefaultPath, and a missing file is not an
// error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetConfigType("toml")

	explicit := path != ""
	if !explicit {
		if p := os.Getenv(envPrefix + "_CONFIG"); p != "" {
			path, explicit = p, true
		} else if p, err := DefaultPath(); err == nil {
			path = p
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" && !explicit {
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "unmarshal config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper, c Config) {
	f := c.Fan
	v.SetDefault("fan.item_width", f.ItemWidth)
	v.SetDefault("fan.item_height", f.ItemHeight)
	v.SetDefault("fan.spacing", f.Spacing)
	v.SetDefault("fan.min_radius", f.MinRadius)
	v.SetDefault("fan.max_angle", f.MaxAngle)
	v.SetDefault("fan.lift", f.Lift)
	v.SetDefault("fan.true_center", f.TrueCenter)
	v.SetDefault("fan.linear_speed", f.LinearSpeed)
	v.SetDefault("fan.fade_duration", f.FadeDuration)
	v.SetDefault("fan.max_duration", f.MaxDuration)
	v.SetDefault("fan.long_press_delay", f.LongPressDelay)
	v.SetDefault("fan.drag_distance", f.DragDistance)
	v.SetDefault("fan.dpi", f.DPI)
	v.SetDefault("fan.lifted", []int{})
	v.SetDefault("demo.width", c.Demo.Width)
	v.SetDefault("demo.height", c.Demo.Height)
	v.SetDefault("demo.cards", c.Demo.Cards)
	v.SetDefault("server.addr", c.Server.Addr)
}

// Encode writes c as TOML.
func Encode(w io.Writer, c Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteDefault writes the default configuration to path, creating parent
// directories. An existing file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeInvalidInput, "%s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "mkdir config dir")
	}
	var buf bytes.Buffer
	if err := Encode(&buf, Default()); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write config")
	}
	return nil
}
