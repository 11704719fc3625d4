package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// AppConfig represents the contents of a marquee config file.
type AppConfig struct {
	Text          string `yaml:"text,omitempty" toml:"text"`
	SpeedMS       int    `yaml:"speed_ms,omitempty" toml:"speed_ms"`
	MinSpeedMS    int    `yaml:"min_speed_ms,omitempty" toml:"min_speed_ms"`
	IdlePollMS    int    `yaml:"idle_poll_ms,omitempty" toml:"idle_poll_ms"`
	FallbackWidth int    `yaml:"fallback_width,omitempty" toml:"fallback_width"`
	NoBanner      bool   `yaml:"no_banner" toml:"no_banner"`
	Debug         bool   `yaml:"debug" toml:"debug"`
	LogFile       string `yaml:"log_file,omitempty" toml:"log_file"`
}

// Constants for default values.
const (
	DefaultText          = "Hello, Marquee!"
	DefaultSpeedMS       = 150
	DefaultMinSpeedMS    = 10
	DefaultIdlePollMS    = 200
	DefaultFallbackWidth = 80
)

// Config file names searched in the working directory, in order.
var localConfigNames = []string{".marquee.yaml", ".marquee.yml", ".marquee.toml"}

// Defaults returns the hardcoded configuration.
func Defaults() *AppConfig {
	return &AppConfig{
		Text:          DefaultText,
		SpeedMS:       DefaultSpeedMS,
		MinSpeedMS:    DefaultMinSpeedMS,
		IdlePollMS:    DefaultIdlePollMS,
		FallbackWidth: DefaultFallbackWidth,
	}
}

// LoadConfig loads the config file at path, or the first one found by
// getConfigPath when path is empty, merged over the defaults. The returned
// path is empty when no file was used.
func LoadConfig(path string) (*AppConfig, string, error) {
	appCfg := Defaults()

	if path == "" {
		path = getConfigPath()
		if path == "" {
			return appCfg, "", nil
		}
	}

	fileCfg, err := LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	merge(appCfg, fileCfg)
	return appCfg, path, nil
}

// LoadFile decodes a single config file. The format is chosen by extension:
// .toml is TOML, anything else is YAML.
func LoadFile(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var fileCfg AppConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing TOML config %s: %w", path, err)
		}
		return &fileCfg, nil
	}
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing YAML config %s: %w", path, err)
	}
	return &fileCfg, nil
}

// merge copies set fields of src onto dst.
func merge(dst, src *AppConfig) {
	if src.Text != "" {
		dst.Text = src.Text
	}
	if src.SpeedMS != 0 {
		dst.SpeedMS = src.SpeedMS
	}
	if src.MinSpeedMS != 0 {
		dst.MinSpeedMS = src.MinSpeedMS
	}
	if src.IdlePollMS != 0 {
		dst.IdlePollMS = src.IdlePollMS
	}
	if src.FallbackWidth != 0 {
		dst.FallbackWidth = src.FallbackWidth
	}
	dst.NoBanner = src.NoBanner
	dst.Debug = src.Debug
	if src.LogFile != "" {
		dst.LogFile = src.LogFile
	}
}

// getConfigPath looks for a config file in the working directory first,
// then under the user config directory (XDG on Linux).
func getConfigPath() string {
	for _, name := range localConfigNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}

	configHome, err := os.UserConfigDir()
	// An empty or root config dir is not suitable for building a path.
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.toml"} {
		p := filepath.Join(configHome, "marquee", name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
