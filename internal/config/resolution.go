package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Sources recorded on ResolvedConfig.
const (
	SourceCLI     = "cli"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
)

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	ConfigPath string
	Text       string
	SpeedMS    int
	NoBanner   bool
	Debug      bool
	LogFile    string

	// Flags to track if they were explicitly set by the user
	TextSet     bool
	SpeedSet    bool
	NoBannerSet bool
	DebugSet    bool
	LogFileSet  bool
}

// ResolvedConfig holds the final configuration after applying all priority rules.
type ResolvedConfig struct {
	Text          string
	Speed         time.Duration
	MinSpeed      time.Duration
	IdlePoll      time.Duration
	FallbackWidth int
	NoBanner      bool
	Debug         bool
	LogFile       string

	// Resolution metadata (for debugging)
	ConfigPath  string // empty when no file was loaded
	TextSource  string
	SpeedSource string
}

// ResolveConfig resolves configuration from all sources with explicit priority order.
//
// Resolution order:
//  1. Load base config from the config file (or defaults)
//  2. Apply environment variables
//  3. Apply CLI flags (highest priority)
//  4. Validate, clamping the speed to the floor
func ResolveConfig(cliFlags CliFlags) (*ResolvedConfig, error) {
	appCfg, path, err := LoadConfig(cliFlags.ConfigPath)
	if err != nil {
		return nil, err
	}

	fileSource := SourceDefault
	if path != "" {
		fileSource = SourceFile
	}

	resolved := &ResolvedConfig{
		Text:          appCfg.Text,
		Speed:         millis(appCfg.SpeedMS),
		MinSpeed:      millis(appCfg.MinSpeedMS),
		IdlePoll:      millis(appCfg.IdlePollMS),
		FallbackWidth: appCfg.FallbackWidth,
		NoBanner:      appCfg.NoBanner,
		Debug:         appCfg.Debug,
		LogFile:       appCfg.LogFile,
		ConfigPath:    path,
		TextSource:    fileSource,
		SpeedSource:   fileSource,
	}

	// Text: CLI > ENV > file > default
	if cliFlags.TextSet {
		resolved.Text = cliFlags.Text
		resolved.TextSource = SourceCLI
	} else if v := os.Getenv("MARQUEE_TEXT"); v != "" {
		resolved.Text = v
		resolved.TextSource = SourceEnv
	}

	// Speed: CLI > ENV > file > default
	if cliFlags.SpeedSet {
		resolved.Speed = millis(cliFlags.SpeedMS)
		resolved.SpeedSource = SourceCLI
	} else {
		ms, ok, err := getEnvInt("MARQUEE_SPEED_MS")
		if err != nil {
			return nil, err
		}
		if ok {
			resolved.Speed = millis(ms)
			resolved.SpeedSource = SourceEnv
		}
	}

	// MinSpeed: ENV > file > default
	if ms, ok, err := getEnvInt("MARQUEE_MIN_SPEED_MS"); err != nil {
		return nil, err
	} else if ok {
		resolved.MinSpeed = millis(ms)
	}

	if cliFlags.NoBannerSet {
		resolved.NoBanner = cliFlags.NoBanner
	} else if b := getEnvBool("MARQUEE_NO_BANNER"); b != nil {
		resolved.NoBanner = *b
	}

	if cliFlags.DebugSet {
		resolved.Debug = cliFlags.Debug
	} else if b := getEnvBool("MARQUEE_DEBUG"); b != nil {
		resolved.Debug = *b
	}

	if cliFlags.LogFileSet {
		resolved.LogFile = cliFlags.LogFile
	} else if v := os.Getenv("MARQUEE_LOG_FILE"); v != "" {
		resolved.LogFile = v
	}

	if err := validateResolvedConfig(resolved); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return resolved, nil
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set, or a pointer to the boolean value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}

// getEnvInt reads an integer environment variable. ok is false when unset.
func getEnvInt(key string) (int, bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("%s: invalid integer %q", key, val)
	}
	return n, true, nil
}

// validateResolvedConfig rejects unusable limits and clamps the speed to the floor.
func validateResolvedConfig(cfg *ResolvedConfig) error {
	if cfg.MinSpeed < time.Millisecond {
		return fmt.Errorf("min_speed_ms must be at least 1, got: %d", cfg.MinSpeed.Milliseconds())
	}
	if cfg.IdlePoll <= 0 {
		return fmt.Errorf("idle_poll_ms must be positive, got: %d", cfg.IdlePoll.Milliseconds())
	}
	if cfg.FallbackWidth <= 0 {
		return fmt.Errorf("fallback_width must be positive, got: %d", cfg.FallbackWidth)
	}
	if cfg.Text == "" {
		return errors.New("text cannot be empty")
	}
	if cfg.Speed < cfg.MinSpeed {
		cfg.Speed = cfg.MinSpeed
	}
	return nil
}
