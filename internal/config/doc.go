// Package config handles configuration loading and merging for marquee.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--text, --speed, --no-banner, --debug, --log-file)
//  2. Environment variables (MARQUEE_TEXT, MARQUEE_SPEED_MS, ...)
//  3. Config file (.marquee.yaml / .marquee.toml in the working directory,
//     or ~/.config/marquee/config.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
//
// # Key Configuration Options
//
//   - Text: the banner text shown when the marquee first starts
//   - Speed: the initial tick interval in milliseconds
//   - MinSpeed: the floor every speed is clamped to
//   - IdlePoll: how often a stopped render loop re-checks its state
//   - FallbackWidth: columns assumed when the terminal size is unknown
//
// # Environment Variables
//
//   - MARQUEE_TEXT: initial banner text
//   - MARQUEE_SPEED_MS, MARQUEE_MIN_SPEED_MS: integers, milliseconds
//   - MARQUEE_NO_BANNER, MARQUEE_DEBUG: "true"/"1" or "false"/"0"
//   - MARQUEE_LOG_FILE: path for the debug log
//
// Marquee state set with interactive commands is never written back.
package config
