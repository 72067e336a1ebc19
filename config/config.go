// Package config handles ipactl configuration.
//
// Configuration is loaded with overlay semantics:
//
//  1. Start with built-in defaults (embedded via go:embed from default.toml)
//  2. Overlay with config file values (if file exists)
//  3. CLI flags and environment variables override at runtime (handled by CLI layer)
//
// The TOML decoder only sets fields present in the file, leaving
// unspecified fields at their default values. If the config file
// exists but is invalid, Load returns an error rather than silently
// falling back to defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/retry"
)

//go:embed default.toml
var defaultConfigTOML string

// DefaultConfigPath is the default path to the ipactl config file.
const DefaultConfigPath = "/etc/ipa/ipactl.toml"

// Config is the top-level ipactl configuration.
type Config struct {
	Hardware HardwareConfig `toml:"hardware"`
	Channel  ChannelConfig  `toml:"channel"`
	Logging  LoggingConfig  `toml:"logging"`
	Server   ServerConfig   `toml:"server"`
	Store    StoreConfig    `toml:"store"`
}

// HardwareConfig selects the hardware the daemon attaches to.
type HardwareConfig struct {
	HWType   string `toml:"hw_type"`
	MHI      bool   `toml:"mhi"`
	Platform string `toml:"platform"`
	Auto     bool   `toml:"auto"`
	Mode     string `toml:"mode"`
}

// ParsedHWType returns the configured raw hardware type.
func (c HardwareConfig) ParsedHWType() (ipa.HWType, error) {
	return ipa.ParseHWType(c.HWType)
}

// ParsedPlatform returns the boot-time platform flags.
func (c HardwareConfig) ParsedPlatform() (ipa.Platform, error) {
	pt, err := ipa.ParsePlatformType(c.Platform)
	if err != nil {
		return ipa.Platform{}, err
	}
	return ipa.Platform{MHI: c.MHI, Type: pt, Auto: c.Auto}, nil
}

// ParsedMode returns the execution mode.
func (c HardwareConfig) ParsedMode() (ipa.HWMode, error) {
	return ipa.ParseHWMode(c.Mode)
}

// Duration is a time.Duration decoded from a TOML string such as
// "10ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ChannelConfig bounds channel stop retries and suspend settling.
type ChannelConfig struct {
	StopAttempts  int      `toml:"stop_attempts"`
	StopMinSleep  Duration `toml:"stop_min_sleep"`
	StopMaxSleep  Duration `toml:"stop_max_sleep"`
	SuspendSettle Duration `toml:"suspend_settle"`
}

// StopPolicy returns the retry policy for consumer channel stops.
func (c ChannelConfig) StopPolicy() retry.Policy {
	return retry.Policy{
		Attempts: c.StopAttempts,
		Min:      c.StopMinSleep.Duration,
		Max:      c.StopMaxSleep.Duration,
		Factor:   2,
	}
}

// LoggingConfig controls logging behaviour.
type LoggingConfig struct {
	// Level is the log spec (e.g., "info" or "info,manager=debug").
	Level string `toml:"level"`
	// Format is the output format: "text" or "json".
	Format string `toml:"format"`
	// Components provides an alternative way to specify per-component levels.
	Components map[string]string `toml:"components"`
}

// ToSpec converts the LoggingConfig to a log spec string.
// If Level is set, it takes precedence. Otherwise, Components are used.
func (c *LoggingConfig) ToSpec() string {
	if c.Level != "" {
		return c.Level
	}
	if len(c.Components) == 0 {
		return ""
	}

	names := make([]string, 0, len(c.Components))
	for name := range c.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names)+1)
	parts = append(parts, "info")
	for _, name := range names {
		parts = append(parts, name+"="+c.Components[name])
	}
	return strings.Join(parts, ",")
}

// ServerConfig controls the diagnostics listener.
type ServerConfig struct {
	Address string `toml:"address"`
}

// StoreConfig locates the endpoint journal.
type StoreConfig struct {
	// Path overrides RuntimeDirs.DBPath when set.
	Path string `toml:"path"`
}

// DefaultConfig returns the default configuration from the embedded default.toml.
func DefaultConfig() Config {
	var cfg Config
	if _, err := toml.Decode(defaultConfigTOML, &cfg); err != nil {
		panic(fmt.Sprintf("embedded default.toml: %v", err))
	}
	return cfg
}

// Load reads configuration from a file path with overlay semantics.
//
// Behaviour:
//   - File missing: returns default configuration (no error)
//   - File exists and valid: overlays file values onto defaults
//   - File exists but invalid: returns error (fail fast)
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if _, err := c.Hardware.ParsedHWType(); err != nil {
		return fmt.Errorf("hardware.hw_type: %w", err)
	}
	if _, err := c.Hardware.ParsedPlatform(); err != nil {
		return fmt.Errorf("hardware.platform: %w", err)
	}
	if _, err := c.Hardware.ParsedMode(); err != nil {
		return fmt.Errorf("hardware.mode: %w", err)
	}
	if c.Channel.StopAttempts < 1 {
		return fmt.Errorf("channel.stop_attempts must be at least 1, got %d", c.Channel.StopAttempts)
	}
	if c.Channel.StopMinSleep.Duration > c.Channel.StopMaxSleep.Duration {
		return fmt.Errorf("channel.stop_min_sleep %s exceeds stop_max_sleep %s",
			c.Channel.StopMinSleep, c.Channel.StopMaxSleep)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}
